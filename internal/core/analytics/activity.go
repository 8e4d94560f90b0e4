package analytics

import (
	"sort"
	"time"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/export"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

// DayCount is the number of user messages on one day
type DayCount struct {
	Day   time.Time
	Count int
}

// Activity summarises a slice of message history
type Activity struct {
	Messages      int
	UserMessages  int
	BotMessages   int
	Sessions      int
	GuestSessions int
	Turns         int
	Daily         []DayCount
}

// Summarize counts messages, sessions and answered turns. Daily counts are
// bucketed in loc.
func Summarize(messages []models.Message, loc *time.Location) Activity {
	a := Activity{Messages: len(messages)}
	sessions := map[string]bool{} // session -> guest
	days := map[time.Time]int{}

	for _, m := range messages {
		switch m.Sender {
		case models.SenderUser:
			a.UserMessages++
			if !m.Timestamp.IsZero() {
				days[startOfDay(m.Timestamp.In(loc))]++
			}
		case models.SenderBot:
			a.BotMessages++
		}
		if m.SessionID == "" {
			continue
		}
		guest, seen := sessions[m.SessionID]
		if !seen {
			guest = true
		}
		sessions[m.SessionID] = guest && export.IsGuestUser(m)
	}

	a.Sessions = len(sessions)
	for _, guest := range sessions {
		if guest {
			a.GuestSessions++
		}
	}
	a.Turns = len(export.PairConversation(messages))

	for day, n := range days {
		a.Daily = append(a.Daily, DayCount{Day: day, Count: n})
	}
	sort.Slice(a.Daily, func(i, j int) bool { return a.Daily[i].Day.Before(a.Daily[j].Day) })
	return a
}

// FillDays adds a zero count for every day of r without user messages.
// Unbounded ranges are left alone.
func (a *Activity) FillDays(r DateRange) {
	if r.Start.IsZero() || r.End.IsZero() {
		return
	}
	seen := make(map[time.Time]bool, len(a.Daily))
	for _, d := range a.Daily {
		seen[d.Day] = true
	}
	for _, day := range DailyRanges(r) {
		if !seen[day.Start] {
			a.Daily = append(a.Daily, DayCount{Day: day.Start})
		}
	}
	sort.Slice(a.Daily, func(i, j int) bool { return a.Daily[i].Day.Before(a.Daily[j].Day) })
}
