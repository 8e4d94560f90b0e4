// Package analytics resolves reporting periods and summarises message
// activity for the message-history views.
package analytics

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive period
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Periods accepted by Period
var Periods = []string{"today", "yesterday", "this_week", "last_week", "this_month", "last_month", "last_7_days", "last_30_days", "last_90_days"}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// Period resolves a named period relative to now. Weeks start on Monday.
func Period(name string, now time.Time) (DateRange, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "today":
		return DateRange{Start: startOfDay(now), End: endOfDay(now)}, nil

	case "yesterday":
		y := now.AddDate(0, 0, -1)
		return DateRange{Start: startOfDay(y), End: endOfDay(y)}, nil

	case "this_week":
		return DateRange{Start: startOfDay(now.AddDate(0, 0, -isoWeekday(now)+1)), End: now}, nil

	case "last_week":
		wd := isoWeekday(now)
		return DateRange{
			Start: startOfDay(now.AddDate(0, 0, -wd-6)),
			End:   endOfDay(now.AddDate(0, 0, -wd)),
		}, nil

	case "this_month":
		return DateRange{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), End: now}, nil

	case "last_month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: first.AddDate(0, -1, 0), End: first.Add(-time.Nanosecond)}, nil

	case "last_7_days":
		return DateRange{Start: startOfDay(now.AddDate(0, 0, -6)), End: now}, nil

	case "last_30_days":
		return DateRange{Start: startOfDay(now.AddDate(0, 0, -29)), End: now}, nil

	case "last_90_days":
		return DateRange{Start: startOfDay(now.AddDate(0, 0, -89)), End: now}, nil
	}
	return DateRange{}, fmt.Errorf("unknown period %q (want one of %s)", name, strings.Join(Periods, ", "))
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// CustomRange parses YYYY-MM-DD bounds in loc. Either bound may be empty;
// the end date covers its whole day.
func CustomRange(start, end string, loc *time.Location) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := time.ParseInLocation("2006-01-02", start, loc)
		if err != nil {
			return r, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		r.Start = t
	}
	if end != "" {
		t, err := time.ParseInLocation("2006-01-02", end, loc)
		if err != nil {
			return r, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		r.End = endOfDay(t)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return r, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return r, nil
}

// DailyRanges splits r into calendar days
func DailyRanges(r DateRange) []DateRange {
	var out []DateRange
	for day := startOfDay(r.Start); !day.After(r.End); day = day.AddDate(0, 0, 1) {
		end := endOfDay(day)
		if end.After(r.End) {
			end = r.End
		}
		out = append(out, DateRange{Start: day, End: end})
	}
	return out
}
