package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

func TestPeriod(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 3, 13, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"today", time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 13, 23, 59, 59, 999999999, time.UTC)},
		{"yesterday", time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 12, 23, 59, 59, 999999999, time.UTC)},
		{"this_week", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), now},
		{"last_week", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC)},
		{"this_month", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), now},
		{"last_month", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC)},
		{"last_7_days", time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Period(tt.name, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}

	_, err := Period("fortnight", now)
	assert.Error(t, err)
}

func TestPeriodOnSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC)
	r, err := Period("this_week", sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), r.Start)
}

func TestCustomRange(t *testing.T) {
	r, err := CustomRange("2024-01-01", "2024-01-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), r.End)

	r, err = CustomRange("", "", time.UTC)
	require.NoError(t, err)
	assert.True(t, r.Start.IsZero())
	assert.True(t, r.End.IsZero())

	_, err = CustomRange("2024-02-01", "2024-01-01", time.UTC)
	assert.Error(t, err)
	_, err = CustomRange("01/02/2024", "", time.UTC)
	assert.Error(t, err)
}

func TestDailyRanges(t *testing.T) {
	r := DateRange{
		Start: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 6, 0, 0, 0, time.UTC),
	}
	days := DailyRanges(r)
	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), days[0].Start)
	assert.Equal(t, r.End, days[2].End)
}

func TestSummarize(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	messages := []models.Message{
		{Sender: models.SenderUser, SessionID: "g1", Timestamp: d1},
		{Sender: models.SenderBot, SessionID: "g1", Timestamp: d1},
		{Sender: models.SenderUser, SessionID: "r1", Email: "a@b.co", Timestamp: d2},
		{Sender: models.SenderBot, SessionID: "r1", Timestamp: d2},
		{Sender: models.SenderUser, SessionID: "g2", Timestamp: d2},
	}

	a := Summarize(messages, time.UTC)
	assert.Equal(t, 5, a.Messages)
	assert.Equal(t, 3, a.UserMessages)
	assert.Equal(t, 2, a.BotMessages)
	assert.Equal(t, 3, a.Sessions)
	assert.Equal(t, 2, a.GuestSessions)
	assert.Equal(t, 2, a.Turns)
	require.Len(t, a.Daily, 2)
	assert.Equal(t, DayCount{Day: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Count: 1}, a.Daily[0])
	assert.Equal(t, 2, a.Daily[1].Count)
}

func TestFillDaysAddsQuietDays(t *testing.T) {
	d2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	a := Summarize([]models.Message{{Sender: models.SenderUser, SessionID: "s1", Timestamp: d2}}, time.UTC)

	a.FillDays(DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 23, 59, 59, 0, time.UTC),
	})
	require.Len(t, a.Daily, 3)
	assert.Equal(t, 0, a.Daily[0].Count)
	assert.Equal(t, DayCount{Day: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Count: 1}, a.Daily[1])
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), a.Daily[2].Day)

	b := Summarize(nil, time.UTC)
	b.FillDays(DateRange{})
	assert.Empty(t, b.Daily)
}
