package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		stored string
		date   time.Time
		want   string
	}{
		{"confirmed today stays confirmed", StatusConfirmed, today, StatusConfirmed},
		{"confirmed tomorrow stays confirmed", StatusConfirmed, tomorrow, StatusConfirmed},
		{"confirmed yesterday reads completed", StatusConfirmed, yesterday, StatusCompleted},
		{"checked-in yesterday reads completed", StatusCheckedIn, yesterday, StatusCompleted},
		{"checked-in today stays checked-in", StatusCheckedIn, today, StatusCheckedIn},
		{"cancelled is terminal even in the past", StatusCancelled, yesterday, StatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Reservation{Status: tc.stored, BookingDate: tc.date}
			assert.Equal(t, tc.want, r.EffectiveStatus(now))
		})
	}
}

func TestTrimClock(t *testing.T) {
	assert.Equal(t, "09:00", TrimClock("09:00:00"))
	assert.Equal(t, "09:00", TrimClock("09:00"))
	assert.Equal(t, "23:59", TrimClock("23:59:59"))
	assert.Equal(t, "bogus", TrimClock("bogus"))
}
