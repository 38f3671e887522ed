package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:00", 9, true},
		{"09:30", 9.5, true},
		{"14:45", 14.75, true},
		{"23:59", 23 + 59.0/60, true},
		{"24:00", 24, true},
		{"09:00:00", 9, true}, // MySQL TIME form
		{" 08:15", 8.25, true},
		{"24:01", 0, false},
		{"25:00", 0, false},
		{"12:60", 0, false},
		{"-1:00", 0, false},
		{"noon", 0, false},
		{"12", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrBadClock, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(9))
	assert.Equal(t, "09:30", FormatClock(9.5))
	assert.Equal(t, "24:00", FormatClock(EndOfDay))
	assert.Equal(t, "00:00", FormatClock(0))
}

func TestFormatClockRoundTrips(t *testing.T) {
	for _, s := range []string{"00:00", "08:15", "13:37", "23:59", "24:00"} {
		h, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(h))
	}
}

func TestEffectiveEnd(t *testing.T) {
	end := 17.0
	assert.Equal(t, 17.0, EffectiveEnd(Booking{Start: 9, End: &end}))
	// open-ended bookings run to 24:00 sharp, never 23:59
	assert.Equal(t, 24.0, EffectiveEnd(Booking{Start: 14}))
	assert.Greater(t, EffectiveEnd(Booking{Start: 23.5}), 23.5)
}
