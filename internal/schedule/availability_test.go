package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoursPtr(h float64) *float64 { return &h }

func confirmed(start float64, end *float64) Booking {
	return Booking{Start: start, End: end}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                         string
		aStart, aEnd, bStart, bEnd   float64
		want                         bool
	}{
		{"touching back-to-back", 9, 10, 10, 11, false},
		{"touching other order", 10, 11, 9, 10, false},
		{"contained", 9, 11, 10, 10.5, true},
		{"identical", 9, 10, 9, 10, true},
		{"partial front", 9, 10.5, 10, 11, true},
		{"partial back", 10, 11, 9, 10.5, true},
		{"disjoint", 8, 9, 12, 13, false},
		{"covering", 8, 20, 9, 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// overlap is symmetric
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestSlotAvailableEmptyDesk(t *testing.T) {
	// Scenario A: no bookings means every hour of the day is free.
	for h := 0; h < 24; h++ {
		assert.True(t, SlotAvailable(false, nil, h), "hour %d", h)
	}
}

func TestSlotAvailableMorningBooking(t *testing.T) {
	// Scenario B: 09:00-12:00 blocks 09, 10 and 11 but not 08 or 12.
	bookings := []Booking{confirmed(9, hoursPtr(12))}
	assert.True(t, SlotAvailable(false, bookings, 8))
	assert.False(t, SlotAvailable(false, bookings, 9))
	assert.False(t, SlotAvailable(false, bookings, 10))
	assert.False(t, SlotAvailable(false, bookings, 11))
	assert.True(t, SlotAvailable(false, bookings, 12))
}

func TestSlotAvailableOpenEnded(t *testing.T) {
	// Scenario C: open-ended from 14:00 blocks 14 through 23 inclusive.
	bookings := []Booking{confirmed(14, nil)}
	assert.True(t, SlotAvailable(false, bookings, 13))
	for h := 14; h < 24; h++ {
		assert.False(t, SlotAvailable(false, bookings, h), "hour %d", h)
	}
}

func TestSlotAvailableLockedDesk(t *testing.T) {
	// An administratively unavailable desk is never bookable, even
	// with no bookings at all.
	for h := 0; h < 24; h++ {
		assert.False(t, SlotAvailable(true, nil, h), "hour %d", h)
	}
}

func TestSlotAvailableIgnoresCancelled(t *testing.T) {
	// A cancelled 09:00-10:00 booking must not block booking
	// 09:00-10:00 again.
	bookings := []Booking{{Start: 9, End: hoursPtr(10), Cancelled: true}}
	assert.True(t, SlotAvailable(false, bookings, 9))
	require.Nil(t, FindConflict(bookings, 9, 10))
}

func TestSlotAvailableIdempotent(t *testing.T) {
	bookings := []Booking{confirmed(9, hoursPtr(12)), confirmed(14, nil)}
	for h := 0; h < 24; h++ {
		first := SlotAvailable(false, bookings, h)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, SlotAvailable(false, bookings, h))
		}
	}
}

func TestFindConflict(t *testing.T) {
	existing := []Booking{
		{ID: 7, Start: 10.5, End: hoursPtr(11.5)},
	}

	// Scenario D: 10:00-11:00 against an existing 10:30-11:30.
	hit := FindConflict(existing, 10, 11)
	require.NotNil(t, hit)
	assert.Equal(t, uint64(7), hit.ID)

	// Back-to-back requests are fine on both sides.
	assert.Nil(t, FindConflict(existing, 9.5, 10.5))
	assert.Nil(t, FindConflict(existing, 11.5, 12.5))

	// An open-ended existing booking conflicts with anything after it.
	openEnded := []Booking{{ID: 8, Start: 14}}
	hit = FindConflict(openEnded, 22, 23)
	require.NotNil(t, hit)
	assert.Equal(t, uint64(8), hit.ID)
	assert.Nil(t, FindConflict(openEnded, 13, 14))
}

func TestEffectiveEndAlwaysAfterStart(t *testing.T) {
	// No zero or negative durations for any well-formed booking.
	for _, b := range []Booking{
		confirmed(0, hoursPtr(1)),
		confirmed(9, hoursPtr(17)),
		confirmed(23, nil),
		confirmed(0, nil),
	} {
		assert.Greater(t, EffectiveEnd(b), b.Start)
	}
}
