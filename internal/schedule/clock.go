// Package schedule holds the pure booking arithmetic: clock parsing,
// the end-of-day sentinel, interval overlap, slot availability and
// timeline layout. Everything here is side-effect free; handlers and
// repositories feed it already-typed data and act on its answers. All
// presentation variants must go through this package so that the
// overlap formula and the sentinel exist in exactly one place.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EndOfDay is the effective end of an open-ended booking, expressed in
// fractional hours. A booking with no end time runs until 24:00 sharp,
// not 23:59.
const EndOfDay = 24.0

// ErrBadClock is returned by ParseClock for anything that is not a
// valid "HH:MM" wall-clock string.
var ErrBadClock = errors.New("invalid clock value")

// ParseClock converts an "HH:MM" string into fractional hours, e.g.
// "09:30" -> 9.5. Seconds are tolerated and ignored ("09:30:00" is
// the form MySQL returns for TIME columns). Valid range is 00:00
// through 24:00 inclusive; 24:00 exists only so callers can express
// the end-of-day sentinel explicitly.
func ParseClock(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrBadClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrBadClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrBadClock
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, ErrBadClock
	}
	return float64(h) + float64(m)/60, nil
}

// FormatClock renders fractional hours back into "HH:MM", rounding to
// the nearest minute. FormatClock(EndOfDay) is "24:00".
func FormatClock(h float64) string {
	total := int(math.Round(h * 60))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Booking is the minimal view of a reservation the scheduling math
// needs. End is nil for open-ended bookings.
type Booking struct {
	ID        uint64
	UserID    uint64
	Start     float64  // fractional hours
	End       *float64 // fractional hours, nil = until end of day
	Cancelled bool
}

// EffectiveEnd resolves a booking's end for overlap computation: the
// explicit end when present, otherwise the end-of-day sentinel.
func EffectiveEnd(b Booking) float64 {
	if b.End != nil {
		return *b.End
	}
	return EndOfDay
}
