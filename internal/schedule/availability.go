package schedule

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching intervals do not overlap: a
// booking ending at 10:00 leaves the 10:00 slot free.
func Overlaps(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && bStart < aEnd
}

// SlotAvailable decides whether the hour slot [hour, hour+1) on a desk
// can be booked. A desk that is administratively unavailable is never
// bookable; otherwise the slot is free unless some non-cancelled
// booking intersects it.
func SlotAvailable(deskUnavailable bool, bookings []Booking, hour int) bool {
	if deskUnavailable {
		return false
	}
	slotStart := float64(hour)
	slotEnd := slotStart + 1
	for _, b := range bookings {
		if b.Cancelled {
			continue
		}
		if Overlaps(slotStart, slotEnd, b.Start, EffectiveEnd(b)) {
			return false
		}
	}
	return true
}

// FindConflict scans bookings for one whose interval intersects
// [start, end) and returns a pointer to it, or nil when the window is
// clear. Cancelled bookings never conflict. This is the pre-insert
// check; the repository repeats it inside the insert transaction,
// which is the authoritative arbiter between concurrent writers.
func FindConflict(bookings []Booking, start, end float64) *Booking {
	for i, b := range bookings {
		if b.Cancelled {
			continue
		}
		if Overlaps(start, end, b.Start, EffectiveEnd(b)) {
			return &bookings[i]
		}
	}
	return nil
}
