package model

import (
	"strings"
	"time"
)

// Reservation statuses stored in the database. COMPLETED is never
// written; it is derived from the booking date at read time (see
// EffectiveStatus).
const (
	StatusConfirmed = "CONFIRMED"
	StatusCheckedIn = "CHECKED_IN"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED" // derived only
)

// Reservation is one booking of a desk for a single date. Times are
// wall-clock "HH:MM" strings; a nil EndTime means the booking runs
// until the end of the day. Corresponds to a row in the
// `reservations` table.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the booking.
//  DeskID      – desk being booked.
//  BookingDate – calendar date of the booking (time portion ignored).
//  StartTime   – "HH:MM" start of the booking.
//  EndTime     – "HH:MM" end, nil for open-ended (until end of day).
//  Status      – CONFIRMED, CHECKED_IN or CANCELLED.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          uint64    `json:"id"`           // reservations.id
	UserID      uint64    `json:"user_id"`      // reservations.user_id
	DeskID      uint64    `json:"desk_id"`      // reservations.desk_id
	BookingDate time.Time `json:"booking_date"` // reservations.booking_date (DATE)
	StartTime   string    `json:"start_time"`   // reservations.start_time (TIME)
	EndTime     *string   `json:"end_time"`     // reservations.end_time (TIME, nullable)
	Status      string    `json:"status"`       // reservations.status
	CreatedAt   time.Time `json:"created_at"`   // reservations.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // reservations.updated_at
}

// EffectiveStatus returns the status a reader should see. Confirmed or
// checked-in bookings whose date is in the past report COMPLETED; the
// stored value is never rewritten.
func (r Reservation) EffectiveStatus(now time.Time) string {
	if r.Status == StatusCancelled {
		return StatusCancelled
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if r.BookingDate.Before(today) {
		return StatusCompleted
	}
	return r.Status
}

// TrimClock normalizes a database TIME value to "HH:MM" by dropping
// the seconds component when present ("09:00:00" -> "09:00").
func TrimClock(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return t
	}
	return parts[0] + ":" + parts[1]
}
