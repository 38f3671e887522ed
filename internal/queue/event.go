// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// BookingConfirmedEvent is published when a reservation commits. It
// carries enough display context for downstream consumers (audit log,
// notifications, analytics) to act without querying the database.
type BookingConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	UserEmail     string  `json:"user_email"`
	DeskID        uint64  `json:"desk_id"`
	DeskName      string  `json:"desk_name"`
	FloorName     string  `json:"floor_name"`
	LocationName  string  `json:"location_name"`
	BookingDate   string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	EndTime       *string `json:"end_time"` // nil = open-ended
	ConfirmedAt   string  `json:"confirmed_at"`
}
