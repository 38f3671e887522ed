package model

import "time"

// CheckIn records that a user actually showed up for a reservation.
// One row per reservation at most; corresponds to the `check_ins`
// table.
type CheckIn struct {
	ID            uint64    `json:"id"`             // check_ins.id
	ReservationID uint64    `json:"reservation_id"` // check_ins.reservation_id
	CheckedInAt   time.Time `json:"checked_in_at"`  // check_ins.checked_in_at
	CreatedAt     time.Time `json:"created_at"`     // check_ins.created_at
}
