// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a booking owned by someone else, while
// ErrSlotTaken signals that the requested time window on a desk is
// already covered by a committed reservation.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as deleting a floor
// that still has desks. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is the authoritative double-booking signal. It is
// produced inside the reservation insert transaction when the
// requested interval intersects a committed non-cancelled booking on
// the same desk and date. Handlers surface it as the single
// "slot already booked" message and never retry automatically.
var ErrSlotTaken = errors.New("slot already booked")

// ErrDeskUnavailable is returned when booking is attempted on a desk
// an administrator has flagged as unavailable.
var ErrDeskUnavailable = errors.New("desk unavailable")

// ErrBadState is returned for status transitions the lifecycle does
// not allow, e.g. checking in to a cancelled booking or cancelling
// twice. Cancelled is terminal.
var ErrBadState = errors.New("invalid status transition")
