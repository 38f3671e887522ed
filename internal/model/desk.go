package model

import "time"

// Space type tags. A desk row can describe a plain desk, a meeting
// room or a parking spot; the booking rules are identical for all
// three.
const (
	SpaceDesk        = "DESK"
	SpaceMeetingRoom = "MEETING_ROOM"
	SpaceParkingSpot = "PARKING_SPOT"
)

// Desk is a bookable space on a floor. Corresponds to a row in the
// `desks` table.
//
// Fields:
//  ID            – primary key identifier.
//  FloorID       – floor the desk sits on.
//  Name          – unique desk name per floor.
//  GridRow       – row position on the floor-plan grid.
//  GridCol       – column position on the floor-plan grid.
//  Capacity      – number of people the space holds.
//  Equipment     – free-form equipment tags (monitor, dock, ...).
//  SpaceType     – DESK, MEETING_ROOM or PARKING_SPOT.
//  ImageURL      – public URL of the uploaded photo (nil if none).
//  IsUnavailable – administrative lock; a locked desk can never be booked.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Desk struct {
	ID            uint64    `json:"id"`             // desks.id
	FloorID       uint64    `json:"floor_id"`       // desks.floor_id
	Name          string    `json:"name"`           // desks.name
	GridRow       uint32    `json:"grid_row"`       // desks.grid_row
	GridCol       uint32    `json:"grid_col"`       // desks.grid_col
	Capacity      uint32    `json:"capacity"`       // desks.capacity
	Equipment     []string  `json:"equipment"`      // desks.equipment (JSON column)
	SpaceType     string    `json:"space_type"`     // desks.space_type
	ImageURL      *string   `json:"image_url"`      // desks.image_url (nullable)
	IsUnavailable bool      `json:"is_unavailable"` // desks.is_unavailable
	CreatedAt     time.Time `json:"created_at"`     // desks.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // desks.updated_at
}
