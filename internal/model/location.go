package model

import "time"

// Location is an office site that contains one or more floors.
// It is the top of the booking hierarchy and corresponds to a row
// in the `locations` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique location name.
//  Address   – optional postal address.
//  CreatedAt – timestamp when the location was created.
//  UpdatedAt – timestamp of last update.
type Location struct {
	ID        uint64    `json:"id"`         // locations.id
	Name      string    `json:"name"`       // locations.name
	Address   *string   `json:"address"`    // locations.address (nullable)
	CreatedAt time.Time `json:"created_at"` // locations.created_at
	UpdatedAt time.Time `json:"updated_at"` // locations.updated_at
}
