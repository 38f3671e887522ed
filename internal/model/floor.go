package model

import "time"

// Floor is a level within a location. Each floor carries grid
// dimensions used by the spatial floor-plan view; desks reference
// a cell inside that grid. Corresponds to a row in the `floors`
// table.
//
// Fields:
//  ID         – primary key identifier.
//  LocationID – containing location.
//  Name       – unique floor name per location.
//  GridRows   – number of rows in the floor-plan grid.
//  GridCols   – number of columns in the floor-plan grid.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Floor struct {
	ID         uint64    `json:"id"`          // floors.id
	LocationID uint64    `json:"location_id"` // floors.location_id
	Name       string    `json:"name"`        // floors.name
	GridRows   uint32    `json:"grid_rows"`   // floors.grid_rows
	GridCols   uint32    `json:"grid_cols"`   // floors.grid_cols
	CreatedAt  time.Time `json:"created_at"`  // floors.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // floors.updated_at
}
