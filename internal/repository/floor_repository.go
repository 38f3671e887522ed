package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// FloorRepo persists floors and their floor-plan grid dimensions.
type FloorRepo struct{ DB *sql.DB }

func NewFloorRepo(db *sql.DB) *FloorRepo { return &FloorRepo{DB: db} }

const floorCols = "id,location_id,name,grid_rows,grid_cols,created_at,updated_at"

func scanFloor(row interface{ Scan(...any) error }) (model.Floor, error) {
	var f model.Floor
	err := row.Scan(&f.ID, &f.LocationID, &f.Name, &f.GridRows, &f.GridCols, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// Create inserts a floor and fills in its generated ID.
func (r *FloorRepo) Create(ctx context.Context, f *model.Floor) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO floors (location_id, name, grid_rows, grid_cols) VALUES (?,?,?,?)",
		f.LocationID, f.Name, f.GridRows, f.GridCols)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID fetches a single floor.
func (r *FloorRepo) GetByID(ctx context.Context, id uint64) (model.Floor, error) {
	f, err := scanFloor(r.DB.QueryRowContext(ctx,
		"SELECT "+floorCols+" FROM floors WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return f, ErrNotFound
	}
	return f, err
}

// ListByLocation returns a location's floors ordered by name.
func (r *FloorRepo) ListByLocation(ctx context.Context, locationID uint64) ([]model.Floor, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+floorCols+" FROM floors WHERE location_id=? ORDER BY name", locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Floor{}
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Update changes name and grid dimensions.
func (r *FloorRepo) Update(ctx context.Context, id uint64, name string, gridRows, gridCols uint32) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE floors SET name=?, grid_rows=?, grid_cols=? WHERE id=?",
		name, gridRows, gridCols, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a floor; ErrConflict when desks still reference it.
func (r *FloorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM floors WHERE id=?", id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") { // FK restrict
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
