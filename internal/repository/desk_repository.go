package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// DeskRepo persists bookable spaces. Equipment tags live in a JSON
// column and are (de)serialized at this boundary so untyped data never
// reaches the domain logic.
type DeskRepo struct{ DB *sql.DB }

func NewDeskRepo(db *sql.DB) *DeskRepo { return &DeskRepo{DB: db} }

const deskCols = "id,floor_id,name,grid_row,grid_col,capacity,equipment,space_type,image_url,is_unavailable,created_at,updated_at"

func scanDesk(row interface{ Scan(...any) error }) (model.Desk, error) {
	var (
		d         model.Desk
		equipment sql.NullString
	)
	err := row.Scan(&d.ID, &d.FloorID, &d.Name, &d.GridRow, &d.GridCol, &d.Capacity,
		&equipment, &d.SpaceType, &d.ImageURL, &d.IsUnavailable, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return d, err
	}
	if equipment.Valid && equipment.String != "" {
		if err := json.Unmarshal([]byte(equipment.String), &d.Equipment); err != nil {
			d.Equipment = nil
		}
	}
	return d, nil
}

func equipmentJSON(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Create inserts a desk and fills in its generated ID.
func (r *DeskRepo) Create(ctx context.Context, d *model.Desk) error {
	eq, err := equipmentJSON(d.Equipment)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO desks (floor_id, name, grid_row, grid_col, capacity, equipment, space_type, is_unavailable) VALUES (?,?,?,?,?,?,?,?)",
		d.FloorID, d.Name, d.GridRow, d.GridCol, d.Capacity, eq, d.SpaceType, d.IsUnavailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a single desk.
func (r *DeskRepo) GetByID(ctx context.Context, id uint64) (model.Desk, error) {
	d, err := scanDesk(r.DB.QueryRowContext(ctx,
		"SELECT "+deskCols+" FROM desks WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// ListByFloor returns a floor's desks ordered by name.
func (r *DeskRepo) ListByFloor(ctx context.Context, floorID uint64) ([]model.Desk, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+deskCols+" FROM desks WHERE floor_id=? ORDER BY name", floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Desk{}
	for rows.Next() {
		d, err := scanDesk(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update rewrites the mutable desk attributes.
func (r *DeskRepo) Update(ctx context.Context, d *model.Desk) error {
	eq, err := equipmentJSON(d.Equipment)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE desks SET name=?, grid_row=?, grid_col=?, capacity=?, equipment=?, space_type=?, is_unavailable=? WHERE id=?",
		d.Name, d.GridRow, d.GridCol, d.Capacity, eq, d.SpaceType, d.IsUnavailable, d.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, d.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetUnavailable flips the administrative lock on a desk.
func (r *DeskRepo) SetUnavailable(ctx context.Context, id uint64, unavailable bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE desks SET is_unavailable=? WHERE id=?", unavailable, id)
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

// SetImageURL stores (or clears, with nil) the desk photo URL and
// returns the previous value so the caller can delete the old object.
func (r *DeskRepo) SetImageURL(ctx context.Context, id uint64, url *string) (*string, error) {
	var prev *string
	err := r.DB.QueryRowContext(ctx,
		"SELECT image_url FROM desks WHERE id=? LIMIT 1", id).Scan(&prev)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.ExecContext(ctx, "UPDATE desks SET image_url=? WHERE id=?", url, id); err != nil {
		return nil, err
	}
	return prev, nil
}

// Delete removes a desk; ErrConflict when reservations reference it.
func (r *DeskRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM desks WHERE id=?", id)
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
