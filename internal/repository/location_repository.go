package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// LocationRepo persists locations, the top of the booking hierarchy.
type LocationRepo struct{ DB *sql.DB }

func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{DB: db} }

const locationCols = "id,name,address,created_at,updated_at"

func scanLocation(row interface{ Scan(...any) error }) (model.Location, error) {
	var l model.Location
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create inserts a location and fills in its generated ID.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO locations (name, address) VALUES (?,?)", l.Name, l.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID fetches a single location.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (model.Location, error) {
	l, err := scanLocation(r.DB.QueryRowContext(ctx,
		"SELECT "+locationCols+" FROM locations WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

// List returns all locations ordered by name.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+locationCols+" FROM locations ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update changes name and address. Returns ErrNotFound when the row
// does not exist.
func (r *LocationRepo) Update(ctx context.Context, id uint64, name string, address *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE locations SET name=?, address=? WHERE id=?", name, address, id)
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

// Delete removes a location. A location that still has floors cannot
// be deleted; the FK restriction surfaces as ErrConflict.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM locations WHERE id=?", id)
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
