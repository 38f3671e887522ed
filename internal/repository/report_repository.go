package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// ReportRepo runs the read-only aggregate queries behind the admin
// booking export.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// BookingRow is one line of the bookings sheet.
type BookingRow struct {
	BookingDate  string
	LocationName string
	FloorName    string
	DeskName     string
	UserEmail    string
	UserFullName *string
	StartTime    string
	EndTime      *string
	Status       string
}

// UtilizationRow aggregates bookings per desk over the report range.
type UtilizationRow struct {
	LocationName string
	FloorName    string
	DeskName     string
	Bookings     uint64
	CheckIns     uint64
	Cancelled    uint64
}

// Bookings lists every reservation in [from, to] (inclusive dates,
// "YYYY-MM-DD"), including cancelled ones; the report is an audit
// trail, not an availability view.
func (r *ReportRepo) Bookings(ctx context.Context, from, to string) ([]BookingRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.booking_date, l.name, f.name, d.name, u.email, u.full_name,
		       r.start_time, r.end_time, r.status
		FROM reservations r
		JOIN desks d ON d.id = r.desk_id
		JOIN floors f ON f.id = d.floor_id
		JOIN locations l ON l.id = f.location_id
		JOIN users u ON u.id = r.user_id
		WHERE r.booking_date BETWEEN ? AND ?
		ORDER BY r.booking_date, l.name, f.name, d.name, r.start_time`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BookingRow{}
	for rows.Next() {
		var (
			row  BookingRow
			date sql.NullTime
			end  sql.NullString
		)
		if err := rows.Scan(&date, &row.LocationName, &row.FloorName, &row.DeskName,
			&row.UserEmail, &row.UserFullName, &row.StartTime, &end, &row.Status); err != nil {
			return nil, err
		}
		if date.Valid {
			row.BookingDate = date.Time.Format("2006-01-02")
		}
		row.StartTime = model.TrimClock(row.StartTime)
		if end.Valid {
			trimmed := model.TrimClock(end.String)
			row.EndTime = &trimmed
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Utilization aggregates booking counts per desk over [from, to].
func (r *ReportRepo) Utilization(ctx context.Context, from, to string) ([]UtilizationRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.name, f.name, d.name,
		       COUNT(r.id),
		       SUM(CASE WHEN r.status=? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN r.status=? THEN 1 ELSE 0 END)
		FROM desks d
		JOIN floors f ON f.id = d.floor_id
		JOIN locations l ON l.id = f.location_id
		LEFT JOIN reservations r ON r.desk_id = d.id AND r.booking_date BETWEEN ? AND ?
		GROUP BY l.name, f.name, d.name
		ORDER BY l.name, f.name, d.name`,
		model.StatusCheckedIn, model.StatusCancelled, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []UtilizationRow{}
	for rows.Next() {
		var (
			row       UtilizationRow
			checkIns  sql.NullInt64
			cancelled sql.NullInt64
		)
		if err := rows.Scan(&row.LocationName, &row.FloorName, &row.DeskName,
			&row.Bookings, &checkIns, &cancelled); err != nil {
			return nil, err
		}
		if checkIns.Valid {
			row.CheckIns = uint64(checkIns.Int64)
		}
		if cancelled.Valid {
			row.Cancelled = uint64(cancelled.Int64)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
