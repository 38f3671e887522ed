package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/schedule"
)

// ReservationRepo persists bookings. Conflict arbitration between
// concurrent writers lives here: Create locks the desk row and re-runs
// the overlap check inside the transaction, so exactly one of two
// racing inserts for the same window can commit. Handlers do an
// opportunistic pre-check first, but this transaction is the final
// authority.
type ReservationRepo struct{ db *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// transactions across repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = "id,user_id,desk_id,booking_date,start_time,end_time,status,created_at,updated_at"

// ReservationWithUser is a reservation joined with display info of the
// user who owns it, used by the timeline view.
type ReservationWithUser struct {
	model.Reservation
	UserEmail    string  `json:"user_email"`
	UserFullName *string `json:"user_full_name"`
}

// ReservationDetail is a reservation joined with the names of the desk,
// floor and location it belongs to, used by "my bookings" listings.
type ReservationDetail struct {
	model.Reservation
	DeskName     string `json:"desk_name"`
	FloorName    string `json:"floor_name"`
	LocationName string `json:"location_name"`
}

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var (
		res   model.Reservation
		start string
		end   sql.NullString
	)
	err := row.Scan(&res.ID, &res.UserID, &res.DeskID, &res.BookingDate, &start, &end,
		&res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return res, err
	}
	res.StartTime = model.TrimClock(start)
	if end.Valid {
		trimmed := model.TrimClock(end.String)
		res.EndTime = &trimmed
	}
	return res, nil
}

// AsBooking converts a reservation into the scheduling view used by
// the pure overlap logic. The error path only triggers on corrupted
// time values, which the schema rules out.
func AsBooking(res model.Reservation) (schedule.Booking, error) {
	start, err := schedule.ParseClock(res.StartTime)
	if err != nil {
		return schedule.Booking{}, err
	}
	b := schedule.Booking{
		ID:        res.ID,
		UserID:    res.UserID,
		Start:     start,
		Cancelled: res.Status == model.StatusCancelled,
	}
	if res.EndTime != nil {
		end, err := schedule.ParseClock(*res.EndTime)
		if err != nil {
			return schedule.Booking{}, err
		}
		b.End = &end
	}
	return b, nil
}

// GetByID fetches a single reservation.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return res, ErrNotFound
	}
	return res, err
}

// ListForDeskDate returns the non-cancelled reservations for one desk
// on one date, ordered by start time. The date is a "YYYY-MM-DD" string.
func (r *ReservationRepo) ListForDeskDate(ctx context.Context, deskID uint64, date string) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE desk_id=? AND booking_date=? AND status<>? ORDER BY start_time",
		deskID, date, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListForFloorDate returns all non-cancelled reservations on a floor
// for one date together with owner display info, for the timeline.
func (r *ReservationRepo) ListForFloorDate(ctx context.Context, floorID uint64, date string) ([]ReservationWithUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.desk_id, r.booking_date, r.start_time, r.end_time, r.status,
		       r.created_at, r.updated_at, u.email, u.full_name
		FROM reservations r
		JOIN desks d ON d.id = r.desk_id
		JOIN users u ON u.id = r.user_id
		WHERE d.floor_id=? AND r.booking_date=? AND r.status<>?
		ORDER BY r.start_time`,
		floorID, date, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReservationWithUser{}
	for rows.Next() {
		var (
			rv    ReservationWithUser
			start string
			end   sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.DeskID, &rv.BookingDate, &start, &end,
			&rv.Status, &rv.CreatedAt, &rv.UpdatedAt, &rv.UserEmail, &rv.UserFullName); err != nil {
			return nil, err
		}
		rv.StartTime = model.TrimClock(start)
		if end.Valid {
			trimmed := model.TrimClock(end.String)
			rv.EndTime = &trimmed
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ListForUser returns all of a user's reservations, newest date first,
// joined with the desk/floor/location names for display.
func (r *ReservationRepo) ListForUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.desk_id, r.booking_date, r.start_time, r.end_time, r.status,
		       r.created_at, r.updated_at, d.name, f.name, l.name
		FROM reservations r
		JOIN desks d ON d.id = r.desk_id
		JOIN floors f ON f.id = d.floor_id
		JOIN locations l ON l.id = f.location_id
		WHERE r.user_id=?
		ORDER BY r.booking_date DESC, r.start_time`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReservationDetail{}
	for rows.Next() {
		var (
			rv    ReservationDetail
			start string
			end   sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.DeskID, &rv.BookingDate, &start, &end,
			&rv.Status, &rv.CreatedAt, &rv.UpdatedAt, &rv.DeskName, &rv.FloorName, &rv.LocationName); err != nil {
			return nil, err
		}
		rv.StartTime = model.TrimClock(start)
		if end.Valid {
			trimmed := model.TrimClock(end.String)
			rv.EndTime = &trimmed
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Create books a desk for [start, end) on the given date. It runs the
// authoritative conflict check inside a transaction: the desk row is
// locked with FOR UPDATE so concurrent inserts for the same desk
// serialize, then the existing non-cancelled bookings for that date
// are re-scanned with the same overlap predicate the handlers use.
// Returns ErrSlotTaken when the window is already covered,
// ErrDeskUnavailable when the desk is administratively locked, and
// ErrNotFound when the desk does not exist. start/end are fractional
// hours; endClock is nil for an open-ended booking.
func (r *ReservationRepo) Create(ctx context.Context, userID, deskID uint64, date string, start, end float64, startClock string, endClock *string) (model.Reservation, error) {
	var created model.Reservation
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return created, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the desk row; all writers for this desk queue up here.
	var unavailable bool
	err = tx.QueryRowContext(ctx,
		"SELECT is_unavailable FROM desks WHERE id=? FOR UPDATE", deskID).Scan(&unavailable)
	if err == sql.ErrNoRows {
		return created, ErrNotFound
	}
	if err != nil {
		return created, err
	}
	if unavailable {
		return created, ErrDeskUnavailable
	}

	// Re-check overlap against committed rows while holding the lock.
	rows, err := tx.QueryContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE desk_id=? AND booking_date=? AND status<>?",
		deskID, date, model.StatusCancelled)
	if err != nil {
		return created, err
	}
	existing := []schedule.Booking{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			rows.Close()
			return created, err
		}
		b, err := AsBooking(res)
		if err != nil {
			rows.Close()
			return created, err
		}
		existing = append(existing, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return created, err
	}
	rows.Close()

	if schedule.FindConflict(existing, start, end) != nil {
		return created, ErrSlotTaken
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, desk_id, booking_date, start_time, end_time, status) VALUES (?,?,?,?,?,?)",
		userID, deskID, date, startClock, endClock, model.StatusConfirmed)
	if err != nil {
		return created, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return created, err
	}
	created, err = scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=? LIMIT 1", id))
	if err != nil {
		return created, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return created, nil
}

// Cancel flips a reservation to CANCELLED. Only the owner (or an
// admin) may cancel, cancellation is one-way and rows are never
// deleted. Returns the updated reservation.
func (r *ReservationRepo) Cancel(ctx context.Context, id, userID uint64, isAdmin bool) (model.Reservation, error) {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return res, err
	}
	if !isAdmin && res.UserID != userID {
		return res, ErrForbidden
	}
	if res.Status == model.StatusCancelled {
		return res, ErrBadState
	}
	// The guard repeats the status check so two racing cancels cannot
	// both succeed: the loser's UPDATE matches no row.
	upd, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=? AND status<>?",
		model.StatusCancelled, id, model.StatusCancelled)
	if err != nil {
		return res, err
	}
	n, err := upd.RowsAffected()
	if err != nil {
		return res, err
	}
	if n == 0 {
		return res, ErrBadState
	}
	return r.GetByID(ctx, id)
}

// CheckIn transitions CONFIRMED -> CHECKED_IN and records a check_ins
// row, atomically. Only the owner may check in, and only on the
// booking date itself.
func (r *ReservationRepo) CheckIn(ctx context.Context, id, userID uint64, now time.Time) (model.Reservation, error) {
	var out model.Reservation
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return out, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=? LIMIT 1 FOR UPDATE", id))
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, err
	}
	if res.UserID != userID {
		return out, ErrForbidden
	}
	if res.Status != model.StatusConfirmed {
		return out, ErrBadState
	}
	if res.BookingDate.Format("2006-01-02") != now.UTC().Format("2006-01-02") {
		return out, ErrBadState
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", model.StatusCheckedIn, id); err != nil {
		return out, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO check_ins (reservation_id, checked_in_at) VALUES (?,?)", id, now.UTC()); err != nil {
		return out, err
	}
	if err := tx.Commit(); err != nil {
		return out, err
	}
	committed = true
	res.Status = model.StatusCheckedIn
	return res, nil
}
