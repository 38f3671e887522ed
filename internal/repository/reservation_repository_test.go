package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/desk-reservation/internal/model"
)

var reservationRows = []string{
	"id", "user_id", "desk_id", "booking_date", "start_time", "end_time",
	"status", "created_at", "updated_at",
}

func confirmedRow(id, userID uint64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(reservationRows).
		AddRow(id, userID, 1, now, "09:00:00", nil, model.StatusConfirmed, now, now)
}

func TestCancelFlipsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReservationRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id=").
		WillReturnRows(confirmedRow(7, 3))
	mock.ExpectExec("UPDATE reservations SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id=").
		WillReturnRows(sqlmock.NewRows(reservationRows).
			AddRow(7, 3, 1, now, "09:00:00", nil, model.StatusCancelled, now, now))

	res, err := repo.Cancel(context.Background(), 7, 3, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRacingLoserGetsBadState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReservationRepo(db)

	// Another cancel commits between this caller's read and its write,
	// so the guarded UPDATE matches nothing.
	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id=").
		WillReturnRows(confirmedRow(7, 3))
	mock.ExpectExec("UPDATE reservations SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Cancel(context.Background(), 7, 3, false)
	assert.ErrorIs(t, err, ErrBadState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReservationRepo(db)

	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id=").
		WillReturnRows(confirmedRow(7, 3))

	_, err = repo.Cancel(context.Background(), 7, 4, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshFiltersInSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
		WithArgs("somehash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))
	uid, err := repo.ValidateRefresh(context.Background(), "somehash")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), uid)

	// revoked or expired rows never come back from the query
	mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
		WithArgs("deadhash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	_, err = repo.ValidateRefresh(context.Background(), "deadhash")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
