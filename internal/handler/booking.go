package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/metrics"
	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/queue"
	"github.com/iliyamo/desk-reservation/internal/repository"
	"github.com/iliyamo/desk-reservation/internal/schedule"
	queue_publisher "github.com/iliyamo/desk-reservation/internal/service"
)

// BookingHandler implements the booking flow: an opportunistic
// conflict pre-check followed by the authoritative transactional
// insert, plus listing, cancellation and check-in. Nothing is reported
// as booked until the transaction commits, and a conflict is never
// retried automatically.
type BookingHandler struct {
	Reservations *repository.ReservationRepo
	Desks        *repository.DeskRepo
	Floors       *repository.FloorRepo
	Locations    *repository.LocationRepo
	Users        *repository.UserRepo
}

func NewBookingHandler(r *repository.ReservationRepo, d *repository.DeskRepo, f *repository.FloorRepo, l *repository.LocationRepo, u *repository.UserRepo) *BookingHandler {
	if r == nil || d == nil || f == nil || l == nil || u == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Reservations: r, Desks: d, Floors: f, Locations: l, Users: u}
}

type createBookingReq struct {
	DeskID      uint64  `json:"desk_id" validate:"required"`
	BookingDate string  `json:"booking_date" validate:"required"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     *string `json:"end_time"` // nil = until end of day
}

type bookingResp struct {
	model.Reservation
	EffectiveStatus string `json:"effective_status"`
}

// Create handles POST /v1/bookings. Validation failures and the local
// pre-check reject without touching the insert path; the transaction
// inside the repository is the final arbiter between concurrent
// writers and reports ErrSlotTaken for the loser.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "desk_id, booking_date and start_time are required"})
	}
	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_date must be YYYY-MM-DD"})
	}
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil || start >= schedule.EndOfDay {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be HH:MM before 24:00"})
	}
	end := schedule.EndOfDay
	var endClock *string
	if req.EndTime != nil && *req.EndTime != "" {
		end, err = schedule.ParseClock(*req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be HH:MM"})
		}
		if end <= start {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
		}
		clock := schedule.FormatClock(end)
		endClock = &clock
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Opportunistic pre-check against the committed rows. This narrows
	// the race window but never closes it; a clean pre-check still has
	// to survive the transactional re-check below.
	existing, err := h.Reservations.ListForDeskDate(ctx, req.DeskID, req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	bookings := make([]schedule.Booking, 0, len(existing))
	for _, rv := range existing {
		b, err := repository.AsBooking(rv)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt reservation time"})
		}
		bookings = append(bookings, b)
	}
	if schedule.FindConflict(bookings, start, end) != nil {
		metrics.BookingConflicts.WithLabelValues("precheck").Inc()
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot already booked"})
	}

	created, err := h.Reservations.Create(ctx, userID, req.DeskID, req.BookingDate,
		start, end, schedule.FormatClock(start), endClock)
	if err != nil {
		switch err {
		case repository.ErrSlotTaken:
			metrics.BookingConflicts.WithLabelValues("transaction").Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot already booked"})
		case repository.ErrDeskUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"error": "desk is unavailable"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
		}
	}
	metrics.BookingsCreated.Inc()

	h.publishConfirmed(created)

	return c.JSON(http.StatusCreated, bookingResp{
		Reservation:     created,
		EffectiveStatus: created.EffectiveStatus(time.Now()),
	})
}

// publishConfirmed emits the booking.confirmed event best-effort in
// the background. The booking is already committed; a broker outage
// only costs the audit line.
func (h *BookingHandler) publishConfirmed(res model.Reservation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.BookingConfirmedEvent{
			ReservationID: res.ID,
			UserID:        res.UserID,
			DeskID:        res.DeskID,
			BookingDate:   res.BookingDate.Format("2006-01-02"),
			StartTime:     res.StartTime,
			EndTime:       res.EndTime,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if u, err := h.Users.GetByID(ctx, res.UserID); err == nil {
			ev.UserEmail = u.Email
		}
		if d, err := h.Desks.GetByID(ctx, res.DeskID); err == nil {
			ev.DeskName = d.Name
			if f, err := h.Floors.GetByID(ctx, d.FloorID); err == nil {
				ev.FloorName = f.Name
				if l, err := h.Locations.GetByID(ctx, f.LocationID); err == nil {
					ev.LocationName = l.Name
				}
			}
		}
		_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
	}()
}

// Mine handles GET /v1/bookings/mine and lists the caller's bookings
// with desk/floor/location names and the derived effective status.
func (h *BookingHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reservations.ListForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	now := time.Now()
	out := make([]echo.Map, 0, len(items))
	for _, rv := range items {
		out = append(out, echo.Map{
			"booking":          rv,
			"effective_status": rv.EffectiveStatus(now),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Cancel handles POST /v1/bookings/:id/cancel. Cancellation is a
// one-way status flip; the row is never deleted and the slot becomes
// immediately re-bookable.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Cancel(ctx, id, userID, isAdmin(c))
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrBadState:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}
	metrics.BookingsCancelled.Inc()
	return c.JSON(http.StatusOK, bookingResp{
		Reservation:     res,
		EffectiveStatus: res.EffectiveStatus(time.Now()),
	})
}

// CheckIn handles POST /v1/bookings/:id/check-in. Only the booking's
// owner may check in, only while the booking is CONFIRMED, and only on
// the booking date itself.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.CheckIn(ctx, id, userID, time.Now())
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrBadState:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be checked in"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
		}
	}
	metrics.CheckIns.Inc()
	return c.JSON(http.StatusOK, bookingResp{
		Reservation:     res,
		EffectiveStatus: res.EffectiveStatus(time.Now()),
	})
}
