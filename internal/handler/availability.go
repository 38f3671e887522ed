package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/repository"
	"github.com/iliyamo/desk-reservation/internal/schedule"
)

// AvailabilityHandler renders the booking timeline for a floor: one
// row per desk with hourly cell states and positioned booking blocks.
// All interval math is delegated to the schedule package; this handler
// only fetches and re-types rows at the boundary.
type AvailabilityHandler struct {
	Floors       *repository.FloorRepo
	Desks        *repository.DeskRepo
	Reservations *repository.ReservationRepo
}

func NewAvailabilityHandler(f *repository.FloorRepo, d *repository.DeskRepo, r *repository.ReservationRepo) *AvailabilityHandler {
	if f == nil || d == nil || r == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Floors: f, Desks: d, Reservations: r}
}

// blockUser is the display info attached to booking blocks so the
// client can show who owns a booking when a card is inspected.
type blockUser struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// Timeline handles GET /v1/floors/:id/timeline?date=YYYY-MM-DD&from=8&to=20.
// from/to bound the visible working window and default to the full
// 24-hour day; the availability math always runs over the whole day.
func (h *AvailabilityHandler) Timeline(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	floorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || floorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	window := schedule.FullDay
	if v := c.QueryParam("from"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			window.From = n
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			window.To = n
		}
	}
	if !window.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hour window"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	floor, err := h.Floors.GetByID(ctx, floorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	desks, err := h.Desks.ListByFloor(ctx, floorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	reservations, err := h.Reservations.ListForFloorDate(ctx, floorID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// Re-type rows into the pure scheduling inputs.
	byDesk := make(map[uint64][]schedule.Booking, len(desks))
	users := make(map[uint64]blockUser)
	for _, rv := range reservations {
		b, err := repository.AsBooking(rv.Reservation)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt reservation time"})
		}
		byDesk[rv.DeskID] = append(byDesk[rv.DeskID], b)
		users[rv.UserID] = blockUser{Email: rv.UserEmail, FullName: rv.UserFullName}
	}
	rows := make([]schedule.Desk, 0, len(desks))
	for _, d := range desks {
		rows = append(rows, schedule.Desk{
			ID:          d.ID,
			FloorID:     floor.ID,
			FloorName:   floor.Name,
			Name:        d.Name,
			Capacity:    d.Capacity,
			Unavailable: d.IsUnavailable,
			Bookings:    byDesk[d.ID],
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":   date,
		"window": echo.Map{"from": window.From, "to": window.To},
		"floors": schedule.BuildTimeline(rows, window, userID),
		"users":  users,
	})
}
