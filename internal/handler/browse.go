package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/repository"
)

// BrowseHandler serves the read-only hierarchy every authenticated
// user needs to pick a desk: locations, their floors, and the desks on
// a floor. These endpoints sit behind the response cache; they change
// only when an admin edits reference data.
type BrowseHandler struct {
	Locations *repository.LocationRepo
	Floors    *repository.FloorRepo
	Desks     *repository.DeskRepo
}

func NewBrowseHandler(l *repository.LocationRepo, f *repository.FloorRepo, d *repository.DeskRepo) *BrowseHandler {
	if l == nil || f == nil || d == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{Locations: l, Floors: f, Desks: d}
}

// ListLocations handles GET /v1/locations.
func (h *BrowseHandler) ListLocations(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Locations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListFloors handles GET /v1/locations/:id/floors.
func (h *BrowseHandler) ListFloors(c echo.Context) error {
	locationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || locationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Locations.GetByID(ctx, locationID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Floors.ListByLocation(ctx, locationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListDesks handles GET /v1/floors/:id/desks.
func (h *BrowseHandler) ListDesks(c echo.Context) error {
	floorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || floorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Floors.GetByID(ctx, floorID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Desks.ListByFloor(ctx, floorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
