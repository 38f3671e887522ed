package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/repository"
)

// AdminFloorHandler manages floors and their floor-plan grid sizes.
type AdminFloorHandler struct {
	Locations *repository.LocationRepo
	Floors    *repository.FloorRepo
}

func NewAdminFloorHandler(l *repository.LocationRepo, f *repository.FloorRepo) *AdminFloorHandler {
	if l == nil || f == nil {
		panic("nil repository passed to NewAdminFloorHandler")
	}
	return &AdminFloorHandler{Locations: l, Floors: f}
}

type floorReq struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	GridRows uint32 `json:"grid_rows" validate:"required,min=1,max=100"`
	GridCols uint32 `json:"grid_cols" validate:"required,min=1,max=100"`
}

// Create handles POST /v1/admin/locations/:id/floors.
func (h *AdminFloorHandler) Create(c echo.Context) error {
	locationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || locationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	var req floorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and grid dimensions (1-100) are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Locations.GetByID(ctx, locationID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	floor := model.Floor{
		LocationID: locationID,
		Name:       req.Name,
		GridRows:   req.GridRows,
		GridCols:   req.GridCols,
	}
	if err := h.Floors.Create(ctx, &floor); err != nil {
		if isDuplicate(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "floor name already exists in this location"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create floor failed"})
	}
	created, err := h.Floors.GetByID(ctx, floor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/admin/floors/:id. Shrinking the grid does not
// move desks; desks outside the new grid keep their coordinates and the
// client renders them off-plan until an admin repositions them.
func (h *AdminFloorHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	var req floorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and grid dimensions (1-100) are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Floors.Update(ctx, id, req.Name, req.GridRows, req.GridCols); err != nil {
		switch {
		case err == repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		case isDuplicate(err):
			return c.JSON(http.StatusConflict, echo.Map{"error": "floor name already exists in this location"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update floor failed"})
		}
	}
	updated, err := h.Floors.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/floors/:id. A floor that still has
// desks is rejected with 409.
func (h *AdminFloorHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Floors.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "floor still has desks"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete floor failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
