package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/repository"
)

// AdminLocationHandler manages the location reference data. All
// endpoints require the admin role; route wiring enforces that.
type AdminLocationHandler struct {
	Locations *repository.LocationRepo
}

func NewAdminLocationHandler(l *repository.LocationRepo) *AdminLocationHandler {
	if l == nil {
		panic("nil repository passed to NewAdminLocationHandler")
	}
	return &AdminLocationHandler{Locations: l}
}

// isDuplicate reports whether a write failed on a unique constraint.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

type locationReq struct {
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	Address *string `json:"address"`
}

// Create handles POST /v1/admin/locations.
func (h *AdminLocationHandler) Create(c echo.Context) error {
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loc := model.Location{Name: req.Name, Address: req.Address}
	if err := h.Locations.Create(ctx, &loc); err != nil {
		if isDuplicate(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "location name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
	}
	created, err := h.Locations.GetByID(ctx, loc.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/admin/locations/:id.
func (h *AdminLocationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Locations.Update(ctx, id, req.Name, req.Address); err != nil {
		switch {
		case err == repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		case isDuplicate(err):
			return c.JSON(http.StatusConflict, echo.Map{"error": "location name already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update location failed"})
		}
	}
	updated, err := h.Locations.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/locations/:id. A location that still
// has floors is rejected with 409 rather than cascading.
func (h *AdminLocationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Locations.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "location still has floors"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete location failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
