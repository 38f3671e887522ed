package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/repository"
	"github.com/iliyamo/desk-reservation/internal/storage"
)

// AdminDeskHandler manages desks: CRUD, the availability lock and the
// photo upload. Desk photos go through the image store, which owns
// size and MIME validation.
type AdminDeskHandler struct {
	Floors *repository.FloorRepo
	Desks  *repository.DeskRepo
	Images *storage.ImageStore
}

func NewAdminDeskHandler(f *repository.FloorRepo, d *repository.DeskRepo, img *storage.ImageStore) *AdminDeskHandler {
	if f == nil || d == nil || img == nil {
		panic("nil dependency passed to NewAdminDeskHandler")
	}
	return &AdminDeskHandler{Floors: f, Desks: d, Images: img}
}

type deskReq struct {
	Name      string   `json:"name" validate:"required,min=1,max=255"`
	GridRow   uint32   `json:"grid_row" validate:"required,min=1,max=100"`
	GridCol   uint32   `json:"grid_col" validate:"required,min=1,max=100"`
	Capacity  uint32   `json:"capacity" validate:"required,min=1,max=1000"`
	Equipment []string `json:"equipment"`
	SpaceType string   `json:"space_type" validate:"required,oneof=DESK MEETING_ROOM PARKING_SPOT"`
}

type availabilityReq struct {
	IsUnavailable *bool `json:"is_unavailable" validate:"required"`
}

// Create handles POST /v1/admin/floors/:id/desks.
func (h *AdminDeskHandler) Create(c echo.Context) error {
	floorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || floorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	var req deskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, grid position, capacity and space_type are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Floors.GetByID(ctx, floorID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	desk := model.Desk{
		FloorID:   floorID,
		Name:      req.Name,
		GridRow:   req.GridRow,
		GridCol:   req.GridCol,
		Capacity:  req.Capacity,
		Equipment: req.Equipment,
		SpaceType: req.SpaceType,
	}
	if err := h.Desks.Create(ctx, &desk); err != nil {
		if isDuplicate(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "desk name already exists on this floor"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create desk failed"})
	}
	created, err := h.Desks.GetByID(ctx, desk.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/admin/desks/:id.
func (h *AdminDeskHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	var req deskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, grid position, capacity and space_type are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	desk, err := h.Desks.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	desk.Name = req.Name
	desk.GridRow = req.GridRow
	desk.GridCol = req.GridCol
	desk.Capacity = req.Capacity
	desk.Equipment = req.Equipment
	desk.SpaceType = req.SpaceType
	if err := h.Desks.Update(ctx, &desk); err != nil {
		if isDuplicate(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "desk name already exists on this floor"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update desk failed"})
	}
	updated, err := h.Desks.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// SetAvailability handles PUT /v1/admin/desks/:id/availability. Locking
// a desk hides it from new bookings immediately; existing bookings are
// left alone.
func (h *AdminDeskHandler) SetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_unavailable is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Desks.SetUnavailable(ctx, id, *req.IsUnavailable); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update desk failed"})
	}
	updated, err := h.Desks.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// UploadImage handles POST /v1/admin/desks/:id/image (multipart field
// "image"). A new upload replaces the previous photo; the old file is
// removed after the database points at the new one.
func (h *AdminDeskHandler) UploadImage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field 'image' is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if _, err := h.Desks.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	url, err := h.Images.Save(src)
	if err != nil {
		switch err {
		case storage.ErrTooLarge:
			return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "image exceeds the size limit"})
		case storage.ErrBadType:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only jpeg, png and webp images are accepted"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
		}
	}

	previous, err := h.Desks.SetImageURL(ctx, id, &url)
	if err != nil {
		// Roll back the orphaned file; the desk row was not updated.
		if rmErr := h.Images.Remove(url); rmErr != nil {
			log.Warn().Err(rmErr).Str("url", url).Msg("orphaned desk image left behind")
		}
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update desk failed"})
	}
	if previous != nil {
		if err := h.Images.Remove(*previous); err != nil {
			log.Warn().Err(err).Str("url", *previous).Msg("stale desk image left behind")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"image_url": url})
}

// DeleteImage handles DELETE /v1/admin/desks/:id/image.
func (h *AdminDeskHandler) DeleteImage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	previous, err := h.Desks.SetImageURL(ctx, id, nil)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update desk failed"})
	}
	if previous != nil {
		if err := h.Images.Remove(*previous); err != nil {
			log.Warn().Err(err).Str("url", *previous).Msg("stale desk image left behind")
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/admin/desks/:id. A desk with reservation
// history cannot be deleted; admins lock it instead.
func (h *AdminDeskHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	desk, err := h.Desks.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Desks.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "desk has reservations; mark it unavailable instead"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete desk failed"})
		}
	}
	if desk.ImageURL != nil {
		if err := h.Images.Remove(*desk.ImageURL); err != nil {
			log.Warn().Err(err).Str("url", *desk.ImageURL).Msg("stale desk image left behind")
		}
	}
	return c.NoContent(http.StatusNoContent)
}
