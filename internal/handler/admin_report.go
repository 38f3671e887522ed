package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/desk-reservation/internal/repository"
)

// AdminReportHandler exports booking data as an Excel workbook with a
// raw bookings sheet and a per-desk utilization sheet.
type AdminReportHandler struct {
	Reports *repository.ReportRepo
}

func NewAdminReportHandler(r *repository.ReportRepo) *AdminReportHandler {
	if r == nil {
		panic("nil repository passed to NewAdminReportHandler")
	}
	return &AdminReportHandler{Reports: r}
}

// sheetWriter appends header and data rows to one sheet of a workbook,
// tracking the current row and bolding the header line.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func newSheet(f *excelize.File, name string, first bool) (*sheetWriter, error) {
	if first {
		f.SetSheetName("Sheet1", name)
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	return &sheetWriter{file: f, sheet: name, row: 1}, nil
}

func (w *sheetWriter) writeHeader(columns []string) error {
	if err := w.writeRow(toCells(columns)); err != nil {
		return err
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, 1)
	end, _ := excelize.CoordinatesToCellName(len(columns), 1)
	return w.file.SetCellStyle(w.sheet, start, end, style)
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func toCells(columns []string) []interface{} {
	out := make([]interface{}, len(columns))
	for i, c := range columns {
		out[i] = c
	}
	return out
}

// Bookings handles GET /v1/admin/reports/bookings.xlsx?from=YYYY-MM-DD&to=YYYY-MM-DD.
// The range is inclusive and defaults to the last 30 days. Cancelled
// bookings are included because the export is an audit trail.
func (h *AdminReportHandler) Bookings(c echo.Context) error {
	now := time.Now().UTC()
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" {
		from = now.AddDate(0, 0, -30).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}
	fromDay, err := time.Parse("2006-01-02", from)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	toDay, err := time.Parse("2006-01-02", to)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}
	if toDay.Before(fromDay) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not be before from"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	bookings, err := h.Reports.Bookings(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	utilization, err := h.Reports.Utilization(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bs, err := newSheet(f, "Bookings", true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
	}
	if err := bs.writeHeader([]string{
		"Date", "Location", "Floor", "Desk", "User Email", "User Name",
		"Start", "End", "Status",
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
	}
	for _, row := range bookings {
		name := ""
		if row.UserFullName != nil {
			name = *row.UserFullName
		}
		end := "end of day"
		if row.EndTime != nil {
			end = *row.EndTime
		}
		if err := bs.writeRow([]interface{}{
			row.BookingDate, row.LocationName, row.FloorName, row.DeskName,
			row.UserEmail, name, row.StartTime, end, row.Status,
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
		}
	}

	us, err := newSheet(f, "Utilization", false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
	}
	if err := us.writeHeader([]string{
		"Location", "Floor", "Desk", "Bookings", "Check-ins", "Cancelled",
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
	}
	for _, row := range utilization {
		if err := us.writeRow([]interface{}{
			row.LocationName, row.FloorName, row.DeskName,
			row.Bookings, row.CheckIns, row.Cancelled,
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build report failed"})
		}
	}

	filename := fmt.Sprintf("bookings_%s_%s.xlsx", from, to)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
