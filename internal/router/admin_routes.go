package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/handler"
	"github.com/iliyamo/desk-reservation/internal/middleware"
	"github.com/iliyamo/desk-reservation/internal/model"
)

// RegisterAdmin registers the management endpoints under /v1/admin.
// Every route requires a valid JWT carrying the ADMIN role.
func RegisterAdmin(
	e *echo.Echo,
	locations *handler.AdminLocationHandler,
	floors *handler.AdminFloorHandler,
	desks *handler.AdminDeskHandler,
	reports *handler.AdminReportHandler,
	jwtSecret string,
) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.POST("/locations", locations.Create)
	g.PUT("/locations/:id", locations.Update)
	g.DELETE("/locations/:id", locations.Delete)

	g.POST("/locations/:id/floors", floors.Create)
	g.PUT("/floors/:id", floors.Update)
	g.DELETE("/floors/:id", floors.Delete)

	g.POST("/floors/:id/desks", desks.Create)
	g.PUT("/desks/:id", desks.Update)
	g.PUT("/desks/:id/availability", desks.SetAvailability)
	g.POST("/desks/:id/image", desks.UploadImage)
	g.DELETE("/desks/:id/image", desks.DeleteImage)
	g.DELETE("/desks/:id", desks.Delete)

	g.GET("/reports/bookings.xlsx", reports.Bookings)
}
