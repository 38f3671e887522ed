// Package router wires HTTP routes to their handlers and the
// middleware that protects them.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/handler"
	"github.com/iliyamo/desk-reservation/internal/middleware"
	"github.com/iliyamo/desk-reservation/internal/model"
)

// RegisterRoutes registers the routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register, login,
// refresh and logout live under /v1/auth and need no access token;
// /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterEmployee registers the endpoints every authenticated user
// can call: browsing the location hierarchy, the floor timeline and
// the booking lifecycle. cacheMW and rateMW are optional; a nil slot
// means Redis is not configured and the route runs unwrapped.
func RegisterEmployee(
	e *echo.Echo,
	browse *handler.BrowseHandler,
	avail *handler.AvailabilityHandler,
	bookings *handler.BookingHandler,
	jwtSecret string,
	cacheMW, rateMW echo.MiddlewareFunc,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleEmployee, model.RoleAdmin),
	)

	// Reference data changes rarely; these reads sit behind the
	// response cache when Redis is available.
	browseMW := []echo.MiddlewareFunc{}
	if cacheMW != nil {
		browseMW = append(browseMW, cacheMW)
	}
	g.GET("/locations", browse.ListLocations, browseMW...)
	g.GET("/locations/:id/floors", browse.ListFloors, browseMW...)
	g.GET("/floors/:id/desks", browse.ListDesks, browseMW...)

	// The timeline must reflect bookings immediately, so it is never
	// cached.
	g.GET("/floors/:id/timeline", avail.Timeline)

	writeMW := []echo.MiddlewareFunc{}
	if rateMW != nil {
		writeMW = append(writeMW, rateMW)
	}
	g.POST("/bookings", bookings.Create, writeMW...)
	g.GET("/bookings/mine", bookings.Mine)
	g.POST("/bookings/:id/cancel", bookings.Cancel)
	g.POST("/bookings/:id/check-in", bookings.CheckIn)
}
