package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"scheduler/internal/handler"
	"scheduler/internal/logger"
	"scheduler/internal/metrics"
	"scheduler/internal/middleware"
)

// Handlers groups the HTTP handlers served under /api.
type Handlers struct {
	Auth  *handler.AuthHandler
	Event *handler.EventHandler
	User  *handler.UserHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, log *logger.Logger, guard *middleware.Guard, h Handlers) {
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestContext())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/users", h.User.ListUsers)
	api.GET("/users/:id", h.User.GetUser)
	api.GET("/events", h.Event.ListEvents)
	api.GET("/events/:id", h.Event.GetEvent)

	// Secured routes
	api.POST("/events", h.Event.CreateEvent, guard.RequireAuth())
	api.PUT("/events/:id", h.Event.UpdateEvent, guard.RequireEventOwner(middleware.ActionUpdated))
	api.DELETE("/events/:id", h.Event.DeleteEvent, guard.RequireEventOwner(middleware.ActionDeleted))
}
