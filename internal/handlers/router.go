package handlers

import (
	"usersvc/internal/logger"
	"usersvc/internal/metrics"
	"usersvc/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Router wires handlers and middleware into an echo instance.
type Router struct {
	Users    *UserHandlers
	Managers *ManagerHandlers
	Health   *HealthHandlers
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

// Echo builds the HTTP server routes.
func (r *Router) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(r.Log)

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(r.Log))
	if r.Metrics != nil {
		e.Use(r.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(r.Metrics.Handler()))
	}

	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/live", r.Health.LivenessCheck)
	e.GET("/managers", r.Managers.ListManagers)

	e.POST("/create_user", r.Users.CreateUser)
	e.POST("/get_users", r.Users.GetUsers)
	e.POST("/delete_user", r.Users.DeleteUser)
	e.POST("/update_user", r.Users.UpdateUsers)

	return e
}
