package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ummatcal/internal/interfaces/api/handler"
	"ummatcal/internal/pkg/logger"
)

// Config holds the dependencies for the router.
type Config struct {
	ReminderHandler *handler.ReminderHandler
	SettingsHandler *handler.SettingsHandler
	LineHandler     *handler.LineHandler
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Line-Signature"},
		MaxAge:       300,
	}))

	// Health check
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api")
	api.GET("/reminders", cfg.ReminderHandler.List)
	api.POST("/reminders", cfg.ReminderHandler.Create)
	api.PUT("/reminders/:id", cfg.ReminderHandler.Update)
	api.DELETE("/reminders/:id", cfg.ReminderHandler.Delete)
	api.GET("/sounds", cfg.ReminderHandler.Sounds)
	api.GET("/settings/daily", cfg.SettingsHandler.GetDaily)
	api.PUT("/settings/daily", cfg.SettingsHandler.PutDaily)

	// LINE webhook endpoint (notification action responses)
	e.POST("/callback", cfg.LineHandler.HandleWebhook)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
