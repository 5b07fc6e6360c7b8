// Package rest wires the reputation and moderation services into an HTTP
// API. Authentication happens upstream; requests arrive with the caller's
// ID in the identity header, and the admin group is reachable only through
// the admin-gated proxy.
package rest

import (
	"net/http"
	"time"

	"github.com/anglerhub/pondkeeper/internal/database"
	"github.com/anglerhub/pondkeeper/internal/rest/handler"
	"github.com/anglerhub/pondkeeper/internal/rest/middleware"
	"github.com/anglerhub/pondkeeper/internal/setup/config"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewServer builds the echo instance with all routes and middleware
// registered. The caller owns the listener lifecycle.
func NewServer(db database.Client, cfg *config.Server, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))
	e.Use(middleware.Identity())

	if cfg.RequestTimeout > 0 {
		e.Use(echomw.TimeoutWithConfig(echomw.TimeoutConfig{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Millisecond,
		}))
	}

	registerRoutes(e, db, logger)

	return e
}

// registerRoutes attaches every handler to its route group.
func registerRoutes(e *echo.Echo, db database.Client, logger *zap.Logger) {
	service := db.Service()

	votes := handler.NewVote(service.Vote(), logger)
	moderation := handler.NewModeration(service.Moderation(), logger)
	admin := handler.NewAdmin(service.Admin(), logger)
	reports := handler.NewReport(service.Report(), logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	v1 := e.Group("/v1")

	posts := v1.Group("/posts/:postID")
	posts.GET("/reputation", votes.PostReputation)
	posts.POST("/votes", votes.Cast, middleware.RequireIdentity())
	posts.DELETE("/votes", votes.Retract, middleware.RequireIdentity())

	users := v1.Group("/users/:userID")
	users.GET("/reputation", votes.Stats)
	users.GET("/reputation/logs", votes.Logs)
	users.GET("/restrictions", moderation.History)
	users.GET("/restrictions/effective", moderation.Effective)
	users.POST("/restrictions", moderation.Apply, middleware.RequireIdentity())

	v1.DELETE("/restrictions/:restrictionID", moderation.Deactivate, middleware.RequireIdentity())

	reportGroup := v1.Group("/reports", middleware.RequireIdentity())
	reportGroup.POST("", reports.File)
	reportGroup.GET("", reports.List)
	reportGroup.POST("/:reportID/resolution", reports.Resolve)

	adminGroup := v1.Group("/admin", middleware.RequireIdentity())
	adminGroup.POST("/awards", admin.Award)
	adminGroup.POST("/users/:userID/restrictions", admin.ForceRestriction)
	adminGroup.DELETE("/users/:userID/reputation", admin.PurgeReputation)
	adminGroup.GET("/users/:userID/reputation/logs", votes.AdminLogs)
}

// requestLogger logs each completed request with method, path, status and
// latency.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	accessLogger := logger.Named("http")

	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			accessLogger.Info("Request handled", fields...)

			return nil
		},
	})
}
