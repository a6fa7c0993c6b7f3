// Package app contains the web application: the dashboard page and the JSON
// API for listing and mutating persons.
package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/quillback/pointsboard/internal/config"
	"github.com/quillback/pointsboard/internal/sec"
	"github.com/quillback/pointsboard/internal/storage"
)

// New creates the web application server. Every route, including the
// dashboard page, sits behind HTTP Basic authentication against the
// configured credential store; failed authentication yields a 401 with a
// Basic challenge.
func New(cfg *config.Config, logger *slog.Logger, store storage.Persons) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)

	srv.Use(
		middleware.Recover(),
		middleware.BasicAuth(func(_, _ string, c echo.Context) (bool, error) {
			id, err := sec.Authenticate(c.Request(), cfg)
			if err != nil {
				// false (without an error) lets echo answer with the 401
				// challenge.
				return false, nil
			}
			ctx := sec.SetIdentity(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return true, nil
		}),
		logRequests(logger),
		middleware.Decompress(),
		middleware.Gzip(),
		middleware.Secure(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}),
	)

	handler{store: store}.register(srv)
	return srv
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.String("user", sec.GetIdentity(req.Context()).Username),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
