package middleware

import (
	"time"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger attaches a request scoped zerolog logger to the request context and
// logs one line per request at cfg.RequestLevel. Paths never include secrets,
// but query strings are left out regardless.
func Logger(cfg config.LoggerServer) echo.MiddlewareFunc {
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := log.With().
				Str("id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			return next(c)
		}
	}

	requestLog := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := cfg.RequestLevel
			if v.Error != nil && v.Status >= 500 {
				level = zerolog.ErrorLevel
			}

			zerolog.Ctx(c.Request().Context()).WithLevel(level).
				Int("status", v.Status).
				Dur("duration", v.Latency).
				Time("received", v.StartTime.Truncate(time.Millisecond)).
				Err(v.Error).
				Msg("Request")

			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return attach(requestLog(next))
	}
}
