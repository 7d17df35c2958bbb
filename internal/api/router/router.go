package router

import (
	"errors"
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/handlers"
	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/chapool/go-hdpay/internal/api/middleware"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = httpErrorHandler(s)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echomw.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echomw.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.Logger(s.Config.Logger))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "hdpay",
		Registerer: s.Metrics.Registry(),
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	s.Router = &api.Router{
		Routes:     nil,
		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),
		APIV1:      s.Echo.Group("/api/v1"),
	}

	handlers.AttachAllRoutes(s)
}

func httpErrorHandler(s *api.Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := httperrors.FromError(err)
		if httpErr.Code >= http.StatusInternalServerError {
			var known *httperrors.HTTPError
			if !errors.As(err, &known) {
				log.Error().Err(err).Msg("Unhandled error in request")
			}
			if !s.Config.Echo.HideInternalServerErrorDetails && httpErr.Type == httperrors.TypeGeneric {
				httpErr = httperrors.NewHTTPError(httpErr.Code, httpErr.Type, err.Error())
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(httpErr.Code)
		} else {
			werr = c.JSON(httpErr.Code, httpErr)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("Failed to write error response")
		}
	}
}
