package common

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/labstack/echo/v4"
)

// StatusNotReady is returned by the readiness and liveness probes on failure.
const StatusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness check
// This endpoint returns 200 when our Service is ready to serve traffic (i.e. respond to queries).
// Providers initialize lazily, so ready does not mean any seed was decrypted yet.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(StatusNotReady, "Not ready.")
		}

		if err := ProbeReadiness(c.Request().Context(), s.Config.Wallet.ProbeSeedFile(), s.Config.Management.ProbeWriteablePathsAbs); err != nil {
			return c.String(StatusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
