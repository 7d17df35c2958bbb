package common

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/labstack/echo/v4"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness check
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(StatusNotReady, "Not ready.")
		}

		mgmt := s.Config.Management
		if err := ProbeLiveness(c.Request().Context(), s.Clock, s.Config.Wallet.ProbeSeedFile(), mgmt.ProbeWriteablePathsAbs, mgmt.ProbeWriteableTouchfile); err != nil {
			return c.String(StatusNotReady, "Not healthy.")
		}

		return c.String(http.StatusOK, "Healthy.")
	}
}
