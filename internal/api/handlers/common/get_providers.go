package common

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/labstack/echo/v4"
)

func GetProvidersRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/providers", getProvidersHandler(s))
}

// Provider status snapshot. Never triggers initialization.
func getProvidersHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.Wallet.Service.Statuses())
	}
}
