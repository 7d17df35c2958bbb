package wallet

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/labstack/echo/v4"
)

func GetAddressAtRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/:currency/derive/:index", getAddressAtHandler(s))
}

// Recomputes an already issued address. Does not allocate.
func getAddressAtHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		index, err := indexParam(c)
		if err != nil {
			return err
		}

		derived, err := s.Wallet.Service.AddressAt(c.Request().Context(), currencyParam(c), index)
		if err != nil {
			return httperrors.FromError(err)
		}

		return c.JSON(http.StatusOK, derived)
	}
}
