package wallet

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/labstack/echo/v4"
)

func PostAddressRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.POST("/:currency/addresses", postAddressHandler(s))
}

func postAddressHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		derived, err := s.Wallet.Service.NewAddress(ctx, currencyParam(c))
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to issue address")
			return httperrors.FromError(err)
		}

		return c.JSON(http.StatusCreated, derived)
	}
}
