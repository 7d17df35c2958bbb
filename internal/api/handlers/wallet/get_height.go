package wallet

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/labstack/echo/v4"
)

type HeightResponse struct {
	Currency chain.Currency `json:"currency"`
	Height   int64          `json:"height"`
}

func GetBlockHeightRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/:currency/height", getBlockHeightHandler(s))
}

func getBlockHeightHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		currency := currencyParam(c)

		height, err := s.Wallet.Service.GetBlockHeight(c.Request().Context(), currency)
		if err != nil {
			return httperrors.FromError(err)
		}

		return c.JSON(http.StatusOK, &HeightResponse{Currency: currency, Height: height})
	}
}
