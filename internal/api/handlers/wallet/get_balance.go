package wallet

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	Currency chain.Currency  `json:"currency"`
	Address  string          `json:"address"`
	Balance  decimal.Decimal `json:"balance"`
}

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/:currency/addresses/:address/balance", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		currency := currencyParam(c)

		addr, err := requiredParam(c, "address")
		if err != nil {
			return err
		}

		balance, err := s.Wallet.Service.GetBalance(ctx, currency, addr)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Str("currency", currency.String()).Msg("Failed to get balance")
			return httperrors.FromError(err)
		}

		return c.JSON(http.StatusOK, &BalanceResponse{Currency: currency, Address: addr, Balance: balance})
	}
}
