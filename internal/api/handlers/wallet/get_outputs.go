package wallet

import (
	"net/http"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/labstack/echo/v4"
)

type OutputsResponse struct {
	Currency chain.Currency `json:"currency"`
	Outputs  []chain.Output `json:"outputs"`
}

func GetIncomingOutputsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/:currency/addresses/:address/outputs", getIncomingOutputsHandler(s))
}

func getIncomingOutputsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		addr, err := requiredParam(c, "address")
		if err != nil {
			return err
		}

		currency := currencyParam(c)
		outs, err := s.Wallet.Service.GetIncomingOutputs(c.Request().Context(), currency, addr)
		if err != nil {
			return httperrors.FromError(err)
		}

		return c.JSON(http.StatusOK, newOutputsResponse(currency, outs))
	}
}

func GetTransactionOutputsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/:currency/transactions/:txid", getTransactionOutputsHandler(s))
}

func getTransactionOutputsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		txid, err := requiredParam(c, "txid")
		if err != nil {
			return err
		}

		currency := currencyParam(c)
		outs, err := s.Wallet.Service.GetAddrByTx(c.Request().Context(), currency, txid)
		if err != nil {
			return httperrors.FromError(err)
		}

		return c.JSON(http.StatusOK, newOutputsResponse(currency, outs))
	}
}

func newOutputsResponse(currency chain.Currency, outs []chain.Output) *OutputsResponse {
	if outs == nil {
		outs = []chain.Output{}
	}

	return &OutputsResponse{Currency: currency, Outputs: outs}
}
