package handlers

import (
	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/handlers/common"
	"github.com/chapool/go-hdpay/internal/api/handlers/wallet"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetProvidersRoute(s),
		common.GetReadyRoute(s),
		wallet.GetAddressAtRoute(s),
		wallet.GetBalanceRoute(s),
		wallet.GetBlockHeightRoute(s),
		wallet.GetIncomingOutputsRoute(s),
		wallet.GetTransactionOutputsRoute(s),
		wallet.PostAddressRoute(s),
	}
}
