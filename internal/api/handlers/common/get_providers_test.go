package common_test

import (
	"net/http"
	"testing"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/test"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProviders(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/providers", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var statuses []provider.Status
		test.ParseResponseAndValidate(t, res, &statuses)
		require.Len(t, statuses, 2)
		assert.Equal(t, "BTC", statuses[0].Currency.String())
		assert.Equal(t, "uninitialized", statuses[0].State)
		assert.Equal(t, provider.AddressSourceHDWallet, statuses[0].AddressSource)

		// status requests never initialize a provider
		assert.False(t, s.Wallet.Seeds.IsInitialized())
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/btc/addresses", nil, nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		body := res.Body.String()
		assert.Contains(t, body, `hdpay_addresses_issued_total{currency="BTC",source="hdwallet"} 1`)
		assert.Contains(t, body, `hdpay_provider_ready{currency="BTC"} 1`)
		assert.Contains(t, body, "hdpay_requests_total")
	})
}
