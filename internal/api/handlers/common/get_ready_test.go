package common_test

import (
	"net/http"
	"os"
	"testing"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/test"
	"github.com/stretchr/testify/require"
)

func TestGetReadyReadiness(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetReadyReadinessBroken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		// forcefully remove an initialized component to check if ready state works
		wallet := s.Wallet
		s.Wallet = nil
		t.Cleanup(wallet.Close)

		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}

func TestGetReadySeedMissingNotReady(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, os.Remove(s.Config.Wallet.Seed.EncryptedFile))

		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}

func TestGetReadyNodeOnlyWithoutSeed(t *testing.T) {
	cfg := test.NewTestConfig(t)
	require.NoError(t, os.Remove(cfg.Wallet.Seed.EncryptedFile))
	cfg.Wallet.Currencies = []config.Currency{
		{Symbol: "BTC", Network: "mainnet", AddressSource: "node", NodeURL: "http://127.0.0.1:8332", NodeUser: "shkeeper", NodePassword: "rpc-secret"},
	}

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Ready.", res.Body.String())

		res = test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}
