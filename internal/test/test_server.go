package test

import (
	"context"
	"testing"
	"time"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/router"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/dropbox/godropbox/time2"
)

// FixedTime is the time reported by the mock clock of test servers.
var FixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// NewTestConfig returns a server config with BTC and LTC on mainnet, hdwallet
// addresses over an encrypted TestMnemonic and no chain data endpoints.
func NewTestConfig(t *testing.T) config.Server {
	t.Helper()

	path, key := WriteTestSeed(t, TestMnemonic)

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Logger.PrettyPrintConsole = false
	cfg.Management.ProbeWriteablePathsAbs = []string{t.TempDir()}
	cfg.Wallet.CurrencyTableFile = ""
	cfg.Wallet.Seed = config.Seed{EncryptedFile: path, Key: key}
	cfg.Wallet.Currencies = []config.Currency{
		{Symbol: "BTC", Network: "mainnet", AddressSource: "hdwallet"},
		{Symbol: "LTC", Network: "mainnet", AddressSource: "hdwallet"},
	}

	return cfg
}

// WithTestServer runs closure against a fully initialized server built from
// NewTestConfig.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(t), closure)
}

// WithTestServerConfigurable is WithTestServer with a caller supplied config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(t.Context(), cfg)
	if err != nil {
		t.Fatalf("failed to init server: %v", err)
	}

	s.Clock = time2.NewMockClock(FixedTime)
	router.Init(s)

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("failed to shutdown server: %v", errs)
	}
}
