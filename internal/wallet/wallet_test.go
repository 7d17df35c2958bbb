package wallet_test

import (
	"testing"
	"time"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/test"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Server {
	t.Helper()

	path, key := test.WriteTestSeed(t, test.TestMnemonic)

	var cfg config.Server
	cfg.Wallet.Seed = config.Seed{EncryptedFile: path, Key: key}
	cfg.Wallet.Currencies = []config.Currency{
		{Symbol: "BTC", Network: "mainnet", AddressSource: "hdwallet"},
		{Symbol: "LTC", Network: "mainnet", AddressSource: "hdwallet"},
	}

	return cfg
}

func TestInitializeAndIssueAddresses(t *testing.T) {
	ctx := t.Context()

	c, err := wallet.Initialize(ctx, testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Equal(t, []chain.Currency{"BTC", "LTC"}, c.Service.Currencies())
	for _, st := range c.Service.Statuses() {
		assert.Equal(t, provider.Uninitialized.String(), st.State)
	}

	d, err := c.Service.NewAddress(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), d.Index)
	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", d.Address)
	assert.Equal(t, "m/44'/0'/0'/0/0", d.Path)

	d, err = c.Service.NewAddress(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), d.Index)

	ltc, err := c.Service.NewAddress(ctx, "LTC")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), ltc.Index)
	assert.Equal(t, byte('L'), ltc.Address[0])

	at, err := c.Service.AddressAt(ctx, "BTC", 0)
	require.NoError(t, err)
	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", at.Address)

	// AddressAt does not allocate
	d, err = c.Service.NewAddress(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), d.Index)

	_, err = c.Service.NewAddress(ctx, "DOGE")
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
}

func TestReadsWithoutSourceFail(t *testing.T) {
	c, err := wallet.Initialize(t.Context(), testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Service.GetBalance(t.Context(), "BTC", "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA")
	require.ErrorIs(t, err, chain.ErrConfiguration)
}

func TestInitializeRejectsUnknownCurrency(t *testing.T) {
	cfg := testConfig(t)
	cfg.Wallet.Currencies = append(cfg.Wallet.Currencies, config.Currency{Symbol: "XMR", Network: "mainnet", AddressSource: "hdwallet"})

	_, err := wallet.Initialize(t.Context(), cfg, nil)
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
}

func TestInitializeRejectsUnknownSeedFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Wallet.Seed.Format = "pgp"

	_, err := wallet.Initialize(t.Context(), cfg, nil)
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
}

func TestVerificationAddresses(t *testing.T) {
	cfg := testConfig(t)
	cfg.Wallet.Currencies = append(cfg.Wallet.Currencies, config.Currency{
		Symbol: "BTC", Network: "testnet", AddressSource: "node", NodeURL: "http://127.0.0.1:18332", NodeUser: "shkeeper", NodePassword: "rpc-secret",
	})
	cfg.Wallet.Currencies = cfg.Wallet.Currencies[1:]

	c, err := wallet.Initialize(t.Context(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	addrs, err := wallet.VerificationAddresses(t.Context(), c.Providers)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, chain.Currency("LTC"), addrs[0].Currency)
	assert.Equal(t, uint32(0), c.Providers.Statuses()[1].NextIndex)
}

func TestMnemonicVerificationAddresses(t *testing.T) {
	var cfg config.Server
	cfg.Wallet.Currencies = []config.Currency{
		{Symbol: "BTC", Network: "mainnet", AddressSource: "hdwallet"},
		{Symbol: "LTC", Network: "testnet", AddressSource: "node", NodeURL: "http://127.0.0.1:19332"},
		{Symbol: "LTC", AddressSource: "hdwallet"},
	}

	addrs, err := wallet.MnemonicVerificationAddresses(cfg, test.TestMnemonic)
	require.NoError(t, err)
	require.Len(t, addrs, 2)

	assert.Equal(t, chain.Currency("BTC"), addrs[0].Currency)
	assert.Equal(t, chain.Mainnet, addrs[0].Network)
	assert.Equal(t, "m/44'/0'/0'/0/0", addrs[0].Path)
	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", addrs[0].Address)
	assert.Equal(t, chain.Currency("LTC"), addrs[1].Currency)
	assert.Equal(t, chain.Mainnet, addrs[1].Network)

	_, err = wallet.MnemonicVerificationAddresses(cfg, "abandon abandon abandon")
	require.ErrorIs(t, err, seed.ErrInvalidMnemonic)
}

func TestCheckConfiguration(t *testing.T) {
	cfg := config.Server{}
	cfg.Wallet.Currencies = []config.Currency{
		{Symbol: "BTC", AddressSource: "hdwallet", PreferChainData: true},
		{Symbol: "LTC", AddressSource: "node"},
		{Symbol: "DOGE", AddressSource: "paper"},
		{Symbol: "BCH", AddressSource: "node", NodeURL: "http://bitcoind:8332", NodeUser: "shkeeper"},
	}

	warnings := wallet.CheckConfiguration(cfg)
	assert.Contains(t, warnings, "BTC: chain data preferred for reads but no endpoint configured")
	assert.Contains(t, warnings, "BTC configuration incomplete, missing: GETBLOCK_ACCESS_TOKEN")
	assert.Contains(t, warnings, "LTC configuration incomplete, missing: LTC_RPC_URL, GETBLOCK_ACCESS_TOKEN")
	assert.Contains(t, warnings, `DOGE: unknown address source "paper"`)
	assert.Contains(t, warnings, "BCH configuration incomplete, missing: BCH_RPC_PASSWORD")
	assert.Contains(t, warnings, "HD wallet configuration incomplete, missing: HD_WALLET_SEED_ENCRYPTED_FILE, HD_WALLET_ENCRYPTION_KEY")

	assert.Empty(t, wallet.CheckConfiguration(config.Server{}))
}

func TestToProviderConfig(t *testing.T) {
	cd := config.ChainData{Timeout: 5 * time.Second, RequestsPerSecond: 3, BreakerMinRequests: 4}
	cfg := wallet.ToProviderConfig(config.Currency{
		Symbol:          "btc",
		Network:         "Testnet",
		AddressSource:   "hdwallet",
		PreferChainData: true,
		ChainDataURL:    "https://go.getblock.io/token/",
	}, cd)

	assert.Equal(t, chain.Currency("BTC"), cfg.Currency)
	assert.Equal(t, chain.Testnet, cfg.Network)
	assert.True(t, cfg.PreferChainData)
	require.NotNil(t, cfg.ChainData)
	assert.Equal(t, 5*time.Second, cfg.ChainData.Timeout)
	assert.Equal(t, 3, cfg.ChainData.RequestsPerSecond)
	assert.Nil(t, cfg.Node)
	assert.Equal(t, uint32(4), cfg.Breaker.MinRequests)
	assert.InDelta(t, 0.6, cfg.Breaker.FailureRatio, 1e-9)
}
