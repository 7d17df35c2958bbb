package chain_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryRows(t *testing.T) {
	reg := chain.DefaultRegistry()

	btc, err := reg.Lookup("BTC", chain.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "m/44'/0'/0'/0", btc.BasePath)
	assert.Equal(t, &chaincfg.MainNetParams, btc.Net)
	assert.EqualValues(t, chain.DefaultMaxConfirmations, btc.MaxConfirmations)

	ltc, err := reg.Lookup("LTC", chain.Testnet)
	require.NoError(t, err)
	assert.Equal(t, "m/44'/2'/0'/0", ltc.BasePath)
	assert.Equal(t, "tltc", ltc.Net.Bech32HRPSegwit)

	assert.Equal(t, []chain.Currency{"BTC", "LTC"}, reg.Currencies())
}

func TestLookupUnsupported(t *testing.T) {
	reg := chain.DefaultRegistry()

	_, err := reg.Lookup("DOGE", chain.Mainnet)
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)

	_, err = reg.Lookup("BTC", chain.Network("regtest"))
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
}

func TestRegisterValidation(t *testing.T) {
	reg := chain.NewRegistry()

	tests := []struct {
		name   string
		params *chain.Params
	}{
		{"nil", nil},
		{"no symbol", &chain.Params{Network: chain.Mainnet, BasePath: "m/44'/3'/0'/0", Encoding: chain.EncodingP2PKH, Net: &chaincfg.MainNetParams}},
		{"bad network", &chain.Params{Currency: "DOGE", Network: "signet", BasePath: "m/44'/3'/0'/0", Encoding: chain.EncodingP2PKH, Net: &chaincfg.MainNetParams}},
		{"bad path", &chain.Params{Currency: "DOGE", Network: chain.Mainnet, BasePath: "44'/3'/0'/0", Encoding: chain.EncodingP2PKH, Net: &chaincfg.MainNetParams}},
		{"bad encoding", &chain.Params{Currency: "DOGE", Network: chain.Mainnet, BasePath: "m/44'/3'/0'/0", Encoding: "p2tr", Net: &chaincfg.MainNetParams}},
		{"no net", &chain.Params{Currency: "DOGE", Network: chain.Mainnet, BasePath: "m/44'/3'/0'/0", Encoding: chain.EncodingP2PKH}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.params)
			require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
		})
	}

	require.NoError(t, reg.Register(&chain.Params{
		Currency: "DOGE",
		Network:  chain.Mainnet,
		BasePath: "m/44'/3'/0'/0",
		Encoding: chain.EncodingP2PKH,
		Net:      &chaincfg.MainNetParams,
	}))
	doge, err := reg.Lookup("DOGE", chain.Mainnet)
	require.NoError(t, err)
	assert.EqualValues(t, chain.DefaultMaxConfirmations, doge.MaxConfirmations)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, chain.Currency("BTC"), chain.ParseCurrency(" btc "))
	assert.Equal(t, chain.Testnet, chain.ParseNetwork("TestNet"))
}

func TestSumOutputs(t *testing.T) {
	assert.True(t, chain.SumOutputs(nil).Equal(decimal.Zero))

	outs := []chain.Output{
		{Amount: decimal.RequireFromString("0.1")},
		{Amount: decimal.RequireFromString("0.2")},
	}
	assert.Equal(t, "0.3", chain.SumOutputs(outs).String())
}
