package address_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testRoot(t *testing.T) *seed.RootKey {
	t.Helper()

	root, err := seed.RootFromMnemonic([]byte(testMnemonic), "")
	require.NoError(t, err)

	return root
}

func TestDeriveKnownVector(t *testing.T) {
	e := address.NewEngine(chain.DefaultRegistry())

	d, err := e.Derive(testRoot(t), "BTC", chain.Mainnet, 0)
	require.NoError(t, err)

	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", d.Address)
	assert.Equal(t, "m/44'/0'/0'/0/0", d.Path)
	assert.Equal(t, chain.Currency("BTC"), d.Currency)
	assert.Equal(t, chain.Mainnet, d.Network)
	assert.Zero(t, d.Index)
}

func TestDeriveNativeSegwitVector(t *testing.T) {
	reg := chain.NewRegistry()
	require.NoError(t, reg.Register(&chain.Params{
		Currency: "BTC",
		Network:  chain.Mainnet,
		BasePath: "m/84'/0'/0'/0",
		Encoding: chain.EncodingP2WPKH,
		Net:      &chaincfg.MainNetParams,
	}))

	d, err := address.NewEngine(reg).Derive(testRoot(t), "BTC", chain.Mainnet, 0)
	require.NoError(t, err)
	assert.Equal(t, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", d.Address)
}

func TestDeriveNetworkPrefixes(t *testing.T) {
	e := address.NewEngine(chain.DefaultRegistry())
	root := testRoot(t)

	ltc, err := e.Derive(root, "LTC", chain.Mainnet, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ltc.Address, "L"), ltc.Address)
	assert.Equal(t, "m/44'/2'/0'/0/0", ltc.Path)

	tbtc, err := e.Derive(root, "BTC", chain.Testnet, 0)
	require.NoError(t, err)
	assert.Contains(t, []byte{'m', 'n'}, tbtc.Address[0])

	// same coin type on both networks: same key, different encoding
	btc, err := e.Derive(root, "BTC", chain.Mainnet, 0)
	require.NoError(t, err)
	assert.NotEqual(t, btc.Address, tbtc.Address)
}

func TestDeriveDeterministicAndUnique(t *testing.T) {
	e := address.NewEngine(chain.DefaultRegistry())
	root := testRoot(t)
	other := testRoot(t)

	seen := make(map[string]uint32)
	for i := range uint32(50) {
		a, err := e.Derive(root, "BTC", chain.Mainnet, i)
		require.NoError(t, err)
		b, err := e.Derive(other, "BTC", chain.Mainnet, i)
		require.NoError(t, err)

		assert.Equal(t, a.Address, b.Address)

		prev, dup := seen[a.Address]
		require.False(t, dup, "index %d repeats address of index %d", i, prev)
		seen[a.Address] = i
	}
}

func TestDeriveConcurrent(t *testing.T) {
	e := address.NewEngine(chain.DefaultRegistry())
	root := testRoot(t)

	want, err := e.Derive(root, "LTC", chain.Mainnet, 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Derive(root, "LTC", chain.Mainnet, 3)
			assert.NoError(t, err)
			assert.Equal(t, want.Address, got.Address)
		}()
	}
	wg.Wait()
}

func TestDeriveUnsupported(t *testing.T) {
	e := address.NewEngine(chain.DefaultRegistry())
	root := testRoot(t)

	_, err := e.Derive(root, "DOGE", chain.Mainnet, 0)
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)

	_, err = e.Derive(root, "BTC", "signet", 0)
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)

	_, err = e.Derive(root, "BTC", chain.Mainnet, address.HardenedOffset)
	require.ErrorIs(t, err, address.ErrInvalidPath)

	_, err = address.Encode(make([]byte, 33), &chain.Params{Encoding: "p2tr", Net: &chaincfg.MainNetParams})
	require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration)
}

func TestDeriveWipedRoot(t *testing.T) {
	e := address.NewEngine(chain.DefaultRegistry())
	root := testRoot(t)
	root.Wipe()

	_, err := e.Derive(root, "BTC", chain.Mainnet, 0)
	require.ErrorIs(t, err, seed.ErrWiped)
}
