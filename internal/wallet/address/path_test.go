package address_test

import (
	"testing"

	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	indices, err := address.ParsePath("m/44'/0'/0'/0/5")
	require.NoError(t, err)
	assert.Equal(t, []uint32{2147483692, 2147483648, 2147483648, 0, 5}, indices)

	indices, err = address.ParsePath("m/84h/2h/0h/1/0")
	require.NoError(t, err)
	assert.Equal(t, []uint32{2147483732, 2147483650, 2147483648, 1, 0}, indices)

	indices, err = address.ParsePath("m")
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestParsePathInvalid(t *testing.T) {
	for _, path := range []string{
		"",
		"44'/0'/0'/0/0",
		"m/44'//0",
		"m/44'/x/0",
		"m/2147483648",
		"m/-1",
		"m/h",
	} {
		_, err := address.ParsePath(path)
		require.ErrorIs(t, err, address.ErrInvalidPath, path)
		require.ErrorIs(t, err, chain.ErrUnsupportedConfiguration, path)
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "m/44'/2'/0'/0/7", address.JoinPath("m/44'/2'/0'/0", 7))
	assert.Equal(t, "m/44'/2'/0'/0/7", address.JoinPath("m/44'/2'/0'/0/", 7))
}
