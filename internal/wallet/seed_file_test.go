package wallet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chapool/go-hdpay/internal/test"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEncryptedSeedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "hd_seed.enc")

	key, err := wallet.WriteEncryptedSeed(path, test.TestMnemonic, "", keystore.FormatFernet, false)
	require.NoError(t, err)
	require.NotEmpty(t, key)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	root, err := seed.NewVault(keystore.NewService(), keystore.FormatAuto, "").Load(t.Context(), path, key)
	require.NoError(t, err)
	root.Wipe()

	_, err = wallet.WriteEncryptedSeed(path, test.TestMnemonic, key, keystore.FormatFernet, false)
	require.ErrorIs(t, err, wallet.ErrSeedFileExists)

	_, err = wallet.WriteEncryptedSeed(path, test.TestMnemonic, key, keystore.FormatFernet, true)
	require.NoError(t, err)
}

func TestWriteEncryptedSeedRejectsInvalidMnemonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hd_seed.enc")

	_, err := wallet.WriteEncryptedSeed(path, "abandon abandon abandon", "", keystore.FormatFernet, false)
	require.ErrorIs(t, err, seed.ErrInvalidMnemonic)
	assert.NoFileExists(t, path)
}

func TestWriteEncryptedSeedKeystoreNeedsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hd_seed.json")

	_, err := wallet.WriteEncryptedSeed(path, test.TestMnemonic, "", keystore.FormatKeystore, false)
	require.ErrorIs(t, err, seed.ErrMissingKey)
}
