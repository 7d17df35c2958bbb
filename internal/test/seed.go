package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/stretchr/testify/require"
)

// TestMnemonic is the BIP39 test vector mnemonic ("abandon" x11 + "about").
const TestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// WriteTestSeed encrypts mnemonic with a fresh Fernet key into a temp file and
// returns its path and the key.
func WriteTestSeed(t *testing.T, mnemonic string) (string, string) {
	t.Helper()

	ks := keystore.NewService()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)

	blob, err := ks.Encrypt([]byte(mnemonic), key, keystore.FormatFernet)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hd_seed.enc")
	require.NoError(t, os.WriteFile(path, blob, 0o600))

	return path, key
}

// NewTestSeedManager returns a seed manager over an encrypted TestMnemonic.
//
//nolint:ireturn
func NewTestSeedManager(t *testing.T) seed.Manager {
	t.Helper()

	path, key := WriteTestSeed(t, TestMnemonic)
	m := seed.NewManager(seed.NewVault(keystore.NewService(), keystore.FormatAuto, ""), path, key)
	t.Cleanup(m.Clear)

	return m
}
