package seed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// account 0, external chain 0, index 0 of the BIP44 bitcoin tree
var testPath = []uint32{44 + 0x80000000, 0x80000000, 0x80000000, 0, 0}

func newKeystore() keystore.Service {
	return keystore.NewServiceWithParams(keystore.ScryptParams{DKLen: 32, N: 1024, R: 8, P: 1})
}

func writeSeed(t *testing.T, ks keystore.Service, mnemonic string, key string, format keystore.Format) string {
	t.Helper()

	blob, err := ks.Encrypt([]byte(mnemonic), key, format)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hd_seed.enc")
	require.NoError(t, os.WriteFile(path, blob, 0o600))

	return path
}

func TestLoadFernetSeed(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)
	path := writeSeed(t, ks, testMnemonic+"\n", key, keystore.FormatFernet)

	root, err := seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, key)
	require.NoError(t, err)

	a, err := root.PublicKeyAt(testPath)
	require.NoError(t, err)
	b, err := root.PublicKeyAt(testPath)
	require.NoError(t, err)

	assert.Len(t, a, 33)
	assert.Equal(t, a, b)
}

func TestLoadKeystoreSeed(t *testing.T) {
	ks := newKeystore()
	path := writeSeed(t, ks, testMnemonic, "operator passphrase", keystore.FormatKeystore)

	root, err := seed.NewVault(ks, keystore.FormatKeystore, "").Load(t.Context(), path, "operator passphrase")
	require.NoError(t, err)

	_, err = root.PublicKeyAt(testPath)
	require.NoError(t, err)
}

func TestLoadBIP39PassphraseChangesTree(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)
	path := writeSeed(t, ks, testMnemonic, key, keystore.FormatFernet)

	plain, err := seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, key)
	require.NoError(t, err)
	salted, err := seed.NewVault(ks, keystore.FormatAuto, "TREZOR").Load(t.Context(), path, key)
	require.NoError(t, err)

	a, err := plain.PublicKeyAt(testPath)
	require.NoError(t, err)
	b, err := salted.PublicKeyAt(testPath)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLoadNotFound(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)

	_, err = seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), filepath.Join(t.TempDir(), "missing.enc"), key)
	require.ErrorIs(t, err, seed.ErrSeedNotFound)
	require.ErrorIs(t, err, chain.ErrConfiguration)
}

func TestLoadMissingKey(t *testing.T) {
	_, err := seed.NewVault(newKeystore(), keystore.FormatAuto, "").Load(t.Context(), "/does/not/matter", "")
	require.ErrorIs(t, err, seed.ErrMissingKey)
}

func TestLoadWrongKey(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)
	other, err := ks.GenerateFernetKey()
	require.NoError(t, err)
	path := writeSeed(t, ks, testMnemonic, key, keystore.FormatFernet)

	root, err := seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, other)
	require.ErrorIs(t, err, seed.ErrDecryptionFailed)
	require.ErrorIs(t, err, chain.ErrSeed)
	assert.Nil(t, root)
}

func TestLoadCorruptedFile(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hd_seed.enc")
	require.NoError(t, os.WriteFile(path, []byte("gAAAAA-not-a-token"), 0o600))

	_, err = seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, key)
	require.ErrorIs(t, err, seed.ErrDecryptionFailed)

	require.NoError(t, os.WriteFile(path, []byte(`{"crypto":`), 0o600))
	_, err = seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, "passphrase")
	require.ErrorIs(t, err, seed.ErrDecryptionFailed)
}

func TestLoadInvalidMnemonic(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)

	tests := []struct {
		name     string
		mnemonic string
	}{
		{"13 words", testMnemonic + " abandon"},
		{"11 words", strings.Repeat("abandon ", 11)},
		{"bad checksum", strings.Repeat("abandon ", 12)},
		{"not in wordlist", strings.Repeat("abandon ", 11) + "qwertyuiop"},
		{"blank", "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeed(t, ks, tt.mnemonic, key, keystore.FormatFernet)

			_, err := seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, key)
			require.ErrorIs(t, err, seed.ErrInvalidMnemonic)
			require.ErrorIs(t, err, chain.ErrSeed)
			assert.NotContains(t, err.Error(), "abandon")
		})
	}
}

func TestValidateAndGenerateMnemonic(t *testing.T) {
	require.NoError(t, seed.ValidateMnemonic(testMnemonic))
	require.ErrorIs(t, seed.ValidateMnemonic(testMnemonic+" abandon"), seed.ErrInvalidMnemonic)

	for bits, words := range map[int]int{128: 12, 160: 15, 192: 18, 224: 21, 256: 24} {
		m, err := seed.GenerateMnemonic(bits)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(m), words)
		require.NoError(t, seed.ValidateMnemonic(m))
	}

	_, err := seed.GenerateMnemonic(100)
	require.Error(t, err)
}

func TestRootKeyWipe(t *testing.T) {
	ks := newKeystore()
	key, err := ks.GenerateFernetKey()
	require.NoError(t, err)
	path := writeSeed(t, ks, testMnemonic, key, keystore.FormatFernet)

	root, err := seed.NewVault(ks, keystore.FormatAuto, "").Load(t.Context(), path, key)
	require.NoError(t, err)

	root.Wipe()
	root.Wipe()

	_, err = root.PublicKeyAt(testPath)
	require.ErrorIs(t, err, seed.ErrWiped)
}
