package wallet

import (
	"os"
	"path/filepath"

	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/pkg/errors"
)

// ErrSeedFileExists is returned by WriteEncryptedSeed when path exists and
// overwrite was not requested.
var ErrSeedFileExists = errors.New("seed file already exists")

// WriteEncryptedSeed validates mnemonic, encrypts it with key and writes it to
// path with owner-only permissions. An empty key with the Fernet format gets a
// fresh key, which is returned.
func WriteEncryptedSeed(path string, mnemonic string, key string, format keystore.Format, overwrite bool) (string, error) {
	if err := seed.ValidateMnemonic(mnemonic); err != nil {
		return "", err
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", errors.Wrap(ErrSeedFileExists, path)
		}
	}

	ks := keystore.NewService()
	if key == "" {
		if format == keystore.FormatKeystore {
			return "", errors.WithStack(seed.ErrMissingKey)
		}

		var err error
		if key, err = ks.GenerateFernetKey(); err != nil {
			return "", err
		}
	}

	blob, err := ks.Encrypt([]byte(mnemonic), key, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", errors.Wrap(err, "failed to create seed directory")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return "", errors.Wrap(err, "failed to write seed file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "failed to move seed file into place")
	}

	return key, nil
}
