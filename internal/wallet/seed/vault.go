package seed

import (
	"context"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

type vault struct {
	keystore   keystore.Service
	format     keystore.Format
	passphrase string
}

// NewVault creates a vault decrypting seed files of the given format with ks.
// passphrase is the optional BIP39 passphrase ("25th word"), empty by default.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewVault(ks keystore.Service, format keystore.Format, passphrase string) Vault {
	return &vault{
		keystore:   ks,
		format:     format,
		passphrase: passphrase,
	}
}

// Load implements Vault. Go strings are immutable, so the joined mnemonic string
// handed to the BIP39 library cannot be zeroed; only byte slices are.
func (v *vault) Load(ctx context.Context, path string, key string) (*RootKey, error) {
	log := util.LogFromContext(ctx).With().Str("component", "seed_vault").Logger()

	if key == "" {
		return nil, errors.WithStack(ErrMissingKey)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrSeedNotFound, "path %s", path)
		}
		return nil, errors.Wrapf(ErrSeedUnreadable, "path %s: %v", path, err)
	}

	plaintext, err := v.keystore.Decrypt(blob, key, v.format)
	if err != nil {
		switch {
		case errors.Is(err, keystore.ErrInvalidKey), errors.Is(err, keystore.ErrUnknownFormat):
			log.Error().Err(err).Msg("Seed decryption key or format is not usable")
			return nil, err
		case errors.Is(err, keystore.ErrAuthentication):
			log.Error().Str("path", path).Msg("Seed authentication failed: wrong decryption key or tampered file")
		case errors.Is(err, keystore.ErrMalformed):
			log.Error().Str("path", path).Msg("Seed file is not a valid encrypted blob")
		default:
			log.Error().Str("path", path).Msg("Seed decryption failed")
		}
		return nil, errors.WithStack(ErrDecryptionFailed)
	}
	defer zero(plaintext)

	root, words, err := rootFromMnemonic(plaintext, v.passphrase)
	if err != nil {
		log.Error().Int("words", words).Msg("Decrypted seed is not a valid BIP39 mnemonic")
		return nil, err
	}

	log.Info().Int("words", words).Msg("Master key loaded from encrypted seed")

	return root, nil
}

// rootFromMnemonic validates the mnemonic held in plaintext and derives the root
// key. It returns the word count for logging.
func rootFromMnemonic(plaintext []byte, passphrase string) (*RootKey, int, error) {
	words := strings.Fields(string(plaintext))
	if !slices.Contains(ValidWordCounts, len(words)) {
		return nil, len(words), errors.Wrapf(ErrInvalidMnemonic, "expected 12/15/18/21/24 words, got %d", len(words))
	}

	seed, err := bip39.NewSeedWithErrorChecking(strings.Join(words, " "), passphrase)
	if err != nil {
		// the bip39 error may quote a word, keep it out of the message
		return nil, len(words), errors.Wrap(ErrInvalidMnemonic, "checksum or wordlist validation failed")
	}
	defer zero(seed)

	root, err := newRootKey(seed)
	if err != nil {
		return nil, len(words), err
	}

	return root, len(words), nil
}

// RootFromMnemonic derives a root key directly from a mnemonic held by the
// caller, for offline tooling that never touches an encrypted file.
func RootFromMnemonic(mnemonic []byte, passphrase string) (*RootKey, error) {
	root, _, err := rootFromMnemonic(mnemonic, passphrase)

	return root, err
}

// ValidateMnemonic reports whether mnemonic is a valid BIP39 phrase of an accepted
// length.
func ValidateMnemonic(mnemonic string) error {
	words := strings.Fields(mnemonic)
	if !slices.Contains(ValidWordCounts, len(words)) {
		return errors.Wrapf(ErrInvalidMnemonic, "expected 12/15/18/21/24 words, got %d", len(words))
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return errors.Wrap(ErrInvalidMnemonic, "checksum or wordlist validation failed")
	}

	return nil
}

// GenerateMnemonic creates a new BIP39 mnemonic with the given entropy size
// (128 bits for 12 words up to 256 bits for 24 words).
func GenerateMnemonic(entropyBits int) (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	defer zero(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}
