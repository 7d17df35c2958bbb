package keystore

import (
	"errors"
	"fmt"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
)

// Format identifies the on-disk encoding of an encrypted seed.
type Format string

const (
	// FormatAuto detects the format from the blob: JSON objects are keystore
	// files, everything else is treated as a Fernet token.
	FormatAuto Format = ""
	// FormatFernet is a Fernet token (AES-128-CBC + HMAC-SHA256) keyed with a
	// base64url encoded 32 byte key.
	FormatFernet Format = "fernet"
	// FormatKeystore is the keystore v3 style JSON document (scrypt + AES-128-CTR + MAC)
	// keyed with a passphrase.
	FormatKeystore Format = "keystore"
)

var (
	// ErrAuthentication is returned when the authentication tag does not verify.
	// Wrong keys and tampered ciphertexts are deliberately not told apart.
	ErrAuthentication = errors.New("authenticated decryption failed")

	// ErrMalformed is returned when the blob cannot be parsed as the expected format.
	ErrMalformed = errors.New("malformed encrypted seed")

	// ErrInvalidKey is returned when the key material cannot be used with the format.
	ErrInvalidKey = fmt.Errorf("%w: invalid seed encryption key", chain.ErrConfiguration)

	// ErrUnknownFormat is returned for format names other than fernet and keystore.
	ErrUnknownFormat = fmt.Errorf("%w: unknown seed format", chain.ErrUnsupportedConfiguration)
)

// Service encrypts and decrypts seed blobs.
type Service interface {
	// Encrypt seals plaintext with key using format (FormatAuto selects Fernet).
	Encrypt(plaintext []byte, key string, format Format) ([]byte, error)

	// Decrypt opens blob with key. FormatAuto detects the format from the blob.
	// The caller owns the returned slice and should zero it after use.
	Decrypt(blob []byte, key string, format Format) ([]byte, error)

	// GenerateFernetKey returns a fresh base64url encoded Fernet key.
	GenerateFernetKey() (string, error)
}

// KeystoreJSON is the keystore v3 style document holding an encrypted mnemonic.
//
//nolint:revive // KeystoreJSON is the conventional name for this document
type KeystoreJSON struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines scrypt KDF parameters
type ScryptParams struct {
	DKLen int // Derived key length (32 bytes)
	N     int // CPU/memory cost parameter (262144)
	R     int // Block size parameter (8)
	P     int // Parallelization parameter (1)
}

// DefaultScryptParams returns the scrypt parameters used for new keystore files
func DefaultScryptParams() ScryptParams {
	const (
		scryptDKLen = 32     // Derived key length (32 bytes)
		scryptN     = 262144 // CPU/memory cost parameter (2^18)
		scryptR     = 8      // Block size parameter
		scryptP     = 1      // Parallelization parameter
	)

	return ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}
