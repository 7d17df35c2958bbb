package seed

import (
	"context"
	"fmt"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
)

// ValidWordCounts are the BIP39 mnemonic lengths accepted by the vault.
var ValidWordCounts = []int{12, 15, 18, 21, 24}

var (
	// ErrSeedNotFound is returned when no file exists at the configured seed path.
	ErrSeedNotFound = fmt.Errorf("%w: encrypted seed not found", chain.ErrConfiguration)

	// ErrSeedUnreadable is returned for I/O failures other than a missing file.
	ErrSeedUnreadable = fmt.Errorf("%w: encrypted seed unreadable", chain.ErrConfiguration)

	// ErrMissingKey is returned when no decryption key was configured.
	ErrMissingKey = fmt.Errorf("%w: seed decryption key not configured", chain.ErrConfiguration)

	// ErrDecryptionFailed is returned for any failure to open the encrypted seed.
	// Wrong keys, tampered files and unparsable blobs all map to it.
	ErrDecryptionFailed = fmt.Errorf("%w: seed decryption failed", chain.ErrSeed)

	// ErrInvalidMnemonic is returned when the decrypted text is not a valid BIP39
	// mnemonic (word count, wordlist or checksum).
	ErrInvalidMnemonic = fmt.Errorf("%w: invalid mnemonic", chain.ErrSeed)

	// ErrWiped is returned by a root key after Wipe.
	ErrWiped = fmt.Errorf("%w: root key wiped", chain.ErrSeed)
)

// Vault opens encrypted seed files.
type Vault interface {
	// Load reads the encrypted seed at path, decrypts it with key, validates the
	// mnemonic and derives the root key. The mnemonic never leaves Load.
	Load(ctx context.Context, path string, key string) (*RootKey, error)
}

// Manager owns the process-wide root key. The seed is loaded on first use;
// failed loads are not cached so a later call retries.
type Manager interface {
	// Root returns the root key, loading it if needed.
	Root(ctx context.Context) (*RootKey, error)

	// IsInitialized reports whether the root key has been loaded.
	IsInitialized() bool

	// Clear wipes the root key from memory. Later Root calls fail.
	Clear()
}
