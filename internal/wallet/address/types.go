package address

import (
	"fmt"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
)

// HardenedOffset is added to a path segment marked hardened.
const HardenedOffset uint32 = 0x80000000

// ErrInvalidPath is returned for derivation paths that cannot be parsed or
// indices that do not fit the non-hardened range.
var ErrInvalidPath = fmt.Errorf("%w: invalid derivation path", chain.ErrUnsupportedConfiguration)

// Derived is an address handed out for receiving a payment. Path is empty for
// addresses issued by a node wallet.
type Derived struct {
	Currency chain.Currency `json:"currency"`
	Network  chain.Network  `json:"network"`
	Index    uint32         `json:"index"`
	Path     string         `json:"path,omitempty"`
	Address  string         `json:"address"`
}

// Engine derives receiving addresses from the root key.
type Engine interface {
	// Derive returns the address at index below the currency's base path on
	// network. It is a pure function of its arguments and the seed behind root.
	Derive(root *seed.RootKey, currency chain.Currency, network chain.Network, index uint32) (*Derived, error)

	// Path returns the full derivation path for index without deriving.
	Path(currency chain.Currency, network chain.Network, index uint32) (string, error)
}
