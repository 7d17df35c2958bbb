package chain

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type rowKey struct {
	currency Currency
	network  Network
}

// Registry is the (currency, network) → Params table. New currencies are added
// by registering a row; no new control flow is needed.
type Registry struct {
	mu   sync.RWMutex
	rows map[rowKey]*Params
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rows: make(map[rowKey]*Params)}
}

// DefaultRegistry returns a registry holding the built-in BTC and LTC rows.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range defaultRows() {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}

	return r
}

// Register validates and adds (or replaces) a row.
func (r *Registry) Register(p *Params) error {
	if p == nil {
		return errors.Wrap(ErrUnsupportedConfiguration, "nil currency params")
	}
	if p.Currency == "" {
		return errors.Wrap(ErrUnsupportedConfiguration, "currency symbol is required")
	}
	if p.Network != Mainnet && p.Network != Testnet {
		return errors.Wrapf(ErrUnsupportedConfiguration, "network %q for %s", p.Network, p.Currency)
	}
	if !strings.HasPrefix(p.BasePath, "m/") {
		return errors.Wrapf(ErrUnsupportedConfiguration, "base path %q for %s", p.BasePath, p.Currency)
	}
	switch p.Encoding {
	case EncodingP2PKH, EncodingP2WPKH:
	default:
		return errors.Wrapf(ErrUnsupportedConfiguration, "address encoding %q for %s", p.Encoding, p.Currency)
	}
	if p.Net == nil {
		return errors.Wrapf(ErrUnsupportedConfiguration, "network params missing for %s/%s", p.Currency, p.Network)
	}
	if p.Encoding == EncodingP2WPKH && p.Net.Bech32HRPSegwit == "" {
		return errors.Wrapf(ErrUnsupportedConfiguration, "bech32 prefix missing for %s/%s", p.Currency, p.Network)
	}

	row := *p
	if row.MaxConfirmations <= 0 {
		row.MaxConfirmations = DefaultMaxConfirmations
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rowKey{currency: row.Currency, network: row.Network}] = &row

	return nil
}

// Lookup returns the row for (currency, network) or ErrUnsupportedConfiguration.
func (r *Registry) Lookup(currency Currency, network Network) (*Params, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.rows[rowKey{currency: currency, network: network}]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedConfiguration, "no currency row for %s/%s", currency, network)
	}

	return p, nil
}

// Currencies lists the registered tickers in lexical order.
func (r *Registry) Currencies() []Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Currency]struct{}, len(r.rows))
	out := make([]Currency, 0, len(r.rows))
	for k := range r.rows {
		if _, ok := seen[k.currency]; ok {
			continue
		}
		seen[k.currency] = struct{}{}
		out = append(out, k.currency)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
