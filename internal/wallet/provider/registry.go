package provider

import (
	"sort"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/pkg/errors"
)

// Registry maps currencies to their provider. It is built once at startup and
// read-only afterwards.
type Registry struct {
	providers map[chain.Currency]Provider
}

// NewRegistry indexes providers by currency. A later provider for the same
// currency replaces an earlier one.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[chain.Currency]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Currency()] = p
	}

	return r
}

// Get returns the provider for currency or ErrUnsupportedConfiguration.
//
//nolint:ireturn // providers are only exposed through their interface
func (r *Registry) Get(currency chain.Currency) (Provider, error) {
	p, ok := r.providers[currency]
	if !ok {
		return nil, errors.Wrapf(chain.ErrUnsupportedConfiguration, "no provider for currency %s", currency)
	}

	return p, nil
}

// Currencies lists the enabled currencies in lexical order.
func (r *Registry) Currencies() []chain.Currency {
	out := make([]chain.Currency, 0, len(r.providers))
	for c := range r.providers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Statuses returns a status snapshot per provider, ordered by currency.
func (r *Registry) Statuses() []Status {
	out := make([]Status, 0, len(r.providers))
	for _, c := range r.Currencies() {
		out = append(out, r.providers[c].Status())
	}

	return out
}

// Close releases the RPC clients of every provider.
func (r *Registry) Close() {
	for _, p := range r.providers {
		p.Close()
	}
}
