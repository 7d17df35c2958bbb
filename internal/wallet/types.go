package wallet

import (
	"context"

	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/shopspring/decimal"
)

// Service is the entry point of the payment layer: one call per operation,
// routed to the provider of the requested currency.
type Service interface {
	// NewAddress hands out a fresh receiving address for currency.
	NewAddress(ctx context.Context, currency chain.Currency) (*address.Derived, error)

	// AddressAt recomputes the hdwallet address at index without allocating it.
	AddressAt(ctx context.Context, currency chain.Currency, index uint32) (*address.Derived, error)

	GetBalance(ctx context.Context, currency chain.Currency, addr string) (decimal.Decimal, error)
	GetIncomingOutputs(ctx context.Context, currency chain.Currency, addr string) ([]chain.Output, error)

	// GetAddrByTx decodes the outputs of txid, one entry per paid address.
	GetAddrByTx(ctx context.Context, currency chain.Currency, txid string) ([]chain.Output, error)

	GetBlockHeight(ctx context.Context, currency chain.Currency) (int64, error)

	Currencies() []chain.Currency
	Statuses() []provider.Status
}

// Components holds the process-wide wallet collaborators built by Initialize.
type Components struct {
	Chains    *chain.Registry
	Seeds     seed.Manager
	Allocator *address.Allocator
	Engine    address.Engine
	Providers *provider.Registry
	Service   Service
}

// Close releases provider clients and wipes the root key.
func (c *Components) Close() {
	if c == nil {
		return
	}
	if c.Providers != nil {
		c.Providers.Close()
	}
	if c.Seeds != nil {
		c.Seeds.Clear()
	}
}
