package wallet

import (
	"context"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/shopspring/decimal"
)

type service struct {
	providers *provider.Registry
}

// NewService creates a Service routing calls to providers.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(providers *provider.Registry) Service {
	return &service{providers: providers}
}

func (s *service) NewAddress(ctx context.Context, currency chain.Currency) (*address.Derived, error) {
	p, err := s.providers.Get(currency)
	if err != nil {
		return nil, err
	}

	derived, err := p.DeriveAddress(ctx)
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("currency", currency.String()).Msg("Failed to derive address")
		return nil, err
	}

	util.LogFromContext(ctx).Info().
		Str("currency", currency.String()).
		Uint32("index", derived.Index).
		Str("address", derived.Address).
		Msg("Generated address")

	return derived, nil
}

func (s *service) AddressAt(ctx context.Context, currency chain.Currency, index uint32) (*address.Derived, error) {
	p, err := s.providers.Get(currency)
	if err != nil {
		return nil, err
	}

	return p.DeriveAt(ctx, index)
}

func (s *service) GetBalance(ctx context.Context, currency chain.Currency, addr string) (decimal.Decimal, error) {
	p, err := s.providers.Get(currency)
	if err != nil {
		return decimal.Zero, err
	}

	return p.Balance(ctx, addr)
}

func (s *service) GetIncomingOutputs(ctx context.Context, currency chain.Currency, addr string) ([]chain.Output, error) {
	p, err := s.providers.Get(currency)
	if err != nil {
		return nil, err
	}

	return p.IncomingOutputs(ctx, addr)
}

func (s *service) GetAddrByTx(ctx context.Context, currency chain.Currency, txid string) ([]chain.Output, error) {
	p, err := s.providers.Get(currency)
	if err != nil {
		return nil, err
	}

	outs, err := p.TransactionOutputs(ctx, txid)
	if err != nil {
		return nil, err
	}

	util.LogFromContext(ctx).Debug().
		Str("currency", currency.String()).
		Str("txid", txid).
		Int("outputs", len(outs)).
		Msg("Transaction decoded")

	return outs, nil
}

func (s *service) GetBlockHeight(ctx context.Context, currency chain.Currency) (int64, error) {
	p, err := s.providers.Get(currency)
	if err != nil {
		return 0, err
	}

	return p.BlockHeight(ctx)
}

func (s *service) Currencies() []chain.Currency {
	return s.providers.Currencies()
}

func (s *service) Statuses() []provider.Status {
	return s.providers.Statuses()
}
