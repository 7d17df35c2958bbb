package provider

import (
	"context"
	"time"

	"github.com/chapool/go-hdpay/internal/metrics"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/chapool/go-hdpay/internal/wallet/nodewallet"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/shopspring/decimal"
)

// State of a provider. A provider starts Uninitialized and becomes Ready after
// its first successful initialization; it never goes back.
type State int32

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}

	return "uninitialized"
}

// AddressSource selects how receiving addresses are produced.
type AddressSource string

const (
	// AddressSourceHDWallet derives addresses from the encrypted seed.
	AddressSourceHDWallet AddressSource = "hdwallet"
	// AddressSourceNode asks the currency's node wallet for new addresses.
	AddressSourceNode AddressSource = "node"
)

// Source names used in logs, errors and metrics.
const (
	SourceChainData = "chaindata"
	SourceNode      = "node"
)

// Provider is the per-currency capability used by the payment layer.
type Provider interface {
	Currency() chain.Currency
	State() State

	// DeriveAddress hands out a fresh receiving address, never one handed out
	// before by this process.
	DeriveAddress(ctx context.Context) (*address.Derived, error)

	// DeriveAt recomputes the address at index without allocating it. Only
	// available for the hdwallet address source.
	DeriveAt(ctx context.Context, index uint32) (*address.Derived, error)

	// CurrentIndex is the index the next DeriveAddress call will use.
	CurrentIndex() uint32

	// Balance is the unspent amount held by address. A failed read is an error,
	// never zero.
	Balance(ctx context.Context, address string) (decimal.Decimal, error)

	IncomingOutputs(ctx context.Context, address string) ([]chain.Output, error)
	TransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error)
	BlockHeight(ctx context.Context) (int64, error)

	Status() Status
	Close()
}

// Source is a read path for chain data. Providers try their sources in order.
type Source interface {
	Name() string
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	IncomingOutputs(ctx context.Context, address string) ([]chain.Output, error)
	TransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error)
	BlockHeight(ctx context.Context) (int64, error)
}

// Status is a snapshot for operators.
type Status struct {
	Currency      chain.Currency `json:"currency"`
	Network       chain.Network  `json:"network"`
	State         string         `json:"state"`
	AddressSource AddressSource  `json:"addressSource"`
	NextIndex     uint32         `json:"nextIndex"`
	Sources       []string       `json:"sources"`
}

// BreakerSettings tune the circuit breaker in front of the chain-data source.
type BreakerSettings struct {
	// MinRequests is the number of requests in the current window before the
	// breaker may open.
	MinRequests uint32
	// FailureRatio of transport and protocol failures that opens the breaker.
	FailureRatio float64
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings match the tdex style 10 requests / 60% failure cap.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:  10,
		FailureRatio: 0.6,
		OpenTimeout:  30 * time.Second,
	}
}

// Config describes one currency provider.
type Config struct {
	Currency      chain.Currency
	Network       chain.Network
	AddressSource AddressSource

	// PreferChainData makes the hosted chain-data endpoint the primary read
	// source and the node wallet the fallback. Reads only, derivation is
	// unaffected.
	PreferChainData bool

	// ChainData and Node are optional; a nil or URL-less config leaves the
	// source out.
	ChainData *chainrpc.Config
	Node      *nodewallet.Config

	Breaker BreakerSettings
}

// Deps are the process-wide collaborators shared by all providers.
type Deps struct {
	Registry  *chain.Registry
	Seeds     seed.Manager
	Allocator *address.Allocator
	Engine    address.Engine
	Metrics   *metrics.Service

	// ChainDataClient and NodeClient replace the clients built from Config.
	ChainDataClient chainrpc.Client
	NodeClient      nodewallet.Client
}
