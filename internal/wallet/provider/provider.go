package provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/chapool/go-hdpay/internal/wallet/nodewallet"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrDeriveAtUnsupported is returned by DeriveAt for node issued addresses.
var ErrDeriveAtUnsupported = fmt.Errorf("%w: node wallet addresses cannot be recomputed by index", chain.ErrUnsupportedConfiguration)

// ready holds everything built by a successful initialization. It is
// immutable once published.
type ready struct {
	params    *chain.Params
	root      *seed.RootKey
	chainData chainrpc.Client
	node      nodewallet.Client
	sources   []Source
}

type provider struct {
	cfg  Config
	deps Deps

	mu    sync.Mutex
	state atomic.Pointer[ready]
}

// New creates an uninitialized provider. Nothing is loaded or dialed until the
// first call that needs it.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func New(cfg Config, deps Deps) Provider {
	if cfg.AddressSource == "" {
		cfg.AddressSource = AddressSourceHDWallet
	}
	if cfg.Network == "" {
		cfg.Network = chain.Mainnet
	}

	return &provider{cfg: cfg, deps: deps}
}

func (p *provider) Currency() chain.Currency {
	return p.cfg.Currency
}

func (p *provider) State() State {
	if p.state.Load() != nil {
		return Ready
	}

	return Uninitialized
}

func (p *provider) CurrentIndex() uint32 {
	return p.deps.Allocator.CurrentIndex(p.cfg.Currency)
}

func (p *provider) Status() Status {
	return Status{
		Currency:      p.cfg.Currency,
		Network:       p.cfg.Network,
		State:         p.State().String(),
		AddressSource: p.cfg.AddressSource,
		NextIndex:     p.CurrentIndex(),
		Sources:       p.sourceOrder(),
	}
}

func (p *provider) Close() {
	r := p.state.Load()
	if r == nil {
		return
	}
	if r.chainData != nil {
		r.chainData.Close()
	}
	if r.node != nil {
		r.node.Close()
	}
}

func (p *provider) chainDataConfigured() bool {
	return p.deps.ChainDataClient != nil || (p.cfg.ChainData != nil && p.cfg.ChainData.URL != "")
}

func (p *provider) nodeConfigured() bool {
	return p.deps.NodeClient != nil || (p.cfg.Node != nil && p.cfg.Node.URL != "")
}

// sourceOrder lists the configured read sources, preferred first.
func (p *provider) sourceOrder() []string {
	order := []string{SourceNode, SourceChainData}
	if p.cfg.PreferChainData {
		order = []string{SourceChainData, SourceNode}
	}

	out := make([]string, 0, len(order))
	for _, name := range order {
		if (name == SourceNode && p.nodeConfigured()) || (name == SourceChainData && p.chainDataConfigured()) {
			out = append(out, name)
		}
	}

	return out
}

// ensureReady initializes the provider once. Failures are not cached; the
// next call tries again.
func (p *provider) ensureReady(ctx context.Context) (*ready, error) {
	if r := p.state.Load(); r != nil {
		return r, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if r := p.state.Load(); r != nil {
		return r, nil
	}

	log := util.LogFromContext(ctx).With().
		Str("component", "provider").
		Str("currency", p.cfg.Currency.String()).
		Logger()

	r, err := p.initialize(ctx)
	if err != nil {
		log.Error().Err(err).Str("network", p.cfg.Network.String()).Msg("Provider initialization failed")
		p.deps.Metrics.SetProviderReady(p.cfg.Currency.String(), false)

		return nil, fmt.Errorf("%w: %s provider not initialized: %w", chain.ErrConfiguration, p.cfg.Currency, err)
	}

	p.state.Store(r)
	p.deps.Metrics.SetProviderReady(p.cfg.Currency.String(), true)
	log.Info().
		Str("network", p.cfg.Network.String()).
		Str("address_source", string(p.cfg.AddressSource)).
		Strs("sources", p.sourceOrder()).
		Msg("Provider ready")

	return r, nil
}

func (p *provider) initialize(ctx context.Context) (*ready, error) {
	params, err := p.deps.Registry.Lookup(p.cfg.Currency, p.cfg.Network)
	if err != nil {
		return nil, err
	}

	r := &ready{params: params}

	if p.deps.NodeClient != nil {
		r.node = p.deps.NodeClient
	} else if p.cfg.Node != nil && p.cfg.Node.URL != "" {
		nodeCfg := *p.cfg.Node
		if nodeCfg.Net == nil {
			nodeCfg.Net = params.Net
		}
		if nodeCfg.MaxConfirmations == 0 {
			nodeCfg.MaxConfirmations = params.MaxConfirmations
		}
		if nodeCfg.Observer == nil && p.deps.Metrics != nil {
			nodeCfg.Observer = p.deps.Metrics
		}
		if r.node, err = nodewallet.NewClient(ctx, nodeCfg); err != nil {
			return nil, err
		}
	}

	if p.deps.ChainDataClient != nil {
		r.chainData = p.deps.ChainDataClient
	} else if p.cfg.ChainData != nil && p.cfg.ChainData.URL != "" {
		cdCfg := *p.cfg.ChainData
		if cdCfg.Net == nil {
			cdCfg.Net = params.Net
		}
		if cdCfg.MaxConfirmations == 0 {
			cdCfg.MaxConfirmations = params.MaxConfirmations
		}
		if cdCfg.Observer == nil && p.deps.Metrics != nil {
			cdCfg.Observer = p.deps.Metrics
		}
		if r.chainData, err = chainrpc.NewClient(ctx, cdCfg); err != nil {
			r.close()
			return nil, err
		}
	}

	switch p.cfg.AddressSource {
	case AddressSourceHDWallet:
		if p.deps.Seeds == nil {
			r.close()
			return nil, errors.Wrap(chain.ErrConfiguration, "seed manager missing")
		}
		if r.root, err = p.deps.Seeds.Root(ctx); err != nil {
			r.close()
			return nil, err
		}
	case AddressSourceNode:
		if r.node == nil {
			r.close()
			return nil, errors.Wrap(chain.ErrConfiguration, "node address source requires a node RPC endpoint")
		}
	default:
		r.close()
		return nil, errors.Wrapf(chain.ErrUnsupportedConfiguration, "address source %q", p.cfg.AddressSource)
	}

	for _, name := range p.sourceOrder() {
		switch name {
		case SourceChainData:
			r.sources = append(r.sources, newChainDataSource(p.cfg.Currency, r.chainData, p.cfg.Breaker))
		case SourceNode:
			r.sources = append(r.sources, &nodeSource{client: r.node})
		}
	}

	return r, nil
}

func (r *ready) close() {
	if r.chainData != nil {
		r.chainData.Close()
	}
	if r.node != nil {
		r.node.Close()
	}
}

func (p *provider) DeriveAddress(ctx context.Context) (*address.Derived, error) {
	r, err := p.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	log := util.LogFromContext(ctx).With().
		Str("component", "provider").
		Str("currency", p.cfg.Currency.String()).
		Logger()

	if p.cfg.AddressSource == AddressSourceNode {
		addr, err := r.node.NewAddress(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get new %s address from node", p.cfg.Currency)
		}

		p.deps.Metrics.IncAddressIssued(p.cfg.Currency.String(), string(AddressSourceNode))
		log.Info().Str("address", addr).Msg("Issued node wallet address")

		return &address.Derived{Currency: p.cfg.Currency, Network: p.cfg.Network, Address: addr}, nil
	}

	index := p.deps.Allocator.NextIndex(p.cfg.Currency)
	p.deps.Metrics.SetNextIndex(p.cfg.Currency.String(), index+1)

	d, err := p.deps.Engine.Derive(r.root, p.cfg.Currency, p.cfg.Network, index)
	if err != nil {
		log.Error().Err(err).Uint32("index", index).Msg("Address derivation failed, index skipped")
		return nil, err
	}

	p.deps.Metrics.IncAddressIssued(p.cfg.Currency.String(), string(AddressSourceHDWallet))
	log.Info().Uint32("index", index).Str("address", d.Address).Msg("Derived receiving address")

	return d, nil
}

func (p *provider) DeriveAt(ctx context.Context, index uint32) (*address.Derived, error) {
	if p.cfg.AddressSource == AddressSourceNode {
		return nil, errors.WithStack(ErrDeriveAtUnsupported)
	}

	r, err := p.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	return p.deps.Engine.Derive(r.root, p.cfg.Currency, p.cfg.Network, index)
}

func (p *provider) Balance(ctx context.Context, addr string) (decimal.Decimal, error) {
	r, err := p.ensureReady(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return read(ctx, p, r.sources, "balance", func(s Source) (decimal.Decimal, error) {
		return s.Balance(ctx, addr)
	})
}

func (p *provider) IncomingOutputs(ctx context.Context, addr string) ([]chain.Output, error) {
	r, err := p.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	return read(ctx, p, r.sources, "incoming_outputs", func(s Source) ([]chain.Output, error) {
		return s.IncomingOutputs(ctx, addr)
	})
}

func (p *provider) TransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error) {
	r, err := p.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	return read(ctx, p, r.sources, "transaction_outputs", func(s Source) ([]chain.Output, error) {
		return s.TransactionOutputs(ctx, txid)
	})
}

func (p *provider) BlockHeight(ctx context.Context) (int64, error) {
	r, err := p.ensureReady(ctx)
	if err != nil {
		return 0, err
	}

	return read(ctx, p, r.sources, "block_height", func(s Source) (int64, error) {
		return s.BlockHeight(ctx)
	})
}
