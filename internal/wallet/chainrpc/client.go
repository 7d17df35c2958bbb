package chainrpc

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/ethereum/go-ethereum/rpc"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"
)

type client struct {
	name     string
	endpoint string
	timeout  time.Duration
	maxConf  int64
	net      *chaincfg.Params

	rpc      *rpc.Client
	limiter  ratelimit.Limiter
	observer Observer
}

// NewClient validates cfg and creates a client. No request is sent.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.URL == "" {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "chain-data endpoint for %s not configured", cfg.Name)
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "chain-data endpoint for %s is not a valid URL", cfg.Name)
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "chain-data endpoint for %s must be an https URL", cfg.Name)
	}

	opts := []rpc.ClientOption{}
	if cfg.HTTPClient != nil {
		opts = append(opts, rpc.WithHTTPClient(cfg.HTTPClient))
	}

	rc, err := rpc.DialOptions(ctx, cfg.URL, opts...)
	if err != nil {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "failed to create chain-data client for %s", cfg.Name)
	}

	c := &client{
		name:     cfg.Name,
		endpoint: Redact(cfg.URL),
		timeout:  cfg.Timeout,
		maxConf:  cfg.MaxConfirmations,
		net:      cfg.Net,
		rpc:      rc,
		observer: cfg.Observer,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.maxConf <= 0 {
		c.maxConf = chain.DefaultMaxConfirmations
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	return c, nil
}

// Redact strips the path, query and user info from raw, leaving scheme and host.
// Hosted node providers put the access token in the path.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<invalid endpoint>"
	}

	return u.Scheme + "://" + u.Host + "/"
}

func (c *client) Endpoint() string {
	return c.endpoint
}

func (c *client) Close() {
	c.rpc.Close()
}

func (c *client) Call(ctx context.Context, result any, method string, params ...any) error {
	log := util.LogFromContext(ctx).With().
		Str("component", "chainrpc").
		Str("source", c.name).
		Str("method", method).
		Logger()

	if c.limiter != nil {
		c.limiter.Take()
		if err := ctx.Err(); err != nil {
			return &Error{Kind: ErrTransport, Method: method, Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.rpc.CallContext(ctx, result, method, params...)
	elapsed := time.Since(start)

	if err != nil {
		rerr := Classify(method, c.endpoint, err)
		c.observe(method, outcome(rerr.Kind), elapsed)
		log.Debug().Err(rerr).Str("endpoint", c.endpoint).Dur("elapsed", elapsed).Msg("Chain-data request failed")

		return rerr
	}

	c.observe(method, "ok", elapsed)
	log.Debug().Dur("elapsed", elapsed).Msg("Chain-data request completed")

	return nil
}

func (c *client) observe(method, result string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(c.name, method, result, elapsed)
	}
}

func outcome(kind error) string {
	switch kind {
	case ErrTransport:
		return "transport"
	case ErrProtocol:
		return "protocol"
	case ErrNotFound:
		return "not_found"
	default:
		return "rpc"
	}
}

func (c *client) GetUTXOSet(ctx context.Context, address string) ([]chain.Output, error) {
	if c.net != nil {
		if _, err := chain.DecodeAddress(address, c.net); err != nil {
			return nil, err
		}
	}

	var unspent []Unspent
	if err := c.Call(ctx, &unspent, "listunspent", 0, c.maxConf, []string{address}); err != nil {
		return nil, err
	}

	outs := make([]chain.Output, 0, len(unspent))
	for _, u := range unspent {
		addr := u.Address
		if addr == "" {
			addr = address
		}
		outs = append(outs, chain.Output{
			TxID:          u.TxID,
			Vout:          u.Vout,
			Address:       addr,
			Amount:        u.Amount,
			Confirmations: u.Confirmations,
		})
	}

	return outs, nil
}

func (c *client) GetUTXOBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	outs, err := c.GetUTXOSet(ctx, address)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return chain.SumOutputs(outs), nil
}

func (c *client) GetTransaction(ctx context.Context, txid string) (*WalletTransaction, error) {
	var tx *WalletTransaction
	if err := c.Call(ctx, &tx, "gettransaction", txid); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return tx, nil
}

func (c *client) GetRawTransactionHex(ctx context.Context, txid string) (string, error) {
	var hex string
	if err := c.Call(ctx, &hex, "getrawtransaction", txid, 0); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	return hex, nil
}

func (c *client) GetRawTransactionVerbose(ctx context.Context, txid string) (*RawTransaction, error) {
	var tx *RawTransaction
	if err := c.Call(ctx, &tx, "getrawtransaction", txid, 1); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return tx, nil
}

func (c *client) GetBlockHeight(ctx context.Context) (int64, error) {
	var height int64
	if err := c.Call(ctx, &height, "getblockcount"); err != nil {
		return 0, err
	}

	return height, nil
}
