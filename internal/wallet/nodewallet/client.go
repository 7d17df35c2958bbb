package nodewallet

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/ethereum/go-ethereum/rpc"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type client struct {
	name     string
	endpoint string
	timeout  time.Duration
	maxConf  int64
	net      *chaincfg.Params

	rpc      *rpc.Client
	observer chainrpc.Observer
}

// NewClient creates a node wallet client. Every call is a single HTTP POST
// bound to its context; nothing is retried or queued. No request is sent here.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.URL == "" {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "node RPC endpoint for %s not configured", cfg.Name)
	}
	if cfg.Net == nil {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "network params for %s node wallet missing", cfg.Name)
	}
	if cfg.User == "" || cfg.Password == "" {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "node RPC credentials for %s not configured", cfg.Name)
	}

	endpoint, err := normalizeEndpoint(cfg.URL, cfg.DisableTLS)
	if err != nil {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "node RPC endpoint for %s: %v", cfg.Name, err)
	}

	auth := "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.User+":"+cfg.Password))
	opts := []rpc.ClientOption{
		rpc.WithHTTPAuth(func(h http.Header) error {
			h.Set("Authorization", auth)
			return nil
		}),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, rpc.WithHTTPClient(cfg.HTTPClient))
	}

	rc, err := rpc.DialOptions(ctx, endpoint, opts...)
	if err != nil {
		return nil, pkgerrors.Wrapf(chain.ErrConfiguration, "failed to create node RPC client for %s", cfg.Name)
	}

	c := &client{
		name:     cfg.Name,
		endpoint: chainrpc.Redact(endpoint),
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

	return c, nil
}

// normalizeEndpoint turns raw into a full http(s) URL. A URL without scheme
// uses TLS unless disableTLS is set.
func normalizeEndpoint(raw string, disableTLS bool) (string, error) {
	if !strings.Contains(raw, "://") {
		scheme := "https://"
		if disableTLS {
			scheme = "http://"
		}
		raw = scheme + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.New("not a valid URL")
	}
	if u.Host == "" {
		return "", errors.New("host missing")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("scheme must be http or https")
	}
	if u.User != nil {
		return "", errors.New("credentials belong in the user and password settings")
	}

	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String(), nil
}

func (c *client) Close() {
	c.rpc.Close()
}

// call performs one request under ctx and the per-call timeout.
func (c *client) call(ctx context.Context, result any, method string, params ...any) error {
	log := util.LogFromContext(ctx).With().
		Str("component", "nodewallet").
		Str("source", c.name).
		Str("method", method).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.rpc.CallContext(ctx, result, method, params...)
	elapsed := time.Since(start)

	if err != nil {
		rerr := chainrpc.Classify(method, c.endpoint, err)
		c.observe(method, rerr.Kind, elapsed)
		log.Debug().Err(rerr).Str("endpoint", c.endpoint).Dur("elapsed", elapsed).Msg("Node wallet request failed")

		return rerr
	}

	c.observe(method, nil, elapsed)

	return nil
}

func (c *client) observe(method string, kind error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}

	outcome := "ok"
	switch {
	case kind == nil:
	case errors.Is(kind, chainrpc.ErrNotFound):
		outcome = "not_found"
	case errors.Is(kind, chainrpc.ErrRPC):
		outcome = "rpc"
	case errors.Is(kind, chainrpc.ErrProtocol):
		outcome = "protocol"
	default:
		outcome = "transport"
	}
	c.observer.ObserveRequest(c.name+"-node", method, outcome, elapsed)
}

func (c *client) NewAddress(ctx context.Context) (string, error) {
	var addr string
	if err := c.call(ctx, &addr, "getnewaddress"); err != nil {
		return "", err
	}
	if addr == "" {
		return "", &chainrpc.Error{Kind: chainrpc.ErrProtocol, Method: "getnewaddress", Message: "node returned no address"}
	}

	return addr, nil
}

func (c *client) GetUTXOSet(ctx context.Context, address string) ([]chain.Output, error) {
	if _, err := chain.DecodeAddress(address, c.net); err != nil {
		return nil, err
	}

	var unspent []chainrpc.Unspent
	if err := c.call(ctx, &unspent, "listunspent", 0, c.maxConf, []string{address}); err != nil {
		return nil, err
	}

	outs := make([]chain.Output, 0, len(unspent))
	for _, u := range unspent {
		outs = append(outs, chain.Output{
			TxID:          u.TxID,
			Vout:          u.Vout,
			Address:       address,
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

func (c *client) GetTransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error) {
	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return nil, &chainrpc.Error{Kind: chainrpc.ErrRPC, Method: "getrawtransaction", Message: "malformed transaction id"}
	}

	var tx *chainrpc.RawTransaction
	if err := c.call(ctx, &tx, "getrawtransaction", txid, 1); err != nil {
		if errors.Is(err, chainrpc.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return chainrpc.DecodeOutputs(tx), nil
}

func (c *client) GetBlockHeight(ctx context.Context) (int64, error) {
	var height int64
	if err := c.call(ctx, &height, "getblockcount"); err != nil {
		return 0, err
	}

	return height, nil
}
