package nodewallet

import (
	"context"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single node request when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Config configures the connection to a currency's own full node wallet.
type Config struct {
	Name string

	// URL is the node RPC endpoint, e.g. http://bitcoind:8332/wallet/shkeeper.
	// A URL without scheme uses TLS unless DisableTLS is set.
	URL string

	// User and Password are required; cookie authentication is not supported.
	User       string
	Password   string `json:"-"`
	DisableTLS bool

	Timeout          time.Duration
	MaxConfirmations int64

	// Net decodes addresses passed to listunspent.
	Net *chaincfg.Params

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client      `json:"-"`
	Observer   chainrpc.Observer `json:"-"`
}

// Client talks to a bitcoind style node wallet. Failures are reported with the
// chainrpc error kinds so callers treat both sources alike. Addresses that do
// not decode for Net fail with chain.ErrInvalidAddress before any request.
type Client interface {
	// NewAddress asks the node wallet for a fresh receiving address.
	NewAddress(ctx context.Context) (string, error)

	GetUTXOSet(ctx context.Context, address string) ([]chain.Output, error)
	GetUTXOBalance(ctx context.Context, address string) (decimal.Decimal, error)

	// GetTransactionOutputs decodes the outputs of txid. Unknown transactions
	// have no outputs.
	GetTransactionOutputs(ctx context.Context, txid string) ([]chain.Output, error)

	GetBlockHeight(ctx context.Context) (int64, error)

	Close()
}
