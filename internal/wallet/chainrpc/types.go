package chainrpc

import (
	"context"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single request when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Observer receives one event per completed request. outcome is "ok" or the
// failure kind.
type Observer interface {
	ObserveRequest(source string, method string, outcome string, elapsed time.Duration)
}

// Config configures a chain-data client.
type Config struct {
	// Name labels logs and metrics, usually the currency ticker.
	Name string

	// URL is the full https endpoint, access token included. It is never logged.
	URL string `json:"-"`

	Timeout           time.Duration
	RequestsPerSecond int

	// MaxConfirmations is the listunspent upper bound.
	MaxConfirmations int64

	// Net decodes addresses before listunspent. Without it the node judges them.
	Net *chaincfg.Params `json:"-"`

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client `json:"-"`
	Observer   Observer     `json:"-"`
}

// Client is a read-only JSON-RPC client for a hosted blockchain node.
type Client interface {
	// Call performs a single request and decodes the result member into result.
	Call(ctx context.Context, result any, method string, params ...any) error

	// GetUTXOSet lists unspent outputs paying to address. An address that does
	// not decode for the network fails with chain.ErrInvalidAddress.
	GetUTXOSet(ctx context.Context, address string) ([]chain.Output, error)

	// GetUTXOBalance sums GetUTXOSet. No outputs yields exactly zero.
	GetUTXOBalance(ctx context.Context, address string) (decimal.Decimal, error)

	// GetTransaction returns nil without error for unknown transactions.
	GetTransaction(ctx context.Context, txid string) (*WalletTransaction, error)

	// GetRawTransactionHex returns "" without error for unknown transactions.
	GetRawTransactionHex(ctx context.Context, txid string) (string, error)

	// GetRawTransactionVerbose returns nil without error for unknown transactions.
	GetRawTransactionVerbose(ctx context.Context, txid string) (*RawTransaction, error)

	GetBlockHeight(ctx context.Context) (int64, error)

	// Endpoint returns the endpoint with credentials stripped, safe to log.
	Endpoint() string

	Close()
}

// Unspent is a listunspent entry.
type Unspent struct {
	TxID          string          `json:"txid"`
	Vout          uint32          `json:"vout"`
	Address       string          `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	Confirmations int64           `json:"confirmations"`
	ScriptPubKey  string          `json:"scriptPubKey,omitempty"`
}

// WalletTransaction is the gettransaction result.
type WalletTransaction struct {
	TxID          string              `json:"txid"`
	Amount        decimal.Decimal     `json:"amount"`
	Confirmations int64               `json:"confirmations"`
	BlockHash     string              `json:"blockhash,omitempty"`
	BlockHeight   int64               `json:"blockheight,omitempty"`
	Time          int64               `json:"time"`
	Details       []TransactionDetail `json:"details"`
	Hex           string              `json:"hex,omitempty"`
}

// TransactionDetail is one entry of WalletTransaction.Details.
type TransactionDetail struct {
	Address  string          `json:"address"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Vout     uint32          `json:"vout"`
}

// RawTransaction is the verbose getrawtransaction result, reduced to the fields
// used for payment detection.
type RawTransaction struct {
	TxID          string `json:"txid"`
	Hash          string `json:"hash"`
	Confirmations int64  `json:"confirmations"`
	BlockHash     string `json:"blockhash,omitempty"`
	Vout          []Vout `json:"vout"`
}

// Vout is a transaction output of a RawTransaction.
type Vout struct {
	Value        decimal.Decimal `json:"value"`
	N            uint32          `json:"n"`
	ScriptPubKey ScriptPubKey    `json:"scriptPubKey"`
}

// ScriptPubKey carries the decoded destination. Older nodes fill Addresses,
// newer ones Address.
type ScriptPubKey struct {
	Type      string   `json:"type"`
	Hex       string   `json:"hex"`
	Address   string   `json:"address,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
}

// DecodeOutputs lists the outputs of tx per paid address, tagged with the
// transaction's confirmations. Outputs without a decodable address are skipped.
func DecodeOutputs(tx *RawTransaction) []chain.Output {
	if tx == nil {
		return nil
	}

	outs := make([]chain.Output, 0, len(tx.Vout))
	for _, vout := range tx.Vout {
		addresses := vout.ScriptPubKey.Addresses
		if len(addresses) == 0 && vout.ScriptPubKey.Address != "" {
			addresses = []string{vout.ScriptPubKey.Address}
		}

		for _, addr := range addresses {
			outs = append(outs, chain.Output{
				TxID:          tx.TxID,
				Vout:          vout.N,
				Address:       addr,
				Amount:        vout.Value,
				Confirmations: tx.Confirmations,
			})
		}
	}

	return outs
}
