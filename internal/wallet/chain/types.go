package chain

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"
)

// Currency is an upper case ticker such as BTC or LTC.
type Currency string

// ParseCurrency normalizes a ticker read from configuration or a request.
func ParseCurrency(s string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

func (c Currency) String() string {
	return string(c)
}

// Network selects between the main and test networks of a currency.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// ParseNetwork normalizes a network name. Unknown names are returned as-is and
// rejected later by the registry lookup.
func ParseNetwork(s string) Network {
	return Network(strings.ToLower(strings.TrimSpace(s)))
}

func (n Network) String() string {
	return string(n)
}

// Encoding names the address encoding used for derived public keys.
type Encoding string

const (
	// EncodingP2PKH is base58check pay-to-pubkey-hash (1..., L..., m/n...).
	EncodingP2PKH Encoding = "p2pkh"
	// EncodingP2WPKH is bech32 native segwit pay-to-witness-pubkey-hash (bc1q..., ltc1q...).
	EncodingP2WPKH Encoding = "p2wpkh"
)

// Params is one row of the currency table: everything that differs between
// currencies on the derivation and read path.
type Params struct {
	Currency Currency
	Network  Network

	// BasePath is the BIP44 prefix up to and including the change level,
	// e.g. m/44'/0'/0'/0. The address index is appended to it.
	BasePath string
	Encoding Encoding

	// Net carries the address prefixes used for encoding and decoding.
	Net *chaincfg.Params

	// MaxConfirmations is the upper bound passed to listunspent.
	MaxConfirmations int64
}

// Output is a single transaction output paying to an address, as handed to the
// payment detection collaborator.
type Output struct {
	TxID          string          `json:"txid"`
	Vout          uint32          `json:"vout"`
	Address       string          `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	Confirmations int64           `json:"confirmations"`
}

// SumOutputs adds up the amounts of outs. An empty slice sums to exactly zero.
func SumOutputs(outs []Output) decimal.Decimal {
	total := decimal.Zero
	for _, o := range outs {
		total = total.Add(o.Amount)
	}

	return total
}
