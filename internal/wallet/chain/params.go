package chain

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// DefaultMaxConfirmations is the effectively unbounded listunspent upper bound.
const DefaultMaxConfirmations = 9999999

// Litecoin network parameters expressed as btcd chaincfg clones. Only the fields
// involved in address encoding differ from the bitcoin originals.
//
//nolint:mnd // network magic and prefixes are protocol constants
var (
	LitecoinMainNetParams  = NewNetParams(&chaincfg.MainNetParams, "litecoin", 0xdbb6c0fb, 0x30, 0x32, "ltc")
	LitecoinTestNet4Params = NewNetParams(&chaincfg.TestNet3Params, "litecoin-testnet4", 0xf1c8d2fd, 0x6f, 0x3a, "tltc")
)

func init() {
	// bech32 decoding in btcutil only accepts registered prefixes.
	for _, params := range []*chaincfg.Params{LitecoinMainNetParams, LitecoinTestNet4Params} {
		if err := chaincfg.Register(params); err != nil {
			panic("failed to register litecoin parameters: " + err.Error())
		}
	}
}

// NewNetParams clones base with the given name, network magic and address
// prefixes. The result still needs chaincfg.Register for bech32 decoding.
func NewNetParams(base *chaincfg.Params, name string, net uint32, pkh, sh byte, hrp string) *chaincfg.Params {
	p := *base
	p.Name = name
	p.Net = wire.BitcoinNet(net)
	p.PubKeyHashAddrID = pkh
	p.ScriptHashAddrID = sh
	p.Bech32HRPSegwit = hrp

	return &p
}

// defaultRows is the built-in currency table. Test networks reuse the mainnet
// coin type so the same index yields the same key on both networks.
func defaultRows() []*Params {
	return []*Params{
		{
			Currency:         "BTC",
			Network:          Mainnet,
			BasePath:         "m/44'/0'/0'/0",
			Encoding:         EncodingP2PKH,
			Net:              &chaincfg.MainNetParams,
			MaxConfirmations: DefaultMaxConfirmations,
		},
		{
			Currency:         "BTC",
			Network:          Testnet,
			BasePath:         "m/44'/0'/0'/0",
			Encoding:         EncodingP2PKH,
			Net:              &chaincfg.TestNet3Params,
			MaxConfirmations: DefaultMaxConfirmations,
		},
		{
			Currency:         "LTC",
			Network:          Mainnet,
			BasePath:         "m/44'/2'/0'/0",
			Encoding:         EncodingP2PKH,
			Net:              LitecoinMainNetParams,
			MaxConfirmations: DefaultMaxConfirmations,
		},
		{
			Currency:         "LTC",
			Network:          Testnet,
			BasePath:         "m/44'/2'/0'/0",
			Encoding:         EncodingP2PKH,
			Net:              LitecoinTestNet4Params,
			MaxConfirmations: DefaultMaxConfirmations,
		},
	}
}
