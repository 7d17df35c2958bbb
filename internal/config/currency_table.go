package config

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// CurrencyRow is one entry of the optional currency table file. Rows either
// reuse a known network by name or describe a new one through the prefix fields.
type CurrencyRow struct {
	Currency         string `mapstructure:"currency"`
	Network          string `mapstructure:"network"`
	BasePath         string `mapstructure:"base_path"`
	Encoding         string `mapstructure:"encoding"`
	MaxConfirmations int64  `mapstructure:"max_confirmations"`

	// BaseNet is "mainnet" or "testnet" and selects the bitcoin params the
	// row is cloned from.
	BaseNet      string `mapstructure:"base_net"`
	NetName      string `mapstructure:"net_name"`
	Magic        uint32 `mapstructure:"magic"`
	PubKeyHashID uint8  `mapstructure:"pubkey_hash_id"`
	ScriptHashID uint8  `mapstructure:"script_hash_id"`
	Bech32HRP    string `mapstructure:"bech32_hrp"`
}

// LoadCurrencyTable reads the currency rows from path (yaml, json or toml) and
// registers them in registry, replacing built-in rows with the same key.
func LoadCurrencyTable(path string, registry *chain.Registry) ([]*chain.Params, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read currency table %s", path)
	}

	var rows []CurrencyRow
	if err := v.UnmarshalKey("currencies", &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode currency table")
	}

	out := make([]*chain.Params, 0, len(rows))
	for i, row := range rows {
		params, err := row.Params()
		if err != nil {
			return nil, errors.Wrapf(err, "currency table row %d", i)
		}
		if err := registry.Register(params); err != nil {
			return nil, errors.Wrapf(err, "currency table row %d", i)
		}
		out = append(out, params)
	}

	return out, nil
}

// Params converts the row into registry params, registering new network
// prefixes with chaincfg so bech32 decoding accepts them.
func (r CurrencyRow) Params() (*chain.Params, error) {
	network := chain.ParseNetwork(r.Network)

	var base *chaincfg.Params
	switch chain.ParseNetwork(r.BaseNet) {
	case chain.Mainnet, "":
		base = &chaincfg.MainNetParams
		if network == chain.Testnet && r.BaseNet == "" {
			base = &chaincfg.TestNet3Params
		}
	case chain.Testnet:
		base = &chaincfg.TestNet3Params
	default:
		return nil, errors.Wrapf(chain.ErrUnsupportedConfiguration, "base network %q", r.BaseNet)
	}

	net := base
	if r.NetName != "" {
		if r.Magic == 0 {
			return nil, errors.Wrapf(chain.ErrUnsupportedConfiguration, "network %q needs a magic value", r.NetName)
		}
		net = chain.NewNetParams(base, r.NetName, r.Magic, r.PubKeyHashID, r.ScriptHashID, r.Bech32HRP)
		if err := chaincfg.Register(net); err != nil && !errors.Is(err, chaincfg.ErrDuplicateNet) {
			return nil, errors.Wrapf(err, "failed to register network %s", r.NetName)
		}
	}

	return &chain.Params{
		Currency:         chain.ParseCurrency(r.Currency),
		Network:          network,
		BasePath:         strings.TrimSpace(r.BasePath),
		Encoding:         chain.Encoding(strings.ToLower(strings.TrimSpace(r.Encoding))),
		Net:              net,
		MaxConfirmations: r.MaxConfirmations,
	}, nil
}
