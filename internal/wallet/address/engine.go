package address

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/pkg/errors"
)

type engine struct {
	registry *chain.Registry
}

// NewEngine creates an Engine resolving currency rows from registry.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEngine(registry *chain.Registry) Engine {
	return &engine{registry: registry}
}

func (e *engine) Path(currency chain.Currency, network chain.Network, index uint32) (string, error) {
	params, err := e.registry.Lookup(currency, network)
	if err != nil {
		return "", err
	}
	if index >= HardenedOffset {
		return "", errors.Wrapf(ErrInvalidPath, "index %d out of range", index)
	}

	return JoinPath(params.BasePath, index), nil
}

func (e *engine) Derive(root *seed.RootKey, currency chain.Currency, network chain.Network, index uint32) (*Derived, error) {
	if root == nil {
		return nil, errors.WithStack(seed.ErrWiped)
	}

	params, err := e.registry.Lookup(currency, network)
	if err != nil {
		return nil, err
	}

	path, err := e.Path(currency, network, index)
	if err != nil {
		return nil, err
	}

	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	pub, err := root.PublicKeyAt(indices)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive %s key at %s", currency, path)
	}

	addr, err := Encode(pub, params)
	if err != nil {
		return nil, err
	}

	return &Derived{
		Currency: currency,
		Network:  network,
		Index:    index,
		Path:     path,
		Address:  addr,
	}, nil
}

// Encode turns a compressed public key into an address string using the
// encoding and network prefixes of params.
func Encode(pub []byte, params *chain.Params) (string, error) {
	hash := btcutil.Hash160(pub)

	var (
		addr btcutil.Address
		err  error
	)
	switch params.Encoding {
	case chain.EncodingP2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(hash, params.Net)
	case chain.EncodingP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(hash, params.Net)
	default:
		return "", errors.Wrapf(chain.ErrUnsupportedConfiguration, "address encoding %q", params.Encoding)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %s address", params.Encoding)
	}

	return addr.EncodeAddress(), nil
}
