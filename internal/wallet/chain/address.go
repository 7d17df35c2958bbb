package chain

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

// DecodeAddress decodes address and checks that it belongs to net.
func DecodeAddress(address string, net *chaincfg.Params) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(address, net)
	if err != nil || !addr.IsForNet(net) {
		return nil, errors.Wrapf(ErrInvalidAddress, "%s on %s", address, net.Name)
	}

	return addr, nil
}
