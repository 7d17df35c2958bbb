package wallet

import (
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/chapool/go-hdpay/internal/wallet/nodewallet"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
)

// ToProviderConfig converts the env configuration of one currency into a
// provider config. Sources without an endpoint are left out.
func ToProviderConfig(c config.Currency, cd config.ChainData) provider.Config {
	cfg := provider.Config{
		Currency:        chain.ParseCurrency(c.Symbol),
		Network:         chain.ParseNetwork(c.Network),
		AddressSource:   provider.AddressSource(c.AddressSource),
		PreferChainData: c.PreferChainData,
		Breaker:         ToBreakerSettings(cd),
	}

	if c.ChainDataURL != "" {
		cfg.ChainData = &chainrpc.Config{
			Name:              c.Symbol,
			URL:               c.ChainDataURL,
			Timeout:           cd.Timeout,
			RequestsPerSecond: cd.RequestsPerSecond,
		}
	}

	if c.NodeURL != "" {
		cfg.Node = &nodewallet.Config{
			Name:       c.Symbol,
			URL:        c.NodeURL,
			User:       c.NodeUser,
			Password:   c.NodePassword,
			DisableTLS: c.NodeDisableTLS,
			Timeout:    cd.Timeout,
		}
	}

	return cfg
}

// ToBreakerSettings falls back to the defaults for unset values.
func ToBreakerSettings(cd config.ChainData) provider.BreakerSettings {
	s := provider.DefaultBreakerSettings()
	if cd.BreakerMinRequests > 0 {
		s.MinRequests = uint32(cd.BreakerMinRequests) //nolint:gosec // checked above
	}
	if cd.BreakerFailureRatio > 0 && cd.BreakerFailureRatio <= 1 {
		s.FailureRatio = cd.BreakerFailureRatio
	}
	if cd.BreakerOpenTimeout > 0 {
		s.OpenTimeout = cd.BreakerOpenTimeout
	}

	return s
}
