package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
)

// VerificationAddressIndex is the index operators compare against a known
// address to confirm the right seed and key are deployed.
const VerificationAddressIndex = 0

// VerificationAddresses derives the address at VerificationAddressIndex for
// every hdwallet currency without allocating it. Node sourced currencies are
// skipped.
func VerificationAddresses(ctx context.Context, providers *provider.Registry) ([]*address.Derived, error) {
	out := make([]*address.Derived, 0)
	for _, currency := range providers.Currencies() {
		p, err := providers.Get(currency)
		if err != nil {
			return nil, err
		}
		if p.Status().AddressSource != provider.AddressSourceHDWallet {
			continue
		}

		d, err := p.DeriveAt(ctx, VerificationAddressIndex)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}

// MnemonicVerificationAddresses derives the verification addresses of every
// hdwallet currency in cfg straight from mnemonic, so seed tooling can show
// them before the encrypted file is deployed.
func MnemonicVerificationAddresses(cfg config.Server, mnemonic string) ([]*address.Derived, error) {
	root, err := seed.RootFromMnemonic([]byte(mnemonic), cfg.Wallet.Seed.Passphrase)
	if err != nil {
		return nil, err
	}
	defer root.Wipe()

	chains := chain.DefaultRegistry()
	if cfg.Wallet.CurrencyTableFile != "" {
		if _, err := config.LoadCurrencyTable(cfg.Wallet.CurrencyTableFile, chains); err != nil {
			return nil, err
		}
	}
	engine := address.NewEngine(chains)

	out := make([]*address.Derived, 0, len(cfg.Wallet.Currencies))
	for _, c := range cfg.Wallet.Currencies {
		pcfg := ToProviderConfig(c, cfg.Wallet.ChainData)
		if pcfg.AddressSource != "" && pcfg.AddressSource != provider.AddressSourceHDWallet {
			continue
		}
		if pcfg.Network == "" {
			pcfg.Network = chain.Mainnet
		}

		d, err := engine.Derive(root, pcfg.Currency, pcfg.Network, VerificationAddressIndex)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}

// CheckConfiguration lists what is missing for the configured currencies to
// work. It never fails; an incomplete setup only surfaces on first use.
func CheckConfiguration(cfg config.Server) []string {
	var warnings []string

	hd := false
	for _, c := range cfg.Wallet.Currencies {
		var missing []string

		switch provider.AddressSource(c.AddressSource) {
		case provider.AddressSourceHDWallet:
			hd = true
		case provider.AddressSourceNode:
			if c.NodeURL == "" {
				missing = append(missing, c.Symbol+"_RPC_URL")
			}
		default:
			warnings = append(warnings, fmt.Sprintf("%s: unknown address source %q", c.Symbol, c.AddressSource))
		}

		if c.NodeURL != "" && c.NodeUser == "" {
			missing = append(missing, c.Symbol+"_RPC_USER")
		}
		if c.NodeURL != "" && c.NodePassword == "" {
			missing = append(missing, c.Symbol+"_RPC_PASSWORD")
		}
		if !c.ChainDataConfigured && c.NodeURL == "" {
			missing = append(missing, "GETBLOCK_ACCESS_TOKEN")
		}
		if c.PreferChainData && !c.ChainDataConfigured {
			warnings = append(warnings, c.Symbol+": chain data preferred for reads but no endpoint configured")
		}

		if len(missing) > 0 {
			warnings = append(warnings, fmt.Sprintf("%s configuration incomplete, missing: %s", c.Symbol, strings.Join(missing, ", ")))
		}
	}

	if hd {
		var missing []string
		if cfg.Wallet.Seed.EncryptedFile == "" {
			missing = append(missing, "HD_WALLET_SEED_ENCRYPTED_FILE")
		}
		if cfg.Wallet.Seed.Key == "" {
			missing = append(missing, "HD_WALLET_ENCRYPTION_KEY")
		}
		if len(missing) > 0 {
			warnings = append(warnings, "HD wallet configuration incomplete, missing: "+strings.Join(missing, ", "))
		}
	}

	return warnings
}
