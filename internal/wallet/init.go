package wallet

import (
	"context"
	"fmt"
	"os"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/metrics"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Initialize builds the wallet components from cfg. Nothing is decrypted or
// dialed here; providers load the seed and connect on first use.
func Initialize(ctx context.Context, cfg config.Server, m *metrics.Service) (*Components, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_init").Logger()

	chains := chain.DefaultRegistry()
	if cfg.Wallet.CurrencyTableFile != "" {
		rows, err := config.LoadCurrencyTable(cfg.Wallet.CurrencyTableFile, chains)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", cfg.Wallet.CurrencyTableFile).Int("rows", len(rows)).Msg("Loaded currency table")
	}

	format, err := keystore.ParseFormat(cfg.Wallet.Seed.Format)
	if err != nil {
		return nil, errors.Wrap(err, "invalid seed format")
	}

	vault := seed.NewVault(keystore.NewService(), format, cfg.Wallet.Seed.Passphrase)
	seeds := seed.NewManager(vault, cfg.Wallet.Seed.EncryptedFile, cfg.Wallet.Seed.Key)

	c := &Components{
		Chains:    chains,
		Seeds:     seeds,
		Allocator: address.NewAllocator(),
		Engine:    address.NewEngine(chains),
	}

	deps := provider.Deps{
		Registry:  c.Chains,
		Seeds:     c.Seeds,
		Allocator: c.Allocator,
		Engine:    c.Engine,
		Metrics:   m,
	}

	providers := make([]provider.Provider, 0, len(cfg.Wallet.Currencies))
	for _, cur := range cfg.Wallet.Currencies {
		pcfg := ToProviderConfig(cur, cfg.Wallet.ChainData)
		if _, err := chains.Lookup(pcfg.Currency, pcfg.Network); err != nil {
			return nil, err
		}

		providers = append(providers, provider.New(pcfg, deps))
		log.Info().
			Str("currency", pcfg.Currency.String()).
			Str("network", pcfg.Network.String()).
			Str("address_source", string(pcfg.AddressSource)).
			Bool("chain_data", pcfg.ChainData != nil).
			Bool("node", pcfg.Node != nil).
			Msg("Registered currency provider")
	}

	c.Providers = provider.NewRegistry(providers...)
	c.Service = NewService(c.Providers)

	for _, warning := range CheckConfiguration(cfg) {
		log.Warn().Msg(warning)
	}

	return c, nil
}

// PromptSecret reads a line from the terminal without echoing it.
//
//nolint:forbidigo // Secret input requires direct terminal I/O
func PromptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	b, err := term.ReadPassword(int(os.Stdin.Fd())) //nolint:gosec // fd fits int
	if err != nil {
		return "", errors.Wrap(err, "failed to read secret from terminal")
	}

	fmt.Fprintln(os.Stderr)

	return string(b), nil
}
