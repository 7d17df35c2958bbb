package seed

import (
	"context"
	"fmt"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/spf13/cobra"
)

func newInspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Prints the verification addresses of the configured seed",
		Long: `Opens the configured seed and prints the index 0 address of every
enabled hdwallet currency. Compare them with known addresses to check that the
right seed, key and passphrase are deployed. Nothing is allocated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				addrs, err := wallet.VerificationAddresses(ctx, s.Wallet.Providers)
				if err != nil {
					return err
				}

				for _, d := range addrs {
					//nolint:forbidigo // printing is the purpose of this command
					fmt.Printf("%s\t%s\t%s\t%s\n", d.Currency, d.Network, d.Path, d.Address)
				}

				return nil
			})
		},
	}
}
