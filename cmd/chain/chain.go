package chain

import (
	"context"
	"encoding/json"
	"os"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/chapool/go-hdpay/internal/wallet"
	hdchain "github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const currencyFlag = "currency"

func New() *cobra.Command {
	return command.NewSubcommandGroup("chain",
		newReadCommand("balance <address>", "Prints the unspent balance of an address", 1,
			func(ctx context.Context, svc wallet.Service, currency hdchain.Currency, args []string) (any, error) {
				return svc.GetBalance(ctx, currency, args[0])
			}),
		newReadCommand("outputs <address>", "Lists the unspent outputs paying to an address", 1,
			func(ctx context.Context, svc wallet.Service, currency hdchain.Currency, args []string) (any, error) {
				return svc.GetIncomingOutputs(ctx, currency, args[0])
			}),
		newReadCommand("tx <txid>", "Decodes the outputs of a transaction per paid address", 1,
			func(ctx context.Context, svc wallet.Service, currency hdchain.Currency, args []string) (any, error) {
				return svc.GetAddrByTx(ctx, currency, args[0])
			}),
		newReadCommand("height", "Prints the current block height", 0,
			func(ctx context.Context, svc wallet.Service, currency hdchain.Currency, _ []string) (any, error) {
				return svc.GetBlockHeight(ctx, currency)
			}),
	)
}

type readFunc func(ctx context.Context, svc wallet.Service, currency hdchain.Currency, args []string) (any, error)

// newReadCommand wraps a single read through the configured sources of
// --currency, printing the result as JSON.
func newReadCommand(use string, short string, nargs int, read readFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			currency, _ := cmd.Flags().GetString(currencyFlag)

			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				result, err := read(ctx, s.Wallet.Service, hdchain.ParseCurrency(currency), args)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")

				return errors.Wrap(enc.Encode(result), "failed to print result")
			})
		},
	}

	cmd.Flags().String(currencyFlag, "BTC", "Currency ticker.")

	return cmd
}
