package address

import (
	"context"
	"encoding/json"
	"math"
	"os"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/chapool/go-hdpay/internal/wallet/address"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDerive() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Recomputes addresses at given indices",
		Long: `Derives the addresses at --index .. --index+--count-1 of --currency from the
configured seed, for example to audit addresses issued by a server. Nothing
is allocated; a running server is unaffected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			currency, _ := cmd.Flags().GetString(currencyFlag)
			index, _ := cmd.Flags().GetUint32(indexFlag)
			count, _ := cmd.Flags().GetUint32(countFlag)

			return runDerive(cmd.Context(), chain.ParseCurrency(currency), index, count)
		},
	}

	cmd.Flags().String(currencyFlag, "BTC", "Currency ticker.")
	cmd.Flags().Uint32(indexFlag, 0, "First address index.")
	cmd.Flags().Uint32(countFlag, 1, "Number of addresses.")

	return cmd
}

func runDerive(ctx context.Context, currency chain.Currency, index uint32, count uint32) error {
	if count == 0 {
		return errors.New("count must be at least 1")
	}
	if uint64(index)+uint64(count) > math.MaxUint32 {
		return errors.Wrap(address.ErrInvalidPath, "index range overflows")
	}

	return command.WithServer(ctx, config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
		enc := json.NewEncoder(os.Stdout)
		for i := range count {
			d, err := s.Wallet.Service.AddressAt(ctx, currency, index+i)
			if err != nil {
				return err
			}
			if err := enc.Encode(d); err != nil {
				return errors.Wrap(err, "failed to print address")
			}
		}

		return nil
	})
}
