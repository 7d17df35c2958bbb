package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chapool/go-hdpay/internal/api"
	"github.com/chapool/go-hdpay/internal/api/router"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const verifyFlag = "verify"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the HTTP server serving address and chain read endpoints.

Providers initialize lazily on their first request. Pass --verify to decrypt the
seed at startup and log the index 0 address of every hdwallet currency.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verify, _ := cmd.Flags().GetBool(verifyFlag)
			runServer(verify)
		},
	}

	cmd.Flags().Bool(verifyFlag, false, "Decrypt the seed at startup and log verification addresses.")

	return cmd
}

func runServer(verify bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		log := log.With().Str("component", "server").Logger()

		if verify {
			addrs, err := wallet.VerificationAddresses(ctx, s.Wallet.Providers)
			if err != nil {
				log.Error().Err(err).Msg("Failed to derive verification addresses")
				return err
			}
			for _, d := range addrs {
				log.Info().Str("currency", d.Currency.String()).Str("network", d.Network.String()).Str("address", d.Address).Msg("Verification address")
			}
		}

		router.Init(s)

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("listen_address", s.Config.Echo.ListenAddress).Msg("Starting server")
			errCh <- s.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Failed to start server")
				return err
			}
		case <-ctx.Done():
			log.Info().Msg("Received shutdown signal")
		}

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
