package cmd

import (
	"fmt"
	"os"

	"github.com/chapool/go-hdpay/cmd/address"
	"github.com/chapool/go-hdpay/cmd/chain"
	"github.com/chapool/go-hdpay/cmd/env"
	"github.com/chapool/go-hdpay/cmd/probe"
	"github.com/chapool/go-hdpay/cmd/seed"
	"github.com/chapool/go-hdpay/cmd/server"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

HD wallet address supply and chain reads for BTC style currencies.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	config.DotEnvTryLoad(config.DotEnvPath(), os.Setenv)

	// attach the subcommands
	rootCmd.AddCommand(
		address.New(),
		chain.New(),
		env.New(),
		probe.New(),
		seed.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
