package probe

import (
	"context"
	"fmt"
	"os"

	"github.com/chapool/go-hdpay/internal/api/handlers/common"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Runs the same readiness probes as the /-/ready endpoint.

Exits with 0 when all probes pass, 1 otherwise.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			readinessCmdFunc(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readinessCmdFunc(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Management.ReadinessTimeout)
	defer cancel()

	ctx = util.DisableLogger(ctx, !verbose)

	err := common.ProbeReadiness(ctx, cfg.Wallet.ProbeSeedFile(), cfg.Management.ProbeWriteablePathsAbs)
	if verbose {
		//nolint:forbidigo // probe result goes to the terminal
		fmt.Printf("Readiness probe result: %v\n", err)
	}

	if err != nil {
		os.Exit(1)
	}
}
