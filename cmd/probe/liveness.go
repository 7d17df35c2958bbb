package probe

import (
	"context"
	"fmt"
	"os"

	"github.com/chapool/go-hdpay/internal/api/handlers/common"
	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/spf13/cobra"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Runs the same liveness probes as the /-/healthy endpoint.

Exits with 0 when all probes pass, 1 otherwise.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			livenessCmdFunc(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func livenessCmdFunc(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Management.LivenessTimeout)
	defer cancel()

	ctx = util.DisableLogger(ctx, !verbose)

	err := common.ProbeLiveness(ctx, time2.DefaultClock, cfg.Wallet.ProbeSeedFile(), cfg.Management.ProbeWriteablePathsAbs, cfg.Management.ProbeWriteableTouchfile)
	if verbose {
		//nolint:forbidigo // probe result goes to the terminal
		fmt.Printf("Liveness probe result: %v\n", err)
	}

	if err != nil {
		os.Exit(1)
	}
}
