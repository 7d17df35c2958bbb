package address

import (
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/spf13/cobra"
)

const (
	currencyFlag = "currency"
	indexFlag    = "index"
	countFlag    = "count"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("address",
		newDerive(),
	)
}
