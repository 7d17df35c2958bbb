package seed

import (
	"fmt"
	"os"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/util/command"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/spf13/cobra"
)

const (
	outFlag    = "out"
	formatFlag = "format"
	forceFlag  = "force"
	wordsFlag  = "words"
	showFlag   = "show-mnemonic"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("seed",
		newGenerate(),
		newEncrypt(),
		newInspect(),
	)
}

// entropyForWords maps a BIP39 word count to its entropy size in bits.
func entropyForWords(words int) int {
	return words * 32 / 3 //nolint:mnd // 11 bits per word, 1 checksum bit per 32 entropy bits
}

// printVerificationAddresses lists the index 0 address of every hdwallet
// currency derived from the mnemonic just written.
//
//nolint:forbidigo // addresses go to the terminal
func printVerificationAddresses(cfg config.Server, mnemonic string) error {
	addrs, err := wallet.MnemonicVerificationAddresses(cfg, mnemonic)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Verification addresses:")
	for _, d := range addrs {
		fmt.Fprintf(os.Stderr, "%s\t%s\t%s\t%s\n", d.Currency, d.Network, d.Path, d.Address)
	}

	return nil
}
