package seed

import (
	"fmt"
	"os"
	"slices"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	hdseed "github.com/chapool/go-hdpay/internal/wallet/seed"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newGenerate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates and encrypts a new mnemonic",
		Long: `Generates a new BIP39 mnemonic and writes it encrypted to --out
(default HD_WALLET_SEED_ENCRYPTED_FILE).

The key is HD_WALLET_ENCRYPTION_KEY. Without one, a new Fernet key is generated
and printed; store it, the seed cannot be opened without it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}

	cmd.Flags().String(outFlag, "", "Path of the encrypted seed file.")
	cmd.Flags().String(formatFlag, string(keystore.FormatFernet), "Seed file format: fernet or keystore.")
	cmd.Flags().Int(wordsFlag, 24, "Mnemonic length: 12, 15, 18, 21 or 24 words.")
	cmd.Flags().Bool(forceFlag, false, "Overwrite an existing seed file.")
	cmd.Flags().Bool(showFlag, false, "Print the mnemonic for an offline backup.")

	return cmd
}

//nolint:forbidigo // generated secrets go to the terminal
func runGenerate(cmd *cobra.Command) error {
	cfg := config.DefaultServiceConfigFromEnv()

	out, _ := cmd.Flags().GetString(outFlag)
	if out == "" {
		out = cfg.Wallet.Seed.EncryptedFile
	}
	formatName, _ := cmd.Flags().GetString(formatFlag)
	words, _ := cmd.Flags().GetInt(wordsFlag)
	force, _ := cmd.Flags().GetBool(forceFlag)
	show, _ := cmd.Flags().GetBool(showFlag)

	if !slices.Contains(hdseed.ValidWordCounts, words) {
		return errors.Errorf("invalid word count %d", words)
	}
	format, err := keystore.ParseFormat(formatName)
	if err != nil {
		return err
	}

	mnemonic, err := hdseed.GenerateMnemonic(entropyForWords(words))
	if err != nil {
		return err
	}

	key, err := wallet.WriteEncryptedSeed(out, mnemonic, cfg.Wallet.Seed.Key, format, force)
	if err != nil {
		return err
	}

	log.Info().Str("file", out).Str("format", string(format)).Int("words", words).Msg("Encrypted seed written")

	if cfg.Wallet.Seed.Key == "" {
		fmt.Fprintln(os.Stderr, "Generated encryption key (set as HD_WALLET_ENCRYPTION_KEY):")
		fmt.Println(key)
	}
	if show {
		fmt.Fprintln(os.Stderr, "Mnemonic (write it down and keep it offline):")
		fmt.Println(mnemonic)
	}

	return printVerificationAddresses(cfg, mnemonic)
}
