package seed

import (
	"fmt"
	"os"
	"strings"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/chapool/go-hdpay/internal/wallet/keystore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newEncrypt() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypts an existing mnemonic",
		Long: `Reads a mnemonic from the terminal without echoing it and writes it
encrypted to --out (default HD_WALLET_SEED_ENCRYPTED_FILE).

The key is HD_WALLET_ENCRYPTION_KEY, prompted for when unset. An empty answer
generates a new Fernet key.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEncrypt(cmd)
		},
	}

	cmd.Flags().String(outFlag, "", "Path of the encrypted seed file.")
	cmd.Flags().String(formatFlag, string(keystore.FormatFernet), "Seed file format: fernet or keystore.")
	cmd.Flags().Bool(forceFlag, false, "Overwrite an existing seed file.")

	return cmd
}

func runEncrypt(cmd *cobra.Command) error {
	cfg := config.DefaultServiceConfigFromEnv()

	out, _ := cmd.Flags().GetString(outFlag)
	if out == "" {
		out = cfg.Wallet.Seed.EncryptedFile
	}
	formatName, _ := cmd.Flags().GetString(formatFlag)
	force, _ := cmd.Flags().GetBool(forceFlag)

	format, err := keystore.ParseFormat(formatName)
	if err != nil {
		return err
	}

	mnemonic, err := wallet.PromptSecret("Mnemonic: ")
	if err != nil {
		return err
	}

	key := cfg.Wallet.Seed.Key
	if key == "" {
		if key, err = wallet.PromptSecret("Encryption key (empty to generate): "); err != nil {
			return err
		}
	}
	generated := key == ""

	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	key, err = wallet.WriteEncryptedSeed(out, mnemonic, key, format, force)
	if err != nil {
		return err
	}

	log.Info().Str("file", out).Str("format", string(format)).Msg("Encrypted seed written")

	if generated {
		//nolint:forbidigo // generated key goes to the terminal
		fmt.Fprintln(os.Stderr, "Generated encryption key (set as HD_WALLET_ENCRYPTION_KEY):")
		//nolint:forbidigo // generated key goes to the terminal
		fmt.Println(key)
	}

	return printVerificationAddresses(cfg, mnemonic)
}
