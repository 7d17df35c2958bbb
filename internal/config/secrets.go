package config

import (
	"os"
	"strings"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/rs/zerolog/log"
)

// LoadSecret returns the content of the file named by fileKey when that file
// can be read, otherwise the value of key. Surrounding whitespace is trimmed
// from file contents.
func LoadSecret(key string, fileKey string) string {
	if fileKey != "" {
		if path := util.GetEnv(fileKey, ""); path != "" {
			//nolint:gosec // path is operator supplied configuration
			content, err := os.ReadFile(path)
			if err == nil {
				return strings.TrimSpace(string(content))
			}
			if !os.IsNotExist(err) {
				log.Warn().Str("key", fileKey).Err(err).Msg("Failed to read secret file, falling back to environment variable")
			}
		}
	}

	return util.GetEnv(key, "")
}

// loadSecretPair is LoadSecret with the conventional KEY_FILE companion.
func loadSecretPair(key string) string {
	return LoadSecret(key, key+"_FILE")
}
