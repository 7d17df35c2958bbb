package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// DotEnvTryLoad loads the env file at absolutePathToEnvFile if it exists.
// A missing file is not an error; an unparsable one panics.
func DotEnvTryLoad(absolutePathToEnvFile string, setEnvFn func(key string, value string) error) {
	err := DotEnvLoad(absolutePathToEnvFile, setEnvFn)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.Panic().Err(err).Str("envFile", absolutePathToEnvFile).Msg(".env parse error")
		}
		log.Debug().Str("envFile", absolutePathToEnvFile).Msg(".env does not exist, skipping")
	}
}

// DotEnvLoad sets every variable of the env file through setEnvFn. Existing
// process variables are overridden.
func DotEnvLoad(absolutePathToEnvFile string, setEnvFn func(key string, value string) error) error {
	file, err := os.Open(absolutePathToEnvFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	envs, err := gotenv.StrictParse(file)
	if err != nil {
		return errors.Wrap(err, "failed to parse env file")
	}

	for key, value := range envs {
		if err := setEnvFn(key, value); err != nil {
			return errors.Wrapf(err, "failed to set %s", key)
		}
	}

	return nil
}

// DotEnvPath is the env file loaded on startup: DOT_ENV_FILE, or .env in the
// working directory.
func DotEnvPath() string {
	if path := os.Getenv("DOT_ENV_FILE"); path != "" {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return ".env"
	}

	return filepath.Join(wd, ".env")
}
