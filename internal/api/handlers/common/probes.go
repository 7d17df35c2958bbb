package common

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
)

// ProbeReadiness checks that the encrypted seed file, when given, is present
// and every writeable path exists. It does not decrypt anything.
func ProbeReadiness(ctx context.Context, seedFile string, writeablePaths []string) error {
	log := util.LogFromContext(ctx)

	if seedFile != "" {
		info, err := os.Stat(seedFile)
		if err != nil {
			log.Warn().Err(err).Msg("Readiness probe failed, seed file not accessible")
			return errors.Wrap(err, "seed file not accessible")
		}
		if info.IsDir() {
			return errors.Errorf("seed file %s is a directory", seedFile)
		}
	}

	for _, path := range writeablePaths {
		if _, err := os.Stat(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Readiness probe failed, path not accessible")
			return errors.Wrapf(err, "path %s not accessible", path)
		}
	}

	return nil
}

// ProbeLiveness runs ProbeReadiness and additionally writes the current time
// of clock to touchfile in every writeable path.
func ProbeLiveness(ctx context.Context, clock time2.Clock, seedFile string, writeablePaths []string, touchfile string) error {
	if err := ProbeReadiness(ctx, seedFile, writeablePaths); err != nil {
		return err
	}

	now := clock.Now()
	for _, path := range writeablePaths {
		file := filepath.Join(path, touchfile)
		if err := os.WriteFile(file, []byte(now.Format(time.RFC3339)), 0o600); err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Str("file", file).Msg("Liveness probe failed, path not writeable")
			return errors.Wrapf(err, "path %s not writeable", path)
		}
	}

	return nil
}
