package config

import "fmt"

// Set at link time, e.g. -ldflags "-X github.com/chapool/go-hdpay/internal/config.Commit=$(git rev-parse HEAD)".
var (
	ModuleName = "go-hdpay"
	Commit     = "< 40 chars git commit hash via ldflags >"
	BuildDate  = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns the module name, commit and build date in one line.
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
