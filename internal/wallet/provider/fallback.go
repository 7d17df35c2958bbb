package provider

import (
	"context"
	"fmt"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/pkg/errors"
)

// FallbackError is returned when both the primary and the fallback source
// failed. It unwraps to both causes.
type FallbackError struct {
	Operation      string
	PrimarySource  string
	FallbackSource string
	Primary        error
	Fallback       error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%s failed on both sources: primary %s: %v; fallback %s: %v",
		e.Operation, e.PrimarySource, e.Primary, e.FallbackSource, e.Fallback)
}

func (e *FallbackError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}

// read runs op against the first source and, on failure, against the second.
// A primary failure followed by a fallback success is only logged.
func read[T any](ctx context.Context, p *provider, sources []Source, op string, fn func(Source) (T, error)) (T, error) {
	var zero T

	if len(sources) == 0 {
		return zero, errors.Wrapf(chain.ErrConfiguration, "no chain data source configured for %s", p.cfg.Currency)
	}

	v, err := fn(sources[0])
	if err == nil {
		return v, nil
	}
	if len(sources) == 1 {
		return zero, err
	}

	log := util.LogFromContext(ctx).With().
		Str("component", "provider").
		Str("currency", p.cfg.Currency.String()).
		Str("operation", op).
		Logger()

	log.Warn().Err(err).
		Str("primary", sources[0].Name()).
		Str("fallback", sources[1].Name()).
		Msg("Primary source failed, trying fallback")

	v, fbErr := fn(sources[1])
	if fbErr == nil {
		p.deps.Metrics.IncFallback(p.cfg.Currency.String(), op)
		return v, nil
	}

	log.Error().Err(fbErr).Str("fallback", sources[1].Name()).Msg("Fallback source failed too")

	return zero, &FallbackError{
		Operation:      op,
		PrimarySource:  sources[0].Name(),
		FallbackSource: sources[1].Name(),
		Primary:        err,
		Fallback:       fbErr,
	}
}
