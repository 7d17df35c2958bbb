package util

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const ctxKeyDisableLogger contextKey = "disable_logger"

// LogFromContext returns a request-scoped logger from ctx. If no logger is
// attached the global logger is returned, unless logging was explicitly disabled
// for ctx via DisableLogger.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		if ShouldDisableLogger(ctx) {
			return l
		}
		l = &log.Logger
	}

	return l
}

// DisableLogger marks ctx so LogFromContext returns a disabled logger.
func DisableLogger(ctx context.Context, shouldDisable bool) context.Context {
	return context.WithValue(ctx, ctxKeyDisableLogger, shouldDisable)
}

// ShouldDisableLogger reports whether DisableLogger was set on ctx.
func ShouldDisableLogger(ctx context.Context) bool {
	s, ok := ctx.Value(ctxKeyDisableLogger).(bool)
	return ok && s
}

// LogLevelFromString parses s into a zerolog level, defaulting to info.
func LogLevelFromString(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || l == zerolog.NoLevel {
		log.Error().Err(err).Str("level", s).Msg("Failed to parse log level, defaulting to info")
		return zerolog.InfoLevel
	}

	return l
}
