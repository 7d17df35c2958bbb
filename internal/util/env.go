package util

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnv returns the value of key, or defaultVal when key is unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns key parsed as int, or defaultVal when unset or invalid.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strings.TrimSpace(strVal)); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsFloat returns key parsed as float64, or defaultVal when unset or invalid.
func GetEnvAsFloat(key string, defaultVal float64) float64 {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseFloat(strings.TrimSpace(strVal), 64); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsBool treats 1/true/yes/on (any case) as true and 0/false/no/off as
// false. Anything else yields defaultVal.
func GetEnvAsBool(key string, defaultVal bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultVal
	}
}

// GetEnvAsDuration returns key parsed with time.ParseDuration, or defaultVal.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")

	if val, err := time.ParseDuration(strings.TrimSpace(strVal)); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsStringArr splits key by separator (default ","), trimming and dropping
// empty entries.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")
	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	parts := strings.Split(strVal, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
