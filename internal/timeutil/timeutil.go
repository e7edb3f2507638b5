package timeutil

import (
	"math"
	"strings"
	"time"
)

// ParseDurationOrDefault parses duration and returns def on empty or invalid value.
func ParseDurationOrDefault(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

// maxSeconds is the largest whole number of seconds a time.Duration holds.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// Seconds converts a whole number of seconds, as tool callers send it, to a
// duration. Values beyond the range of time.Duration saturate instead of
// wrapping, so a positive count never turns into a negative or tiny duration.
func Seconds(n int) time.Duration {
	switch {
	case int64(n) > maxSeconds:
		return time.Duration(math.MaxInt64)
	case int64(n) < -maxSeconds:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(n) * time.Second
}
