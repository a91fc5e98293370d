package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayouts are the accepted input formats for optional dates, tried in order
var DateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02", "02/01/2006 15:04", "02/01/2006"}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if strings.TrimSpace(durationStr) == "" {
		return defaultDuration
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// the global logger may not be configured yet
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses s with the first matching layout in loc
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOptionalDate returns nil for an empty or unparseable string
func ParseOptionalDate(s string, loc *time.Location) *time.Time {
	t, ok := ParseDate(s, loc)
	if !ok {
		return nil
	}
	return &t
}
