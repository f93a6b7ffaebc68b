package utils

import (
	"fmt"
	"time"
)

// ParseDurationString parses duration expressions like "30m" or "24h" as
// they appear in config files.
func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", value, err)
	}
	return d, nil
}
