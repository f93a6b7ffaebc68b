package utils

import (
	"testing"
	"time"
)

func TestParseDurationString(t *testing.T) {
	t.Run("valid units", func(t *testing.T) {
		cases := []struct {
			input    string
			expected time.Duration
		}{
			{"90s", 90 * time.Second},
			{"30m", 30 * time.Minute},
			{"24h", 24 * time.Hour},
			{"1h30m", 90 * time.Minute},
			{"250ms", 250 * time.Millisecond},
		}
		for _, c := range cases {
			got, err := ParseDurationString(c.input)
			if err != nil {
				t.Errorf("%s: unexpected error: %v", c.input, err)
				continue
			}
			if got != c.expected {
				t.Errorf("%s: expected %s, got %s", c.input, c.expected, got)
			}
		}
	})

	t.Run("rejected values", func(t *testing.T) {
		for _, input := range []string{"", "24", "1d", "2w", "abc"} {
			if _, err := ParseDurationString(input); err == nil {
				t.Errorf("expected error for %q", input)
			}
		}
	})
}
