package types

import "testing"

func TestLocalisedTextResolve(t *testing.T) {
	t.Run("returns requested locale", func(t *testing.T) {
		lt := LocalisedText{"th": "สวัสดี", "en": "hello"}
		if got := lt.Resolve("en"); got != "hello" {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("falls back to default locale", func(t *testing.T) {
		lt := LocalisedText{"th": "สวัสดี"}
		if got := lt.Resolve("en"); got != "สวัสดี" {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("falls back to first non-empty in sorted key order", func(t *testing.T) {
		lt := LocalisedText{"nl": "hallo", "de": "hallo welt", "en": ""}
		if got := lt.Resolve("fr"); got != "hallo welt" {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("empty and nil resolve to empty string", func(t *testing.T) {
		if got := (LocalisedText{}).Resolve("th"); got != "" {
			t.Errorf("unexpected value: %s", got)
		}
		var lt LocalisedText
		if got := lt.Resolve("th"); got != "" {
			t.Errorf("unexpected value: %s", got)
		}
	})

	t.Run("empty value for requested locale is skipped", func(t *testing.T) {
		lt := LocalisedText{"en": "", "th": "สวัสดี"}
		if got := lt.Resolve("en"); got != "สวัสดี" {
			t.Errorf("unexpected value: %s", got)
		}
	})
}
