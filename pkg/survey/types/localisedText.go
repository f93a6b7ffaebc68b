package types

import "sort"

// Default language of the questionnaire content.
const DEFAULT_LOCALE = "th"

// LocalisedText maps a locale code to a display string.
type LocalisedText map[string]string

// Resolve returns the text for the given locale. Missing locales fall
// back to the default locale, then to the first non-empty value in
// sorted key order. An empty or nil object resolves to "".
func (lt LocalisedText) Resolve(locale string) string {
	if len(lt) == 0 {
		return ""
	}
	if v := lt[locale]; v != "" {
		return v
	}
	if v := lt[DEFAULT_LOCALE]; v != "" {
		return v
	}

	keys := make([]string, 0, len(lt))
	for k := range lt {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if lt[k] != "" {
			return lt[k]
		}
	}
	return ""
}
