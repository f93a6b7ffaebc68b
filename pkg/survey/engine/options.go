package engine

import (
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// specialValues identifies the none-role and other-role option values
// of a multi-select field, empty when the field has none.
func specialValues(f surveyTypes.Field, locale string) (noneVal string, otherVal string) {
	for _, o := range f.Options {
		if noneVal == "" && o.IsNoneRole(locale) {
			noneVal = o.Value
		}
		if otherVal == "" && o.IsOtherRole(locale) {
			otherVal = o.Value
		}
	}
	return noneVal, otherVal
}

// ToggleOption toggles one option of a checkbox/multiselect field,
// enforcing the special-option rules: the none-role option is
// exclusive with everything else, other options are non-interactive
// while it is selected, and the "other" free text is dropped as soon
// as the other-role option leaves the selection.
func (w *Wizard) ToggleOption(fieldKey string, value string) {
	f, ok := w.fieldByKey(fieldKey)
	if !ok || !f.IsMultiValue() {
		return
	}

	current := w.answers.ValuesOf(fieldKey)
	noneVal, otherVal := specialValues(f, w.locale)
	noneActive := noneVal != "" && contains(current, noneVal)

	var next []string
	switch {
	case noneVal != "" && value == noneVal:
		if noneActive {
			next = []string{}
		} else {
			next = []string{noneVal}
		}
	case noneActive:
		// remaining options are non-interactive while "none" is selected
		return
	case contains(current, value):
		next = remove(current, value)
	default:
		next = append(remove(current, noneVal), value)
	}

	w.answers.SetValues(fieldKey, next)
	if otherVal == "" || !contains(next, otherVal) {
		w.answers.Delete(fieldKey + OTHER_TEXT_SUFFIX)
	}
	w.showValidation = false
}

// SetSelection replaces the whole selection of a checkbox/multiselect
// field, used when answers arrive in bulk instead of per toggle. The
// special-option rules still hold for the result: the none-role option
// is removed when anything else is selected, and the "other" free text
// is dropped when the other-role option is not part of the selection.
func (w *Wizard) SetSelection(fieldKey string, values []string) {
	f, ok := w.fieldByKey(fieldKey)
	if !ok || !f.IsMultiValue() {
		return
	}

	next := make([]string, 0, len(values))
	for _, v := range values {
		if !contains(next, v) {
			next = append(next, v)
		}
	}
	noneVal, otherVal := specialValues(f, w.locale)
	if noneVal != "" && len(next) > 1 {
		next = remove(next, noneVal)
	}

	w.answers.SetValues(fieldKey, next)
	if otherVal == "" || !contains(next, otherVal) {
		w.answers.Delete(fieldKey + OTHER_TEXT_SUFFIX)
	}
	w.showValidation = false
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func remove(values []string, v string) []string {
	next := make([]string, 0, len(values))
	for _, x := range values {
		if x != v {
			next = append(next, x)
		}
	}
	return next
}
