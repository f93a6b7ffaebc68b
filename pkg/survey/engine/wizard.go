package engine

import (
	"strconv"

	"github.com/ppmonster111/Nutritional/pkg/survey/metrics"
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// Wizard drives the multi-page questionnaire: it owns the answer
// store, tracks the current section, gates forward navigation on
// validation and assembles the final submission. A wizard instance is
// single-owner; no mutation is safe for concurrent use.
type Wizard struct {
	form    surveyTypes.Form
	ordered []surveyTypes.Section
	locale  string

	step           int
	showValidation bool
	isSubmitting   bool
	submitted      bool
	// key of the field to focus after a rejected forward navigation
	focusField string

	answers *AnswerStore
	store   SessionStore
	sink    SubmissionSink

	sessionID         string
	emailDomainSuffix string
	bmiBands          []metrics.BMIBand
}

func NewWizard(form surveyTypes.Form, cfg Config) (*Wizard, error) {
	if len(form.Sections) == 0 {
		return nil, ErrNoSections
	}

	locale := cfg.Locale
	if locale == "" {
		locale = surveyTypes.DEFAULT_LOCALE
	}
	emailSuffix := cfg.EmailDomainSuffix
	if emailSuffix == "" {
		emailSuffix = DEFAULT_EMAIL_DOMAIN_SUFFIX
	}
	bmiBands := cfg.BMIBands
	if bmiBands == nil {
		bmiBands = metrics.DefaultBMIBands()
	}

	w := &Wizard{
		form:              form,
		ordered:           surveyTypes.OrderSections(form.Sections),
		locale:            locale,
		answers:           NewAnswerStore(cfg.Store),
		store:             cfg.Store,
		sink:              cfg.Sink,
		sessionID:         cfg.SessionID,
		emailDomainSuffix: emailSuffix,
		bmiBands:          bmiBands,
	}
	w.step = w.anchorStep()
	return w, nil
}

// anchorStep is the index of the general section, or 0.
func (w *Wizard) anchorStep() int {
	for i, s := range w.ordered {
		if s.Key == surveyTypes.SECTION_KEY_GENERAL {
			return i
		}
	}
	return 0
}

// ReloadForm swaps the underlying schema and re-anchors the wizard on
// the general section.
func (w *Wizard) ReloadForm(form surveyTypes.Form) error {
	if len(form.Sections) == 0 {
		return ErrNoSections
	}
	w.form = form
	w.ordered = surveyTypes.OrderSections(form.Sections)
	w.step = w.anchorStep()
	return nil
}

func (w *Wizard) Step() int                           { return w.step }
func (w *Wizard) Sections() []surveyTypes.Section     { return w.ordered }
func (w *Wizard) CurrentSection() surveyTypes.Section { return w.ordered[w.step] }
func (w *Wizard) ShowValidation() bool                { return w.showValidation }
func (w *Wizard) Submitted() bool                     { return w.submitted }
func (w *Wizard) FocusField() string                  { return w.focusField }
func (w *Wizard) Answers() *AnswerStore               { return w.answers }
func (w *Wizard) Locale() string                      { return w.locale }

// field lookup across the ordered sections
func (w *Wizard) fieldByKey(key string) (surveyTypes.Field, bool) {
	for _, s := range w.ordered {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return surveyTypes.Field{}, false
}

// SetValue writes a scalar answer. Number fields are clamped to the
// bounds from the field metadata before the write. Any write clears
// the validation banner.
func (w *Wizard) SetValue(fieldKey string, value string) {
	if f, ok := w.fieldByKey(fieldKey); ok && f.Type == surveyTypes.FIELD_TYPE_NUMBER {
		value = clampNumber(f, value)
	}
	w.answers.SetScalar(fieldKey, value)
	w.showValidation = false
}

// SetOtherText writes the free-text sidecar of an "other" selection.
// The text is only accepted while the other-role option is part of the
// field's selection, otherwise any stale sidecar is removed.
func (w *Wizard) SetOtherText(fieldKey string, text string) {
	if f, ok := w.fieldByKey(fieldKey); ok {
		_, otherVal := specialValues(f, w.locale)
		if otherVal == "" || !contains(w.answers.ValuesOf(fieldKey), otherVal) {
			w.answers.Delete(fieldKey + OTHER_TEXT_SUFFIX)
			w.showValidation = false
			return
		}
	}
	w.answers.SetScalar(fieldKey+OTHER_TEXT_SUFFIX, text)
	w.showValidation = false
}

func clampNumber(f surveyTypes.Field, value string) string {
	if value == "" {
		return value
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	if num < 0 {
		num = 0
	}
	if f.Meta != nil {
		if f.Meta.Min != nil && num < *f.Meta.Min {
			num = *f.Meta.Min
		}
		if f.Meta.Max != nil && num > *f.Meta.Max {
			num = *f.Meta.Max
		}
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

// Next advances to the following section when the current one passes
// validation. On rejection the validation banner is raised, the first
// offending field is recorded as focus target and the step does not
// change. Returns whether the step advanced.
func (w *Wizard) Next() bool {
	sec := w.CurrentSection()

	if sec.Key == surveyTypes.SECTION_KEY_GENERAL {
		if key, ok := w.emailPolicyViolation(sec); ok {
			w.showValidation = true
			w.focusField = key
			return false
		}
	}

	if sec.Key != surveyTypes.SECTION_KEY_SUMMARY {
		fields := w.VisibleFields()
		if w.answeredCount(fields) != requiredCount(fields) {
			w.showValidation = true
			w.focusField = w.firstUnanswered(fields)
			return false
		}
	}

	if w.step < len(w.ordered)-1 {
		w.step++
	}
	w.focusField = ""
	return true
}

// Prev is unconditional, clamped at the first section.
func (w *Wizard) Prev() {
	if w.step > 0 {
		w.step--
	}
}

// emailPolicyViolation checks the domain acceptance policy: a
// non-empty email answer must end with the accepted suffix.
func (w *Wizard) emailPolicyViolation(sec surveyTypes.Section) (fieldKey string, violated bool) {
	for _, f := range sec.Fields {
		if !f.IsEmailField(w.locale) {
			continue
		}
		v := w.answers.Scalar(f.Key)
		if v != "" && !hasSuffix(v, w.emailDomainSuffix) {
			return f.Key, true
		}
	}
	return "", false
}

func hasSuffix(s string, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
