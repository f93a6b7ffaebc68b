package engine

import (
	"math"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// VisibleFields resolves which fields of the current section are
// actually displayed. Sections other than "general" show all their
// fields; the summary pseudo-section has none. In the general section
// the "specify" follow-ups are suppressed, and the surgery-detail
// field only shows while the surgery-history control holds an
// affirmative answer.
func (w *Wizard) VisibleFields() []surveyTypes.Field {
	sec := w.CurrentSection()
	switch sec.Key {
	case surveyTypes.SECTION_KEY_SUMMARY:
		return nil
	case surveyTypes.SECTION_KEY_GENERAL:
	default:
		return sec.Fields
	}

	hasSurgery := w.surgeryConfirmed(sec)

	visible := make([]surveyTypes.Field, 0, len(sec.Fields))
	for _, f := range sec.Fields {
		if f.IsSpecifyDetail(w.locale) {
			continue
		}
		if f.IsSurgeryDetail(w.locale) && !hasSurgery {
			continue
		}
		visible = append(visible, f)
	}
	return visible
}

// surgeryConfirmed reports whether the surgery-history control holds a
// value whose label is affirmative.
func (w *Wizard) surgeryConfirmed(sec surveyTypes.Section) bool {
	for _, f := range sec.Fields {
		if !f.IsSurgeryTrigger(w.locale) {
			continue
		}
		v := w.answers.Scalar(f.Key)
		if v == "" {
			return false
		}
		opt, ok := f.OptionByValue(v)
		return ok && opt.IsAffirmative(w.locale)
	}
	return false
}

func (w *Wizard) hasAnswer(f surveyTypes.Field) bool {
	if f.IsMultiValue() {
		return len(w.answers.ValuesOf(f.Key)) > 0
	}
	return w.answers.Scalar(f.Key) != ""
}

func requiredCount(fields []surveyTypes.Field) int {
	n := 0
	for _, f := range fields {
		if f.Required {
			n++
		}
	}
	return n
}

func (w *Wizard) answeredCount(fields []surveyTypes.Field) int {
	n := 0
	for _, f := range fields {
		if f.Required && w.hasAnswer(f) {
			n++
		}
	}
	return n
}

func (w *Wizard) firstUnanswered(fields []surveyTypes.Field) string {
	for _, f := range fields {
		if f.Required && !w.hasAnswer(f) {
			return f.Key
		}
	}
	return ""
}

// Progress returns the answered/required counts of the current
// section and the derived percentage. The summary section always
// reports 100.
func (w *Wizard) Progress() (answered int, required int, pct int) {
	if w.CurrentSection().Key == surveyTypes.SECTION_KEY_SUMMARY {
		return 0, 0, 100
	}
	fields := w.VisibleFields()
	required = requiredCount(fields)
	answered = w.answeredCount(fields)
	if required == 0 {
		return answered, required, 0
	}
	return answered, required, int(math.Round(float64(answered) / float64(required) * 100))
}
