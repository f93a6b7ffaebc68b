package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

const SUBMISSION_STATUS_SUBMITTED = "submitted"

// BuildPayload merges the raw answers with the computed body metrics
// into the normalized submission payload.
func (w *Wizard) BuildPayload() SubmissionPayload {
	bmi, bsa, bsaStatus := w.BodyMetrics()

	answers := w.answers.Raw()
	answers["_computed"] = ComputedMetrics{
		BMI:       bmi.Value,
		BMIStatus: bmi.Status,
		BSA:       bsa,
		BSAStatus: bsaStatus,
	}

	formID := ""
	if !w.form.ID.IsZero() {
		formID = w.form.ID.Hex()
	}

	return SubmissionPayload{
		FormID:      formID,
		FormSlug:    w.form.Slug,
		FormVersion: w.form.Version,
		SessionID:   w.sessionID,
		Answers:     answers,
		Status:      SUBMISSION_STATUS_SUBMITTED,
		SubmittedAt: time.Now().Unix(),
	}
}

// Submit hands the payload to the submission sink. Only available on
// the last section; a second call while one is in flight is a no-op.
// On sink failure the wizard keeps all state so the user can retry; on
// success the answer store is cleared, the finished flag persisted and
// the wizard enters its terminal state.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != len(w.ordered)-1 {
		return ErrNotOnLastSection
	}
	if w.isSubmitting {
		return nil
	}
	w.isSubmitting = true
	defer func() { w.isSubmitting = false }()

	payload := w.BuildPayload()
	if err := w.sink.Insert(ctx, payload); err != nil {
		slog.Error("survey submission rejected by sink", slog.String("formSlug", w.form.Slug), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	if w.store != nil {
		if err := w.store.Set(FINISHED_KEY, []byte("true")); err != nil {
			slog.Error("failed to persist finished flag", slog.String("error", err.Error()))
		}
	}
	w.answers.Clear()
	w.submitted = true
	w.showValidation = false
	w.focusField = ""
	return nil
}

// FlattenAnswers folds every answer of the form into a display string
// per field key: multi-value selections are joined with ", " and the
// "other" free text is appended as its own entry in the list, replacing
// the bare other-role value.
func FlattenAnswers(form surveyTypes.Form, answers map[string]interface{}, locale string) map[string]string {
	flat := map[string]string{}
	for _, sec := range form.Sections {
		for _, f := range sec.Fields {
			raw, ok := answers[f.Key]
			if !ok {
				continue
			}
			switch v := raw.(type) {
			case string:
				flat[f.Key] = v
			case []string:
				flat[f.Key] = foldOtherText(f, v, otherTextOf(answers, f.Key), locale)
			case []interface{}:
				values := make([]string, 0, len(v))
				for _, x := range v {
					if s, ok := x.(string); ok {
						values = append(values, s)
					}
				}
				flat[f.Key] = foldOtherText(f, values, otherTextOf(answers, f.Key), locale)
			}
		}
	}
	return flat
}

func otherTextOf(answers map[string]interface{}, fieldKey string) string {
	if v, ok := answers[fieldKey+OTHER_TEXT_SUFFIX].(string); ok {
		return v
	}
	return ""
}

func foldOtherText(f surveyTypes.Field, values []string, otherText string, locale string) string {
	_, otherVal := specialValues(f, locale)

	out := ""
	for _, v := range values {
		if otherVal != "" && v == otherVal {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += v
	}
	if otherVal != "" && contains(values, otherVal) && otherText != "" {
		if out != "" {
			out += ", "
		}
		out += otherVal + ": " + otherText
	}
	return out
}
