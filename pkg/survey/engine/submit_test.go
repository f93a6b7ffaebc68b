package engine

import (
	"context"
	"errors"
	"testing"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

func wizardOnSummary(t *testing.T, store SessionStore, sink SubmissionSink) *Wizard {
	t.Helper()
	w := newTestWizard(t, store, sink)
	fillGeneral(w)
	w.Next()
	fillSection(w, "every-day")
	w.Next()
	fillSection(w, "1")
	w.Next()
	if w.CurrentSection().Key != surveyTypes.SECTION_KEY_SUMMARY {
		t.Fatalf("fixture not on summary, got %s", w.CurrentSection().Key)
	}
	return w
}

func TestBuildPayload(t *testing.T) {
	sink := &stubSink{}
	w := wizardOnSummary(t, nil, sink)

	payload := w.BuildPayload()

	if payload.FormSlug != "nutrition-habits" || payload.FormVersion != 3 {
		t.Errorf("unexpected form reference: %s v%d", payload.FormSlug, payload.FormVersion)
	}
	if payload.SessionID != "sess-1" {
		t.Errorf("unexpected session id: %s", payload.SessionID)
	}
	if payload.Status != SUBMISSION_STATUS_SUBMITTED {
		t.Errorf("unexpected status: %s", payload.Status)
	}
	if payload.SubmittedAt == 0 {
		t.Error("submission timestamp missing")
	}

	if payload.Answers["age"] != "30" {
		t.Errorf("unexpected answer: %v", payload.Answers["age"])
	}
	computed, ok := payload.Answers["_computed"].(ComputedMetrics)
	if !ok {
		t.Fatalf("computed metrics missing: %v", payload.Answers["_computed"])
	}
	if computed.BMI == nil || *computed.BMI != 22.5 || computed.BMIStatus != "normal" {
		t.Errorf("unexpected BMI: %+v", computed)
	}
	if computed.BSA == nil || *computed.BSA != 1.75 || computed.BSAStatus != "normal" {
		t.Errorf("unexpected BSA: %+v", computed)
	}
}

func TestSubmit(t *testing.T) {
	t.Run("only available on the last section", func(t *testing.T) {
		w := newTestWizard(t, nil, &stubSink{})
		if err := w.Submit(context.Background()); !errors.Is(err, ErrNotOnLastSection) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("sink failure keeps all state for a retry", func(t *testing.T) {
		store := NewMemorySessionStore()
		sink := &stubSink{err: errors.New("db down")}
		w := wizardOnSummary(t, store, sink)
		entries := w.Answers().Len()

		err := w.Submit(context.Background())
		if !errors.Is(err, ErrSubmissionFailed) {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Submitted() {
			t.Error("wizard should not enter its terminal state")
		}
		if w.Answers().Len() != entries {
			t.Error("answers should survive a failed submit")
		}
		if raw, _ := store.Get(SNAPSHOT_KEY); raw == nil {
			t.Error("snapshot should survive a failed submit")
		}

		// retry after the sink recovers
		sink.err = nil
		if err := w.Submit(context.Background()); err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if len(sink.payloads) != 1 {
			t.Errorf("unexpected number of payloads: %d", len(sink.payloads))
		}
	})

	t.Run("success clears answers and persists the finished flag", func(t *testing.T) {
		store := NewMemorySessionStore()
		sink := &stubSink{}
		w := wizardOnSummary(t, store, sink)

		if err := w.Submit(context.Background()); err != nil {
			t.Fatal(err)
		}
		if w.Answers().Len() != 0 {
			t.Error("answers should be cleared")
		}
		if finished, _ := store.Get(FINISHED_KEY); string(finished) != "true" {
			t.Errorf("unexpected finished flag: %s", finished)
		}
	})
}

func TestFlattenAnswers(t *testing.T) {
	form := testForm()

	t.Run("joins multi values and folds the other text", func(t *testing.T) {
		answers := map[string]interface{}{
			"age":                         "30",
			"disease":                     []string{"ht", "other"},
			"disease" + OTHER_TEXT_SUFFIX: "ภูมิแพ้",
		}

		flat := FlattenAnswers(form, answers, "th")
		if flat["age"] != "30" {
			t.Errorf("unexpected scalar: %s", flat["age"])
		}
		if flat["disease"] != "ht, other: ภูมิแพ้" {
			t.Errorf("unexpected folded value: %s", flat["disease"])
		}
	})

	t.Run("other without text keeps the bare value out", func(t *testing.T) {
		answers := map[string]interface{}{
			"disease": []string{"ht", "other"},
		}
		flat := FlattenAnswers(form, answers, "th")
		if flat["disease"] != "ht" {
			t.Errorf("unexpected folded value: %s", flat["disease"])
		}
	})

	t.Run("handles decoded json slices", func(t *testing.T) {
		answers := map[string]interface{}{
			"disease": []interface{}{"ht", "dm"},
		}
		flat := FlattenAnswers(form, answers, "th")
		if flat["disease"] != "ht, dm" {
			t.Errorf("unexpected folded value: %s", flat["disease"])
		}
	})

	t.Run("unanswered fields are absent", func(t *testing.T) {
		flat := FlattenAnswers(form, map[string]interface{}{}, "th")
		if len(flat) != 0 {
			t.Errorf("unexpected entries: %v", flat)
		}
	})
}
