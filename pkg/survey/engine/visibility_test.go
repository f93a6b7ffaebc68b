package engine

import (
	"testing"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

func visibleKeys(w *Wizard) map[string]bool {
	keys := map[string]bool{}
	for _, f := range w.VisibleFields() {
		keys[f.Key] = true
	}
	return keys
}

func TestVisibleFields(t *testing.T) {
	t.Run("specify follow-ups are always suppressed", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		keys := visibleKeys(w)
		if keys["disease_specify"] {
			t.Error("specify detail should be hidden")
		}
		if !keys["disease"] || !keys["age"] {
			t.Errorf("unexpected visible set: %v", keys)
		}
	})

	t.Run("surgery detail follows the trigger answer", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		if visibleKeys(w)["surgery_detail"] {
			t.Error("surgery detail should be hidden without an answer")
		}

		w.SetValue("surgery", "มี")
		if !visibleKeys(w)["surgery_detail"] {
			t.Error("affirmative answer should reveal surgery detail")
		}

		w.SetValue("surgery", "ไม่มี")
		if visibleKeys(w)["surgery_detail"] {
			t.Error("negative answer should hide surgery detail")
		}
	})

	t.Run("non-general sections show every field", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillGeneral(w)
		w.Next()
		if got := len(w.VisibleFields()); got != 5 {
			t.Errorf("unexpected number of visible diet fields: %d", got)
		}
	})

	t.Run("summary has no fields", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillGeneral(w)
		w.Next()
		fillSection(w, "rarely")
		w.Next()
		fillSection(w, "0")
		w.Next()
		if w.CurrentSection().Key != surveyTypes.SECTION_KEY_SUMMARY {
			t.Fatalf("unexpected section: %s", w.CurrentSection().Key)
		}
		if w.VisibleFields() != nil {
			t.Error("summary should expose no fields")
		}
	})
}

func TestHiddenFieldsAndValidation(t *testing.T) {
	t.Run("hidden surgery detail does not block navigation", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillGeneral(w)
		if !w.Next() {
			t.Errorf("section should advance, focus: %s", w.FocusField())
		}
	})

	t.Run("revealed surgery detail is required", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillGeneral(w)
		w.SetValue("surgery", "ไม่มี") // toggle off
		w.SetValue("surgery", "มี")

		if w.Next() {
			t.Fatal("missing surgery detail should block")
		}
		if w.FocusField() != "surgery_detail" {
			t.Errorf("unexpected focus field: %s", w.FocusField())
		}

		w.SetValue("surgery_detail", "ผ่าตัดไส้ติ่ง")
		if !w.Next() {
			t.Errorf("section should advance, focus: %s", w.FocusField())
		}
	})
}

func TestProgress(t *testing.T) {
	t.Run("counts only visible required fields", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		answered, required, pct := w.Progress()
		if answered != 0 || required != 5 || pct != 0 {
			t.Errorf("unexpected progress: %d/%d %d%%", answered, required, pct)
		}

		w.SetValue("age", "30")
		w.SetValue(FIELD_KEY_HEIGHT, "170")
		answered, required, pct = w.Progress()
		if answered != 2 || required != 5 || pct != 40 {
			t.Errorf("unexpected progress: %d/%d %d%%", answered, required, pct)
		}
	})

	t.Run("revealing a field changes the denominator", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetValue("surgery", "มี")
		_, required, _ := w.Progress()
		if required != 6 {
			t.Errorf("unexpected required count: %d", required)
		}
	})

	t.Run("percentage is rounded", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetValue("surgery", "มี")
		// 1 of 6
		_, _, pct := w.Progress()
		if pct != 17 {
			t.Errorf("unexpected percentage: %d", pct)
		}
		w.SetValue("age", "30")
		w.SetValue(FIELD_KEY_HEIGHT, "170")
		// 3 of 6
		_, _, pct = w.Progress()
		if pct != 50 {
			t.Errorf("unexpected percentage: %d", pct)
		}
	})

	t.Run("summary always reports 100", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillGeneral(w)
		w.Next()
		fillSection(w, "rarely")
		w.Next()
		fillSection(w, "0")
		w.Next()
		_, _, pct := w.Progress()
		if pct != 100 {
			t.Errorf("unexpected percentage: %d", pct)
		}
	})
}
