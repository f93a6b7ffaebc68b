package engine

import (
	"reflect"
	"testing"
)

func TestToggleOption(t *testing.T) {
	t.Run("toggles a plain option in and out", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "ht")
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"ht"}) {
			t.Errorf("unexpected selection: %v", got)
		}
		w.ToggleOption("disease", "ht")
		if got := w.Answers().ValuesOf("disease"); len(got) != 0 {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("selecting none clears everything else", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "ht")
		w.ToggleOption("disease", "dm")
		w.ToggleOption("disease", "none")
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"none"}) {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("other options are inert while none is selected", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "none")
		w.ToggleOption("disease", "ht")
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"none"}) {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("toggling none again deselects it", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "none")
		w.ToggleOption("disease", "none")
		if got := w.Answers().ValuesOf("disease"); len(got) != 0 {
			t.Errorf("unexpected selection: %v", got)
		}
		// field stays answered-empty, usable again afterwards
		w.ToggleOption("disease", "dm")
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"dm"}) {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("deselecting other drops its free text", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "other")
		w.SetOtherText("disease", "ภูมิแพ้")
		if got := w.Answers().Scalar("disease" + OTHER_TEXT_SUFFIX); got != "ภูมิแพ้" {
			t.Fatalf("unexpected sidecar: %s", got)
		}

		w.ToggleOption("disease", "other")
		if _, ok := w.Answers().Get("disease" + OTHER_TEXT_SUFFIX); ok {
			t.Error("sidecar text should be dropped with the other option")
		}
	})

	t.Run("selecting none drops the other free text", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "other")
		w.SetOtherText("disease", "ภูมิแพ้")
		w.ToggleOption("disease", "none")
		if _, ok := w.Answers().Get("disease" + OTHER_TEXT_SUFFIX); ok {
			t.Error("sidecar text should be dropped when none takes over")
		}
	})

	t.Run("ignores unknown and single-value fields", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("no_such_field", "x")
		w.ToggleOption("surgery", "มี")
		if w.Answers().Len() != 0 {
			t.Errorf("unexpected writes: %d entries", w.Answers().Len())
		}
	})
}

func TestSetSelection(t *testing.T) {
	t.Run("none is dropped when anything else is selected", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetSelection("disease", []string{"none", "ht"})
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"ht"}) {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("none alone stays selected", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetSelection("disease", []string{"none"})
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"none"}) {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetSelection("disease", []string{"ht", "ht", "dm"})
		if got := w.Answers().ValuesOf("disease"); !reflect.DeepEqual(got, []string{"ht", "dm"}) {
			t.Errorf("unexpected selection: %v", got)
		}
	})

	t.Run("drops the other free text when other is not part of the selection", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "other")
		w.SetOtherText("disease", "ภูมิแพ้")

		w.SetSelection("disease", []string{"ht"})
		if _, ok := w.Answers().Get("disease" + OTHER_TEXT_SUFFIX); ok {
			t.Error("sidecar text should be dropped with the other option")
		}
	})

	t.Run("keeps the other free text while other stays selected", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "other")
		w.SetOtherText("disease", "ภูมิแพ้")

		w.SetSelection("disease", []string{"other", "ht"})
		if got := w.Answers().Scalar("disease" + OTHER_TEXT_SUFFIX); got != "ภูมิแพ้" {
			t.Errorf("unexpected sidecar: %s", got)
		}
	})

	t.Run("ignores unknown and single-value fields", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetSelection("no_such_field", []string{"x"})
		w.SetSelection("surgery", []string{"มี"})
		if w.Answers().Len() != 0 {
			t.Errorf("unexpected writes: %d entries", w.Answers().Len())
		}
	})
}

func TestSetOtherTextRequiresSelection(t *testing.T) {
	t.Run("text is ignored while other is not selected", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.SetOtherText("disease", "ภูมิแพ้")
		if _, ok := w.Answers().Get("disease" + OTHER_TEXT_SUFFIX); ok {
			t.Error("sidecar text should not be written without the other option")
		}
	})

	t.Run("stale text is removed on a rejected write", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		w.ToggleOption("disease", "other")
		w.SetOtherText("disease", "ภูมิแพ้")

		w.Answers().SetValues("disease", []string{"ht"})
		w.SetOtherText("disease", "updated")
		if _, ok := w.Answers().Get("disease" + OTHER_TEXT_SUFFIX); ok {
			t.Error("sidecar text should be removed when other left the selection")
		}
	})
}
