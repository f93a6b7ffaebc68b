package engine

import (
	"context"
	"fmt"
)

// User interactions as discrete action values, so a host shell can
// drive the wizard through a single dispatch point independent of its
// own event model.
const (
	ACTION_SET_VALUE      = "setValue"
	ACTION_SET_OTHER_TEXT = "setOtherText"
	ACTION_TOGGLE_OPTION  = "toggleOption"
	ACTION_NEXT           = "next"
	ACTION_PREV           = "prev"
	ACTION_SUBMIT         = "submit"
)

type Action struct {
	Type     string `json:"type"`
	FieldKey string `json:"fieldKey,omitempty"`
	Value    string `json:"value,omitempty"`
}

// Apply dispatches one action against the wizard. Validation failures
// are not errors; they surface through ShowValidation and FocusField.
func (w *Wizard) Apply(ctx context.Context, a Action) error {
	switch a.Type {
	case ACTION_SET_VALUE:
		w.SetValue(a.FieldKey, a.Value)
	case ACTION_SET_OTHER_TEXT:
		w.SetOtherText(a.FieldKey, a.Value)
	case ACTION_TOGGLE_OPTION:
		w.ToggleOption(a.FieldKey, a.Value)
	case ACTION_NEXT:
		w.Next()
	case ACTION_PREV:
		w.Prev()
	case ACTION_SUBMIT:
		return w.Submit(ctx)
	default:
		return fmt.Errorf("unknown wizard action: %s", a.Type)
	}
	return nil
}
