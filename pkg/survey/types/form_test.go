package types

import "testing"

func TestOrderSections(t *testing.T) {
	t.Run("preferred sections come first, summary is appended", func(t *testing.T) {
		sections := []Section{
			{Key: SECTION_KEY_ST5},
			{Key: "extra", OrderNo: 2},
			{Key: SECTION_KEY_GENERAL},
			{Key: SECTION_KEY_DIET},
		}

		ordered := OrderSections(sections)

		wantKeys := []string{SECTION_KEY_GENERAL, SECTION_KEY_DIET, SECTION_KEY_ST5, "extra", SECTION_KEY_SUMMARY}
		if len(ordered) != len(wantKeys) {
			t.Fatalf("unexpected number of sections: %d", len(ordered))
		}
		for i, key := range wantKeys {
			if ordered[i].Key != key {
				t.Errorf("position %d: got %s, want %s", i, ordered[i].Key, key)
			}
		}
	})

	t.Run("unknown sections are sorted by order number", func(t *testing.T) {
		sections := []Section{
			{Key: "b", OrderNo: 5},
			{Key: "a", OrderNo: 1},
		}

		ordered := OrderSections(sections)
		if ordered[0].Key != "a" || ordered[1].Key != "b" {
			t.Errorf("unexpected order: %s, %s", ordered[0].Key, ordered[1].Key)
		}
	})

	t.Run("summary is always the last section", func(t *testing.T) {
		ordered := OrderSections([]Section{{Key: SECTION_KEY_GENERAL}})
		last := ordered[len(ordered)-1]
		if last.Key != SECTION_KEY_SUMMARY {
			t.Errorf("unexpected last section: %s", last.Key)
		}
	})
}

func TestFieldHelpers(t *testing.T) {
	t.Run("multi value detection", func(t *testing.T) {
		if !(Field{Type: FIELD_TYPE_CHECKBOX}).IsMultiValue() {
			t.Error("checkbox should be multi value")
		}
		if !(Field{Type: FIELD_TYPE_MULTISELECT}).IsMultiValue() {
			t.Error("multiselect should be multi value")
		}
		if (Field{Type: FIELD_TYPE_RADIO}).IsMultiValue() {
			t.Error("radio should not be multi value")
		}
	})

	t.Run("option lookup by value", func(t *testing.T) {
		f := Field{Options: []Option{
			{Value: "a"},
			{Value: "b"},
		}}
		opt, ok := f.OptionByValue("b")
		if !ok || opt.Value != "b" {
			t.Errorf("unexpected lookup result: %+v, %t", opt, ok)
		}
		if _, ok := f.OptionByValue("c"); ok {
			t.Error("lookup of unknown value should fail")
		}
	})
}
