package engine

import (
	"testing"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

func TestDietSummaries(t *testing.T) {
	t.Run("best and worst case scores", func(t *testing.T) {
		cases := []struct {
			answer   string
			score    int
			severity string
		}{
			{"rarely", 5, surveyTypes.SEVERITY_GREEN},
			{"3-4-week", 10, surveyTypes.SEVERITY_ORANGE},
			{"every-day", 15, surveyTypes.SEVERITY_RED},
		}
		for _, c := range cases {
			t.Run(c.answer, func(t *testing.T) {
				w := newTestWizard(t, nil, nil)
				for _, key := range []string{"diet3_1", "diet3_2", "diet3_3", "diet3_4", "diet3_5"} {
					w.SetValue(key, c.answer)
				}

				summaries := w.DietSummaries()
				if len(summaries) != 1 {
					t.Fatalf("unexpected number of groups: %d", len(summaries))
				}
				got := summaries[0]
				if got.GroupKey != "diet31" || got.Type != surveyTypes.SCORE_GROUP_TYPE_SUGAR {
					t.Errorf("unexpected group: %+v", got)
				}
				if got.Score != c.score {
					t.Errorf("score: got %d, want %d", got.Score, c.score)
				}
				if got.Band.Severity != c.severity {
					t.Errorf("severity: got %s, want %s", got.Band.Severity, c.severity)
				}
			})
		}
	})

	t.Run("explicit schema scoring overrides the defaults", func(t *testing.T) {
		form := testForm()
		form.Sections[1].Scoring = &surveyTypes.SectionScoring{
			Groups: []surveyTypes.GroupScoring{
				{
					GroupKey: "diet31",
					Type:     surveyTypes.SCORE_GROUP_TYPE_SODIUM,
					Bands: []surveyTypes.ScoreBand{
						{Min: 0, Max: 15, Severity: surveyTypes.SEVERITY_GREEN},
					},
				},
			},
		}
		w, err := NewWizard(form, Config{})
		if err != nil {
			t.Fatal(err)
		}
		for _, key := range []string{"diet3_1", "diet3_2", "diet3_3", "diet3_4", "diet3_5"} {
			w.SetValue(key, "every-day")
		}

		summaries := w.DietSummaries()
		if len(summaries) != 1 {
			t.Fatalf("unexpected number of groups: %d", len(summaries))
		}
		if summaries[0].Type != surveyTypes.SCORE_GROUP_TYPE_SODIUM {
			t.Errorf("unexpected group type: %s", summaries[0].Type)
		}
		if summaries[0].Band.Severity != surveyTypes.SEVERITY_GREEN {
			t.Errorf("unexpected severity: %s", summaries[0].Band.Severity)
		}
	})
}

func TestStressSummary(t *testing.T) {
	fillStress := func(w *Wizard, value string) {
		for _, key := range []string{"st5_1", "st5_2", "st5_3", "st5_4", "st5_5"} {
			w.SetValue(key, value)
		}
	}

	t.Run("low score without advisory", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillStress(w, "0")

		got := w.StressSummary()
		if got == nil {
			t.Fatal("expected a stress summary")
		}
		if got.Score != 0 || got.Band.Severity != surveyTypes.SEVERITY_GREEN || got.Advisory {
			t.Errorf("unexpected summary: %+v", got)
		}
	})

	t.Run("severe score raises the advisory", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillStress(w, "3")

		got := w.StressSummary()
		if got == nil {
			t.Fatal("expected a stress summary")
		}
		if got.Score != 15 || got.Band.Severity != surveyTypes.SEVERITY_RED || !got.Advisory {
			t.Errorf("unexpected summary: %+v", got)
		}
	})

	t.Run("advisory starts exactly at the threshold", func(t *testing.T) {
		w := newTestWizard(t, nil, nil)
		fillStress(w, "2")
		if got := w.StressSummary(); got.Score != 10 || !got.Advisory {
			t.Errorf("unexpected summary: %+v", got)
		}
	})

	t.Run("nil without a stress section", func(t *testing.T) {
		form := testForm()
		form.Sections = form.Sections[:2]
		w, err := NewWizard(form, Config{})
		if err != nil {
			t.Fatal(err)
		}
		if got := w.StressSummary(); got != nil {
			t.Errorf("unexpected summary: %+v", got)
		}
	})
}

func TestBodyMetricsFromAnswers(t *testing.T) {
	w := newTestWizard(t, nil, nil)

	t.Run("empty without height and weight", func(t *testing.T) {
		bmi, bsa, bsaStatus := w.BodyMetrics()
		if bmi.Value != nil || bsa != nil || bsaStatus != "" {
			t.Errorf("unexpected metrics: %+v, %v, %s", bmi, bsa, bsaStatus)
		}
	})

	t.Run("computed from the number answers", func(t *testing.T) {
		w.SetValue(FIELD_KEY_HEIGHT, "170")
		w.SetValue(FIELD_KEY_WEIGHT, "65")

		bmi, bsa, bsaStatus := w.BodyMetrics()
		if bmi.Value == nil || *bmi.Value != 22.5 || bmi.Status != "normal" {
			t.Errorf("unexpected BMI: %+v", bmi)
		}
		if bsa == nil || *bsa != 1.75 || bsaStatus != "normal" {
			t.Errorf("unexpected BSA: %v, %s", bsa, bsaStatus)
		}
	})
}
