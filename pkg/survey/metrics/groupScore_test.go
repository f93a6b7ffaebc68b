package metrics

import (
	"testing"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

func scoredField(key string) surveyTypes.Field {
	score := func(v float64) *float64 { return &v }
	return surveyTypes.Field{
		Key:  key,
		Type: surveyTypes.FIELD_TYPE_RADIO,
		Options: []surveyTypes.Option{
			{Value: "every-day", Score: score(3)},
			{Value: "3-4-week", Score: score(2)},
			{Value: "rarely", Score: score(1)},
		},
	}
}

func TestGroupScore(t *testing.T) {
	fields := []surveyTypes.Field{scoredField("q1"), scoredField("q2"), scoredField("q3")}

	t.Run("sums the chosen option scores", func(t *testing.T) {
		values := map[string]string{
			"q1": "every-day",
			"q2": "rarely",
			"q3": "3-4-week",
		}
		if got := GroupScore(fields, values); got != 6 {
			t.Errorf("unexpected score: %v", got)
		}
	})

	t.Run("unanswered fields contribute zero", func(t *testing.T) {
		values := map[string]string{"q1": "every-day"}
		if got := GroupScore(fields, values); got != 3 {
			t.Errorf("unexpected score: %v", got)
		}
	})

	t.Run("values matching no option contribute zero", func(t *testing.T) {
		values := map[string]string{"q1": "never-heard-of-it"}
		if got := GroupScore(fields, values); got != 0 {
			t.Errorf("unexpected score: %v", got)
		}
	})

	t.Run("options without score are skipped", func(t *testing.T) {
		f := surveyTypes.Field{
			Key:     "q1",
			Options: []surveyTypes.Option{{Value: "a"}},
		}
		if got := GroupScore([]surveyTypes.Field{f}, map[string]string{"q1": "a"}); got != 0 {
			t.Errorf("unexpected score: %v", got)
		}
	})
}
