package metrics

import (
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// GroupScore sums the score contribution of the chosen option of every
// field in the group. Unanswered fields and values that match no
// option contribute zero. Only meaningful for single-valued fields.
func GroupScore(fields []surveyTypes.Field, values map[string]string) float64 {
	total := 0.0
	for _, f := range fields {
		v, ok := values[f.Key]
		if !ok {
			continue
		}
		opt, ok := f.OptionByValue(v)
		if !ok || opt.Score == nil {
			continue
		}
		total += *opt.Score
	}
	return total
}
