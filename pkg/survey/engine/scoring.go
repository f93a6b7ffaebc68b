package engine

import (
	"sort"

	"github.com/ppmonster111/Nutritional/pkg/survey/metrics"
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// default table-group to score-type mapping of the diet section, used
// when the schema carries no explicit group scoring configuration
var defaultDietGroupTypes = map[string]string{
	"diet31": surveyTypes.SCORE_GROUP_TYPE_SUGAR,
	"diet32": surveyTypes.SCORE_GROUP_TYPE_FAT,
	"diet33": surveyTypes.SCORE_GROUP_TYPE_SODIUM,
}

// GroupFields collects the fields of a section sharing a table-group
// tag, in field order.
func GroupFields(sec surveyTypes.Section, groupKey string) []surveyTypes.Field {
	fields := []surveyTypes.Field{}
	for _, f := range sec.Fields {
		if f.Meta != nil && f.Meta.TableGroup == groupKey {
			fields = append(fields, f)
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].OrderNo < fields[j].OrderNo
	})
	return fields
}

// groupConfigs returns the scoring configuration of the diet section:
// the explicit schema configuration when present, otherwise one entry
// per table-group tag with the built-in bands.
func groupConfigs(sec surveyTypes.Section) []surveyTypes.GroupScoring {
	if sec.Scoring != nil && len(sec.Scoring.Groups) > 0 {
		return sec.Scoring.Groups
	}

	seen := map[string]bool{}
	configs := []surveyTypes.GroupScoring{}
	for _, f := range sec.Fields {
		if f.Meta == nil || f.Meta.TableGroup == "" || seen[f.Meta.TableGroup] {
			continue
		}
		seen[f.Meta.TableGroup] = true
		groupType := defaultDietGroupTypes[f.Meta.TableGroup]
		configs = append(configs, surveyTypes.GroupScoring{
			GroupKey: f.Meta.TableGroup,
			Type:     groupType,
			Bands:    surveyTypes.DefaultDietBands(groupType),
		})
	}
	return configs
}

// DietSummaries computes the per-group scores and interpretation
// bands of the diet section.
func (w *Wizard) DietSummaries() []GroupSummary {
	values := w.answers.ScalarMap()
	summaries := []GroupSummary{}
	for _, s := range w.ordered {
		if s.Key != surveyTypes.SECTION_KEY_DIET {
			continue
		}
		for _, cfg := range groupConfigs(s) {
			score := int(metrics.GroupScore(GroupFields(s, cfg.GroupKey), values))
			band, _ := surveyTypes.BandFor(cfg.Bands, score)
			summaries = append(summaries, GroupSummary{
				GroupKey: cfg.GroupKey,
				Type:     cfg.Type,
				Score:    score,
				Band:     band,
			})
		}
	}
	return summaries
}

// StressSummary computes the ST-5 total and its interpretation tier.
// Nil when the form has no stress section.
func (w *Wizard) StressSummary() *StressSummary {
	for _, s := range w.ordered {
		if s.Key != surveyTypes.SECTION_KEY_ST5 {
			continue
		}
		scoring := s.Scoring
		if scoring == nil || len(scoring.Ranges) == 0 {
			scoring = surveyTypes.DefaultStressScoring()
		}
		score := int(metrics.GroupScore(s.Fields, w.answers.ScalarMap()))
		band, _ := surveyTypes.BandFor(scoring.Ranges, score)
		return &StressSummary{
			Score:    score,
			Band:     band,
			Advisory: scoring.AdvisoryAt != nil && score >= *scoring.AdvisoryAt,
		}
	}
	return nil
}

// BodyMetrics computes BMI and BSA from the height/weight answers.
func (w *Wizard) BodyMetrics() (metrics.BMIResult, *float64, string) {
	height, _ := w.answers.Number(FIELD_KEY_HEIGHT)
	weight, _ := w.answers.Number(FIELD_KEY_WEIGHT)
	bmi := metrics.BMIWithBands(height, weight, w.bmiBands)
	bsa := metrics.BSAMosteller(height, weight)
	return bmi, bsa, metrics.BSAStatus(bsa)
}

// Summary assembles the final summary view.
func (w *Wizard) Summary() Summary {
	bmi, bsa, bsaStatus := w.BodyMetrics()
	return Summary{
		Diet:      w.DietSummaries(),
		Stress:    w.StressSummary(),
		BMI:       bmi,
		BSA:       bsa,
		BSAStatus: bsaStatus,
	}
}
