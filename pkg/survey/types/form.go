package types

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// section keys with special-cased behavior
const (
	SECTION_KEY_GENERAL   = "general"
	SECTION_KEY_DIET      = "diet"
	SECTION_KEY_KNOWLEDGE = "knowledge"
	SECTION_KEY_ST5       = "st5"
	SECTION_KEY_SUMMARY   = "summary"
)

const (
	FIELD_TYPE_RADIO       = "radio"
	FIELD_TYPE_TEXT        = "text"
	FIELD_TYPE_NUMBER      = "number"
	FIELD_TYPE_SELECT      = "select"
	FIELD_TYPE_MULTISELECT = "multiselect"
	FIELD_TYPE_CHECKBOX    = "checkbox"
)

type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug        string             `bson:"slug" json:"slug"`
	Version     int                `bson:"version" json:"version"`
	Title       LocalisedText      `bson:"title,omitempty" json:"title,omitempty"`
	Sections    []Section          `bson:"sections" json:"sections"`
	Published   int64              `bson:"published,omitempty" json:"published,omitempty"`
	Unpublished int64              `bson:"unpublished,omitempty" json:"unpublished,omitempty"`
	Metadata    map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type Section struct {
	Key     string          `bson:"key" json:"key"`
	Title   LocalisedText   `bson:"title,omitempty" json:"title,omitempty"`
	Scoring *SectionScoring `bson:"scoring,omitempty" json:"scoring,omitempty"`
	OrderNo int             `bson:"orderNo,omitempty" json:"orderNo,omitempty"`
	Fields  []Field         `bson:"fields" json:"fields"`
}

type Field struct {
	Key      string        `bson:"key" json:"key"`
	Type     string        `bson:"type" json:"type"`
	Label    LocalisedText `bson:"label,omitempty" json:"label,omitempty"`
	Required bool          `bson:"required" json:"required"`
	Role     string        `bson:"role,omitempty" json:"role,omitempty"`
	Meta     *FieldMeta    `bson:"meta,omitempty" json:"meta,omitempty"`
	OrderNo  int           `bson:"orderNo" json:"orderNo"`
	Options  []Option      `bson:"options,omitempty" json:"options,omitempty"`
}

// FieldMeta carries free-form authoring metadata: scoring-table grouping
// and numeric input bounds.
type FieldMeta struct {
	TableGroup string   `bson:"tableGroup,omitempty" json:"tableGroup,omitempty"`
	Min        *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max        *float64 `bson:"max,omitempty" json:"max,omitempty"`
}

type Option struct {
	Value   string        `bson:"value" json:"value"`
	Label   LocalisedText `bson:"label,omitempty" json:"label,omitempty"`
	Score   *float64      `bson:"score,omitempty" json:"score,omitempty"`
	Role    string        `bson:"role,omitempty" json:"role,omitempty"`
	OrderNo int           `bson:"orderNo" json:"orderNo"`
}

func (f Field) IsMultiValue() bool {
	return f.Type == FIELD_TYPE_CHECKBOX || f.Type == FIELD_TYPE_MULTISELECT
}

// OptionByValue returns the option with the given value token.
func (f Field) OptionByValue(value string) (Option, bool) {
	for _, o := range f.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// OrderSections arranges sections for the wizard: the preferred prefix
// (general, diet, knowledge, st5) first, remaining sections sorted by
// their order number, and a synthetic summary section appended.
func OrderSections(sections []Section) []Section {
	preferred := []string{SECTION_KEY_GENERAL, SECTION_KEY_DIET, SECTION_KEY_KNOWLEDGE, SECTION_KEY_ST5}

	ordered := make([]Section, 0, len(sections)+1)
	picked := map[string]bool{}
	for _, key := range preferred {
		for _, s := range sections {
			if s.Key == key {
				ordered = append(ordered, s)
				picked[key] = true
				break
			}
		}
	}

	rest := make([]Section, 0, len(sections))
	for _, s := range sections {
		if !picked[s.Key] {
			rest = append(rest, s)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].OrderNo < rest[j].OrderNo
	})
	ordered = append(ordered, rest...)

	ordered = append(ordered, Section{
		Key:   SECTION_KEY_SUMMARY,
		Title: LocalisedText{"th": "สรุปผลการประเมิน", "en": "Assessment summary"},
	})
	return ordered
}
