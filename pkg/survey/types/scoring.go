package types

// diet scoring group types
const (
	SCORE_GROUP_TYPE_SUGAR  = "sugar"
	SCORE_GROUP_TYPE_FAT    = "fat"
	SCORE_GROUP_TYPE_SODIUM = "sodium"
)

// severity classes attached to score bands
const (
	SEVERITY_GREEN  = "green"
	SEVERITY_YELLOW = "yellow"
	SEVERITY_ORANGE = "orange"
	SEVERITY_RED    = "red"
)

// ScoreBand is one interpretation tier: an inclusive score range with
// its label, advisory message and severity class.
type ScoreBand struct {
	Min      int           `bson:"min" json:"min"`
	Max      int           `bson:"max" json:"max"`
	Label    LocalisedText `bson:"label,omitempty" json:"label,omitempty"`
	Message  LocalisedText `bson:"message,omitempty" json:"message,omitempty"`
	Severity string        `bson:"severity,omitempty" json:"severity,omitempty"`
}

// GroupScoring bands the summed score of the fields sharing a
// table-group tag.
type GroupScoring struct {
	GroupKey string      `bson:"groupKey" json:"groupKey"`
	Type     string      `bson:"type" json:"type"`
	Bands    []ScoreBand `bson:"bands" json:"bands"`
}

// SectionScoring is the optional scoring configuration of a section:
// either bands over the section total (ST-5) or per-group bands (diet).
// AdvisoryAt marks the score from which a mandatory advisory is shown.
type SectionScoring struct {
	Ranges     []ScoreBand    `bson:"ranges,omitempty" json:"ranges,omitempty"`
	AdvisoryAt *int           `bson:"advisoryAt,omitempty" json:"advisoryAt,omitempty"`
	Groups     []GroupScoring `bson:"groups,omitempty" json:"groups,omitempty"`
}

// BandFor returns the band containing score, if any.
func BandFor(bands []ScoreBand, score int) (ScoreBand, bool) {
	for _, b := range bands {
		if score >= b.Min && score <= b.Max {
			return b, true
		}
	}
	return ScoreBand{}, false
}

// DefaultDietBands returns the built-in interpretation tiers for a
// 5-item, 1-3 point diet habit group (score range 5-15).
func DefaultDietBands(groupType string) []ScoreBand {
	messages := map[string][4]LocalisedText{
		SCORE_GROUP_TYPE_SUGAR: {
			{"th": "ยินดีด้วย คุณบริโภคน้ำตาลในปริมาณที่พอเหมาะ", "en": "Well done, your sugar intake is moderate"},
			{"th": "คุณมีความเสี่ยงปานกลางในแง่ของพฤติกรรมการบริโภคน้ำตาล", "en": "Your sugar consumption habits carry a moderate risk"},
			{"th": "คุณมีความเสี่ยงสูงในแง่ของพฤติกรรมการบริโภคน้ำตาล", "en": "Your sugar consumption habits carry a high risk"},
			{"th": "รู้ตัวบ้างไหม? ว่าคุณมีความเสี่ยงสูงมาก กับการได้รับน้ำตาลเกิน", "en": "You are at very high risk of excess sugar intake"},
		},
		SCORE_GROUP_TYPE_FAT: {
			{"th": "คุณมีความเสี่ยงน้อยในการได้รับผลเสียจากการบริโภคไขมันไม่เหมาะสม", "en": "You are at low risk from unsuitable fat consumption"},
			{"th": "คุณมีความเสี่ยงปานกลางในการเลือกบริโภคไขมัน", "en": "Your fat choices carry a moderate risk"},
			{"th": "คุณมีความเสี่ยงสูงในการเลือกบริโภคไขมัน", "en": "Your fat choices carry a high risk"},
			{"th": "คุณมีพฤติกรรมการบริโภคไขมันที่อันตรายต่อชีวิตคุณมาก", "en": "Your fat consumption habits are dangerous to your health"},
		},
		SCORE_GROUP_TYPE_SODIUM: {
			{"th": "ยินดีด้วยคุณได้รับโซเดียมในปริมาณที่น้อย ทำดีแล้วนะ", "en": "Well done, your sodium intake is low"},
			{"th": "คุณได้รับโซเดียมในระดับปานกลาง ยังถือว่าไม่มีอันตรายอะไรมากต่อสุขภาพ", "en": "Your sodium intake is moderate, not yet harmful"},
			{"th": "คุณได้รับโซเดียมในปริมาณสูงแน่ๆ ถึงเวลาตระหนักถึงพฤติกรรมการบริโภคได้แล้ว", "en": "Your sodium intake is high, time to reconsider your habits"},
			{"th": "คุณได้รับโซเดียมสูงมากกก แนะนำให้ปรับเปลี่ยนพฤติกรรมการบริโภคโดยด่วน", "en": "Your sodium intake is very high, change your habits urgently"},
		},
	}

	msgs, ok := messages[groupType]
	if !ok {
		msgs = [4]LocalisedText{}
	}

	return []ScoreBand{
		{Min: 5, Max: 5, Label: LocalisedText{"th": "ความเสี่ยงน้อย", "en": "Low risk"}, Message: msgs[0], Severity: SEVERITY_GREEN},
		{Min: 6, Max: 9, Label: LocalisedText{"th": "ความเสี่ยงปานกลาง", "en": "Moderate risk"}, Message: msgs[1], Severity: SEVERITY_YELLOW},
		{Min: 10, Max: 13, Label: LocalisedText{"th": "ความเสี่ยงสูง", "en": "High risk"}, Message: msgs[2], Severity: SEVERITY_ORANGE},
		{Min: 14, Max: 15, Label: LocalisedText{"th": "ความเสี่ยงสูงมาก", "en": "Very high risk"}, Message: msgs[3], Severity: SEVERITY_RED},
	}
}

// DefaultStressScoring returns the built-in ST-5 interpretation
// (five 0-3 Likert items, score range 0-15, advisory from 10).
func DefaultStressScoring() *SectionScoring {
	advisoryAt := 10
	return &SectionScoring{
		Ranges: []ScoreBand{
			{Min: 0, Max: 4, Label: LocalisedText{"th": "ความเครียดน้อย", "en": "Low stress"}, Severity: SEVERITY_GREEN},
			{Min: 5, Max: 7, Label: LocalisedText{"th": "ความเครียดปานกลาง", "en": "Moderate stress"}, Severity: SEVERITY_YELLOW},
			{Min: 8, Max: 9, Label: LocalisedText{"th": "ความเครียดมาก", "en": "High stress"}, Severity: SEVERITY_ORANGE},
			{Min: 10, Max: 15, Label: LocalisedText{"th": "ความเครียดมากที่สุด", "en": "Severe stress"}, Severity: SEVERITY_RED},
		},
		AdvisoryAt: &advisoryAt,
	}
}
