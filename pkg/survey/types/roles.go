package types

import (
	"regexp"
	"strings"
)

// Semantic roles assigned at schema-authoring time. Untagged legacy
// schemas fall back to the text-pattern heuristics below.
const (
	OPTION_ROLE_NONE  = "none"
	OPTION_ROLE_OTHER = "other"

	FIELD_ROLE_EMAIL           = "email"
	FIELD_ROLE_SURGERY_TRIGGER = "surgery_trigger"
	FIELD_ROLE_SURGERY_DETAIL  = "surgery_detail"
	FIELD_ROLE_SPECIFY_DETAIL  = "specify_detail"
)

var (
	noneLabelPattern           = regexp.MustCompile(`(?i)^(ไม่มี|none|no)$`)
	otherLabelPattern          = regexp.MustCompile(`(?i)(อื่นๆ?|other)`)
	emailLabelPattern          = regexp.MustCompile(`(?i)(email|อีเมล)`)
	surgeryTriggerLabelPattern = regexp.MustCompile(`(?i)ประวัติการผ่าตัด|surgical history`)
	surgeryDetailLabelPattern  = regexp.MustCompile(`(?i)ระบุ.*ผ่าตัด|รายละเอียด.*ผ่าตัด`)
	specifyDetailLabelPattern  = regexp.MustCompile(`(?i)^ระบุ\s*\((ยาที่ใช้ประจำ|โรคประจำตัว)\)`)
	affirmativeLabelPattern    = regexp.MustCompile(`(?i)^(มี|yes)$`)
)

// IsNoneRole reports whether the option means "no selection applies";
// it is mutually exclusive with every other option of the same field.
func (o Option) IsNoneRole(locale string) bool {
	if o.Role != "" {
		return o.Role == OPTION_ROLE_NONE
	}
	v := strings.ToLower(strings.TrimSpace(o.Value))
	if v == "none" || v == "no" {
		return true
	}
	return noneLabelPattern.MatchString(strings.TrimSpace(o.Label.Resolve(locale)))
}

// IsOtherRole reports whether the option unlocks the free-text
// follow-up input.
func (o Option) IsOtherRole(locale string) bool {
	if o.Role != "" {
		return o.Role == OPTION_ROLE_OTHER
	}
	if strings.ToLower(strings.TrimSpace(o.Value)) == "other" {
		return true
	}
	return otherLabelPattern.MatchString(o.Label.Resolve(locale))
}

// IsAffirmative reports whether the option's label is a positive
// answer ("has"/"yes"), used for the surgery-history trigger.
func (o Option) IsAffirmative(locale string) bool {
	return affirmativeLabelPattern.MatchString(strings.TrimSpace(o.Label.Resolve(locale)))
}

func (f Field) IsEmailField(locale string) bool {
	if f.Role != "" {
		return f.Role == FIELD_ROLE_EMAIL
	}
	return f.Key == "email" || emailLabelPattern.MatchString(f.Label.Resolve(locale))
}

func (f Field) IsSurgeryTrigger(locale string) bool {
	if f.Role != "" {
		return f.Role == FIELD_ROLE_SURGERY_TRIGGER
	}
	return f.Key == "surgery" || surgeryTriggerLabelPattern.MatchString(f.Label.Resolve(locale))
}

func (f Field) IsSurgeryDetail(locale string) bool {
	if f.Role != "" {
		return f.Role == FIELD_ROLE_SURGERY_DETAIL
	}
	return surgeryDetailLabelPattern.MatchString(f.Label.Resolve(locale))
}

// IsSpecifyDetail marks the "specify (chronic disease)" and "specify
// (regular medication)" follow-ups that never count towards progress.
func (f Field) IsSpecifyDetail(locale string) bool {
	if f.Role != "" {
		return f.Role == FIELD_ROLE_SPECIFY_DETAIL
	}
	return specifyDetailLabelPattern.MatchString(strings.TrimSpace(f.Label.Resolve(locale)))
}
