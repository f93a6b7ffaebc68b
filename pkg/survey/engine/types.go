package engine

import (
	"context"
	"errors"

	"github.com/ppmonster111/Nutritional/pkg/survey/metrics"
	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// session store keys
const (
	SNAPSHOT_KEY = "surveyAnswers"
	FINISHED_KEY = "surveyFinished"
)

// Suffix of the sidecar answer holding the free text of an "other"
// option.
const OTHER_TEXT_SUFFIX = "__other"

// well-known field keys
const (
	FIELD_KEY_HEIGHT = "height_cm"
	FIELD_KEY_WEIGHT = "weight_kg"
)

const DEFAULT_EMAIL_DOMAIN_SUFFIX = "@gmail.com"

var (
	ErrNoSections       = errors.New("form has no sections")
	ErrNotOnLastSection = errors.New("submit is only available on the last section")
	ErrSubmissionFailed = errors.New("submitting survey response failed")
)

// SessionStore is the session-scoped snapshot store the wizard
// persists its answers to. Get returns nil for an absent key.
type SessionStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// SubmissionSink receives the final normalized payload. Delivery is
// at-least-once; the host may upsert keyed by session ID to absorb
// duplicate retries.
type SubmissionSink interface {
	Insert(ctx context.Context, payload SubmissionPayload) error
}

type ComputedMetrics struct {
	BMI       *float64 `bson:"bmi" json:"bmi"`
	BMIStatus string   `bson:"bmi_status" json:"bmi_status"`
	BSA       *float64 `bson:"bsa" json:"bsa"`
	BSAStatus string   `bson:"bsa_status" json:"bsa_status"`
}

// SubmissionPayload is the normalized object handed to the sink. The
// answers map holds every raw answer plus the "_computed" entry.
type SubmissionPayload struct {
	FormID      string                 `bson:"formID,omitempty" json:"formId,omitempty"`
	FormSlug    string                 `bson:"formSlug" json:"formSlug"`
	FormVersion int                    `bson:"formVersion" json:"formVersion"`
	SessionID   string                 `bson:"sessionID,omitempty" json:"sessionId,omitempty"`
	Answers     map[string]interface{} `bson:"answers" json:"answers"`
	Status      string                 `bson:"status" json:"status"`
	SubmittedAt int64                  `bson:"submittedAt" json:"submittedAt"`
}

// Config bundles the collaborators and policies a wizard is
// constructed with.
type Config struct {
	Locale string
	// opaque session identifier used to key the submission
	SessionID string
	// accepted email domain, empty for the default
	EmailDomainSuffix string
	// BMI banding thresholds, nil for the default scheme
	BMIBands []metrics.BMIBand

	Store SessionStore
	Sink  SubmissionSink
}

// GroupSummary is the scored interpretation of one diet habit group.
type GroupSummary struct {
	GroupKey string                `json:"groupKey"`
	Type     string                `json:"type"`
	Score    int                   `json:"score"`
	Band     surveyTypes.ScoreBand `json:"band"`
}

// StressSummary is the scored ST-5 interpretation.
type StressSummary struct {
	Score    int                   `json:"score"`
	Band     surveyTypes.ScoreBand `json:"band"`
	Advisory bool                  `json:"advisory"`
}

// Summary is the final summary view: diet groups, stress level and the
// derived body metrics.
type Summary struct {
	Diet      []GroupSummary    `json:"diet"`
	Stress    *StressSummary    `json:"stress,omitempty"`
	BMI       metrics.BMIResult `json:"bmi"`
	BSA       *float64          `json:"bsa"`
	BSAStatus string            `json:"bsaStatus"`
}
