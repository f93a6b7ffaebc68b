package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// SurveySession is one respondent's questionnaire run. A session stays
// open until the final submission closes it; resuming picks the newest
// open session of the respondent.
type SurveySession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID    string             `bson:"sessionID" json:"sessionId"`
	RespondentID string             `bson:"respondentID" json:"respondentId"`
	FormSlug     string             `bson:"formSlug" json:"formSlug"`
	StartedAt    int64              `bson:"startedAt" json:"startedAt"`
	FinishedAt   int64              `bson:"finishedAt,omitempty" json:"finishedAt,omitempty"`
}

// RespondentProfile holds the identity attributes collected at login.
type RespondentProfile struct {
	ID          string `bson:"_id" json:"id"`
	LineUserID  string `bson:"lineUserID,omitempty" json:"lineUserId,omitempty"`
	DisplayName string `bson:"displayName,omitempty" json:"displayName,omitempty"`
	PictureURL  string `bson:"pictureURL,omitempty" json:"pictureUrl,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	UpdatedAt   int64  `bson:"updatedAt" json:"updatedAt"`
}
