package survey

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

var indexesForSessionsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "sessionID", Value: 1},
		},
		Options: options.Index().SetName("sessionID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "respondentID", Value: 1},
			{Key: "finishedAt", Value: 1},
			{Key: "startedAt", Value: -1},
		},
		Options: options.Index().SetName("respondentID_finishedAt_startedAt_1"),
	},
}

func (dbService *SurveyDBService) createIndexForSessionsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSessions(instanceID).Indexes().CreateMany(ctx, indexesForSessionsCollection)
	return err
}

// EnsureOpenSession returns the newest unfinished session of the
// respondent for the form, creating a fresh one when none exists.
func (dbService *SurveyDBService) EnsureOpenSession(instanceID string, respondentID string, formSlug string) (*surveyTypes.SurveySession, error) {
	if respondentID == "" {
		return nil, errors.New("respondentID must not be empty")
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"respondentID": respondentID,
		"formSlug":     formSlug,
		"finishedAt":   bson.M{"$in": []interface{}{0, nil}},
	}
	opts := options.FindOne().SetSort(bson.M{"startedAt": -1})

	var session surveyTypes.SurveySession
	err := dbService.collectionSessions(instanceID).FindOne(ctx, filter, opts).Decode(&session)
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	session = surveyTypes.SurveySession{
		SessionID:    uuid.NewString(),
		RespondentID: respondentID,
		FormSlug:     formSlug,
		StartedAt:    time.Now().Unix(),
	}
	_, err = dbService.collectionSessions(instanceID).InsertOne(ctx, session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FinishSession closes an open session.
func (dbService *SurveyDBService) FinishSession(instanceID string, sessionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionSessions(instanceID).UpdateOne(ctx,
		bson.M{"sessionID": sessionID},
		bson.M{"$set": bson.M{"finishedAt": time.Now().Unix()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("survey session not found: " + sessionID)
	}
	return nil
}

// GetSessionByID looks a session up by its opaque identifier.
func (dbService *SurveyDBService) GetSessionByID(instanceID string, sessionID string) (*surveyTypes.SurveySession, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var session surveyTypes.SurveySession
	err := dbService.collectionSessions(instanceID).FindOne(ctx, bson.M{"sessionID": sessionID}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
