package survey

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppmonster111/Nutritional/pkg/survey/engine"
)

// Submission is one stored survey result.
type Submission struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RespondentID             string             `bson:"respondentID,omitempty" json:"respondentId,omitempty"`
	engine.SubmissionPayload `bson:",inline"`
}

var indexesForSubmissionsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "sessionID", Value: 1},
		},
		Options: options.Index().SetName("sessionID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "formSlug", Value: 1},
			{Key: "submittedAt", Value: -1},
		},
		Options: options.Index().SetName("formSlug_submittedAt_1"),
	},
}

func (dbService *SurveyDBService) createIndexForSubmissionsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSubmissions(instanceID).Indexes().CreateMany(ctx, indexesForSubmissionsCollection)
	return err
}

// UpsertSubmission stores the payload keyed by its session ID, so
// user-triggered retries of the same session overwrite rather than
// duplicate.
func (dbService *SurveyDBService) UpsertSubmission(instanceID string, respondentID string, payload engine.SubmissionPayload) error {
	if payload.SessionID == "" {
		return errors.New("submission payload without session ID")
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"sessionID": payload.SessionID}
	update := bson.M{"$set": Submission{
		RespondentID:      respondentID,
		SubmissionPayload: payload,
	}}
	_, err := dbService.collectionSubmissions(instanceID).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetSubmissionBySessionID returns the stored submission of a session.
func (dbService *SurveyDBService) GetSubmissionBySessionID(instanceID string, sessionID string) (*Submission, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var submission Submission
	err := dbService.collectionSubmissions(instanceID).FindOne(ctx, bson.M{"sessionID": sessionID}).Decode(&submission)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetSubmissions returns paginated submissions by query.
func (dbService *SurveyDBService) GetSubmissions(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (submissions []Submission, paginationInfo *PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.GetSubmissionsCount(instanceID, filter)
	if err != nil {
		return submissions, nil, err
	}

	paginationInfo = prepPaginationInfos(totalCount, page, limit)

	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(paginationInfo.PageSize)
	cursor, err := dbService.collectionSubmissions(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return submissions, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &submissions)
	if err != nil {
		return submissions, nil, err
	}

	return submissions, paginationInfo, nil
}

// GetSubmissionsCount returns the submission count by query.
func (dbService *SurveyDBService) GetSubmissionsCount(instanceID string, filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionSubmissions(instanceID).CountDocuments(ctx, filter)
}
