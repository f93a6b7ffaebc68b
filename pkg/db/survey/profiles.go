package survey

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

// UpsertProfile stores the respondent's identity attributes keyed by
// the opaque respondent ID.
func (dbService *SurveyDBService) UpsertProfile(instanceID string, profile surveyTypes.RespondentProfile) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	profile.UpdatedAt = time.Now().Unix()

	filter := bson.M{"_id": profile.ID}
	update := bson.M{"$set": profile}
	_, err := dbService.collectionProfiles(instanceID).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetProfile returns the stored profile of a respondent.
func (dbService *SurveyDBService) GetProfile(instanceID string, respondentID string) (*surveyTypes.RespondentProfile, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var profile surveyTypes.RespondentProfile
	err := dbService.collectionProfiles(instanceID).FindOne(ctx, bson.M{"_id": respondentID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
