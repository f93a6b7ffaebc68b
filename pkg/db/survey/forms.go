package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/ppmonster111/Nutritional/pkg/survey/types"
)

var indexesForFormsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "slug", Value: 1},
			{Key: "unpublished", Value: 1},
			{Key: "published", Value: -1},
		},
		Options: options.Index().SetName("slug_unpublished_published_1"),
	},
	{
		Keys: bson.D{
			{Key: "slug", Value: 1},
			{Key: "version", Value: 1},
		},
		Options: options.Index().SetName("slug_version_1").SetUnique(true),
	},
}

func (dbService *SurveyDBService) createIndexForFormsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionForms(instanceID).Indexes().CreateMany(ctx, indexesForFormsCollection)
	return err
}

// SaveFormVersion publishes a new form version and marks the previous
// current version as unpublished.
func (dbService *SurveyDBService) SaveFormVersion(instanceID string, form *surveyTypes.Form) error {
	now := time.Now().Unix()

	previous, err := dbService.GetCurrentFormVersion(instanceID, form.Slug)
	if err == nil && previous != nil {
		if form.Version == 0 {
			form.Version = previous.Version + 1
		}
		ctx, cancel := dbService.getContext()
		defer cancel()
		_, err := dbService.collectionForms(instanceID).UpdateOne(ctx,
			bson.M{"_id": previous.ID},
			bson.M{"$set": bson.M{"unpublished": now}},
		)
		if err != nil {
			return err
		}
	}

	if form.Version == 0 {
		form.Version = 1
	}
	// always insert as a new document
	form.ID = primitive.NilObjectID
	form.Published = now
	form.Unpublished = 0

	ctx, cancel := dbService.getContext()
	defer cancel()
	_, err = dbService.collectionForms(instanceID).InsertOne(ctx, form)
	return err
}

// GetCurrentFormVersion returns the newest published, not yet
// unpublished form for the slug.
func (dbService *SurveyDBService) GetCurrentFormVersion(instanceID string, slug string) (*surveyTypes.Form, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"slug":        slug,
		"unpublished": bson.M{"$in": []interface{}{0, nil}},
	}
	opts := options.FindOne().SetSort(bson.M{"published": -1})

	var form surveyTypes.Form
	err := dbService.collectionForms(instanceID).FindOne(ctx, filter, opts).Decode(&form)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("no published form found for slug: " + slug)
		}
		return nil, err
	}
	return &form, nil
}

// GetFormVersions lists all versions of a form, newest first, without
// the section definitions.
func (dbService *SurveyDBService) GetFormVersions(instanceID string, slug string) (forms []*surveyTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"slug": slug}
	opts := options.Find().
		SetSort(bson.M{"published": -1}).
		SetProjection(bson.M{"sections": 0})

	cursor, err := dbService.collectionForms(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return forms, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &forms)
	return forms, err
}

// GetFormVersion returns one specific version of a form.
func (dbService *SurveyDBService) GetFormVersion(instanceID string, slug string, version int) (*surveyTypes.Form, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var form surveyTypes.Form
	err := dbService.collectionForms(instanceID).FindOne(ctx, bson.M{
		"slug":    slug,
		"version": version,
	}).Decode(&form)
	if err != nil {
		return nil, err
	}
	return &form, nil
}
