package survey

import (
	"context"
	"log/slog"
	"time"

	"github.com/ppmonster111/Nutritional/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_FORMS       = "forms"
	COLLECTION_NAME_SUBMISSIONS = "submissions"
	COLLECTION_NAME_SESSIONS    = "surveySessions"
	COLLECTION_NAME_SNAPSHOTS   = "sessionSnapshots"
	COLLECTION_NAME_PROFILES    = "profiles"
)

// Wizard snapshots are session scoped, stale ones expire on their own.
const REMOVE_SNAPSHOT_AFTER = 60 * 60 * 24 * 2 // 2 days

type SurveyDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewSurveyDBService(configs db.DBConfig) (*SurveyDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	surveyDBSc := &SurveyDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := surveyDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for survey DB", slog.String("error", err.Error()))
		}
	}

	return surveyDBSc, nil
}

func (dbService *SurveyDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_surveyDB"
}

func (dbService *SurveyDBService) collectionForms(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_FORMS)
}

func (dbService *SurveyDBService) collectionSubmissions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SUBMISSIONS)
}

func (dbService *SurveyDBService) collectionSessions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SESSIONS)
}

func (dbService *SurveyDBService) collectionSnapshots(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SNAPSHOTS)
}

func (dbService *SurveyDBService) collectionProfiles(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_PROFILES)
}

func (dbService *SurveyDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *SurveyDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for survey DB")
	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		if err := dbService.ensureSnapshotIndexes(ctx, instanceID); err != nil {
			slog.Error("Error creating index for session snapshots", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}

		if err := dbService.createIndexForFormsCollection(instanceID); err != nil {
			slog.Error("Error creating index for forms", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
		if err := dbService.createIndexForSubmissionsCollection(instanceID); err != nil {
			slog.Error("Error creating index for submissions", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
		if err := dbService.createIndexForSessionsCollection(instanceID); err != nil {
			slog.Error("Error creating index for survey sessions", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
	}
	return nil
}

// ensureSnapshotIndexes creates the lookup index and the TTL index for
// the snapshot collection. A TTL index with a different expiry cannot
// be changed in place, so an outdated one is dropped first.
func (dbService *SurveyDBService) ensureSnapshotIndexes(ctx context.Context, instanceID string) error {
	collection := dbService.collectionSnapshots(instanceID)

	existing, err := db.ListCollectionIndexes(ctx, collection)
	if err != nil {
		return err
	}
	for _, index := range existing {
		name, _ := index["name"].(string)
		if name != "updatedAt_ttl" {
			continue
		}
		if expiry, ok := index["expireAfterSeconds"].(int32); !ok || expiry != REMOVE_SNAPSHOT_AFTER {
			slog.Info("Dropping outdated snapshot TTL index", slog.String("instanceID", instanceID))
			if _, err := collection.Indexes().DropOne(ctx, name); err != nil {
				return err
			}
		}
	}

	_, err = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sessionID", Value: 1},
				{Key: "key", Value: 1},
			},
			Options: options.Index().SetName("sessionID_key").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updatedAt", Value: 1}},
			Options: options.Index().SetName("updatedAt_ttl").SetExpireAfterSeconds(REMOVE_SNAPSHOT_AFTER),
		},
	})
	return err
}
