package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sessionSnapshot struct {
	SessionID string    `bson:"sessionID"`
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// SessionSnapshotStore is the Mongo-backed snapshot store of one
// wizard session, satisfying the engine's SessionStore contract.
// Entries expire through the TTL index, so snapshots never outlive the
// session by much.
type SessionSnapshotStore struct {
	dbService  *SurveyDBService
	instanceID string
	sessionID  string
}

func (dbService *SurveyDBService) SnapshotStoreForSession(instanceID string, sessionID string) *SessionSnapshotStore {
	return &SessionSnapshotStore{
		dbService:  dbService,
		instanceID: instanceID,
		sessionID:  sessionID,
	}
}

func (s *SessionSnapshotStore) Get(key string) ([]byte, error) {
	ctx, cancel := s.dbService.getContext()
	defer cancel()

	var snapshot sessionSnapshot
	err := s.dbService.collectionSnapshots(s.instanceID).FindOne(ctx, bson.M{
		"sessionID": s.sessionID,
		"key":       key,
	}).Decode(&snapshot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot.Value, nil
}

func (s *SessionSnapshotStore) Set(key string, value []byte) error {
	ctx, cancel := s.dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": s.sessionID,
		"key":       key,
	}
	update := bson.M{"$set": sessionSnapshot{
		SessionID: s.sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}}
	_, err := s.dbService.collectionSnapshots(s.instanceID).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (s *SessionSnapshotStore) Remove(key string) error {
	ctx, cancel := s.dbService.getContext()
	defer cancel()

	_, err := s.dbService.collectionSnapshots(s.instanceID).DeleteOne(ctx, bson.M{
		"sessionID": s.sessionID,
		"key":       key,
	})
	return err
}
