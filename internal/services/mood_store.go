package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/moodjournal-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoodCollection is the collection holding mood entries.
const MoodCollection = "moods"

// MongoMoodStore is the MoodStore backed by MongoDB.
type MongoMoodStore struct {
	col *mongo.Collection
}

// NewMongoMoodStore creates a store over db's "moods" collection.
func NewMongoMoodStore(db *mongo.Database) *MongoMoodStore {
	return &MongoMoodStore{col: db.Collection(MoodCollection)}
}

// EnsureIndexes creates the recent-first index on date and the text index
// over mood and note. Called on startup from main after Mongo has connected.
func (s *MongoMoodStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "mood", Value: "text"},
				{Key: "note", Value: "text"},
			},
			Options: options.Index().SetName("mood_note_text"),
		},
	}

	if _, err := s.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create mood indexes: %w", err)
	}
	return nil
}

func (s *MongoMoodStore) Insert(ctx context.Context, entry *models.MoodEntry) error {
	res, err := s.col.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	entry.ID = oid
	return nil
}

func (s *MongoMoodStore) FindAll(ctx context.Context) ([]models.MoodEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := s.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := make([]models.MoodEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *MongoMoodStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoMoodStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]string) (*models.MoodEntry, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry models.MoodEntry
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoMoodStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
