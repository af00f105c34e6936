package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/moodjournal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func moodDoc(id primitive.ObjectID, mood, note, date string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "mood", Value: mood},
		{Key: "note", Value: note},
		{Key: "date", Value: date},
	}
}

func TestMongoMoodStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns id", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := &models.MoodEntry{Mood: "happy", Note: "good day", Date: "2024-05-01"}
		require.NoError(mt, store.Insert(ctx, entry))
		assert.False(mt, entry.ID.IsZero())
	})

	mt.Run("insert write error", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		err := store.Insert(ctx, &models.MoodEntry{Mood: "happy"})
		assert.Error(mt, err)
	})

	mt.Run("find all decodes cursor", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		ns := mt.DB.Name() + "." + MoodCollection
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			moodDoc(id1, "happy", "a", "2024-02-01"),
			moodDoc(id2, "sad", "b", "2024-01-01"),
		))

		entries, err := store.FindAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, entries, 2)
		assert.Equal(mt, id1, entries[0].ID)
		assert.Equal(mt, "happy", entries[0].Mood)
		assert.Equal(mt, "2024-01-01", entries[1].Date)
	})

	mt.Run("find all empty", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		ns := mt.DB.Name() + "." + MoodCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		entries, err := store.FindAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, entries)
		assert.Empty(mt, entries)
	})

	mt.Run("find all command error", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad sort",
		}))

		_, err := store.FindAll(ctx)
		assert.Error(mt, err)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		ns := mt.DB.Name() + "." + MoodCollection
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, moodDoc(id, "calm", "", "2024-03-03")))

		entry, err := store.FindByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, entry.ID)
		assert.Equal(mt, "calm", entry.Mood)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		ns := mt.DB.Name() + "." + MoodCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update returns new document", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: moodDoc(id, "happy", "updated", "2024-01-01")},
		})

		entry, err := store.Update(ctx, id, map[string]string{"note": "updated"})
		require.NoError(mt, err)
		assert.Equal(mt, "updated", entry.Note)
		assert.Equal(mt, "happy", entry.Mood)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}})

		_, err := store.Update(ctx, primitive.NewObjectID(), map[string]string{"mood": "x"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})

		assert.NoError(mt, store.Delete(ctx, primitive.NewObjectID()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		assert.ErrorIs(mt, store.Delete(ctx, primitive.NewObjectID()), ErrNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, store.EnsureIndexes(ctx))
	})

	mt.Run("ensure indexes error", func(mt *mtest.T) {
		store := NewMongoMoodStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 85, Name: "IndexOptionsConflict", Message: "conflict",
		}))

		err := store.EnsureIndexes(ctx)
		assert.ErrorContains(mt, err, "create mood indexes")
	})
}
