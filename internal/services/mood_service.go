package services

import (
	"context"
	"strings"
	"time"

	"github.com/AnshRaj112/moodjournal-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the default date format for new entries: UTC, microsecond
// precision, fixed width so string order matches time order.
const DateLayout = "2006-01-02T15:04:05.000000Z"

// MoodStore is the persistence the mood service needs.
// FindByID, Update and Delete return ErrNotFound when no document matches.
type MoodStore interface {
	Insert(ctx context.Context, entry *models.MoodEntry) error
	FindAll(ctx context.Context) ([]models.MoodEntry, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MoodEntry, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]string) (*models.MoodEntry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MoodService implements the mood resource operations.
type MoodService struct {
	store MoodStore
	now   func() time.Time
}

// NewMoodService creates a MoodService. A nil store puts the service in
// degraded mode where every operation fails with ErrStoreUnavailable.
func NewMoodService(store MoodStore) *MoodService {
	return &MoodService{store: store, now: time.Now}
}

// Create validates and persists a new entry.
func (s *MoodService) Create(ctx context.Context, in models.MoodCreate) (*models.MoodEntry, error) {
	entry := &models.MoodEntry{
		Mood: strings.TrimSpace(in.Mood),
		Note: strings.TrimSpace(in.Note),
		Date: in.Date,
	}
	if entry.Mood == "" {
		return nil, NewValidationError("'mood' is required")
	}
	if entry.Date == "" {
		entry.Date = s.now().UTC().Format(DateLayout)
	}

	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return nil, storeError("insert mood", err)
	}
	return entry, nil
}

// List returns every entry, newest date first.
func (s *MoodService) List(ctx context.Context) ([]models.MoodEntry, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	entries, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storeError("list moods", err)
	}
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	return entries, nil
}

// Get returns a single entry by its hex id.
func (s *MoodService) Get(ctx context.Context, id string) (*models.MoodEntry, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	entry, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError("find mood", err)
	}
	return entry, nil
}

// Update applies the fields present in u and returns the updated entry.
// An empty update is rejected before the id is looked at.
// Unlike Create, an explicitly empty mood is accepted here.
func (s *MoodService) Update(ctx context.Context, id string, u models.MoodUpdate) (*models.MoodEntry, error) {
	fields := make(map[string]string, 3)
	if u.Mood.Set {
		fields["mood"] = strings.TrimSpace(u.Mood.Value)
	}
	if u.Note.Set {
		fields["note"] = strings.TrimSpace(u.Note.Value)
	}
	if u.Date.Set {
		fields["date"] = u.Date.Value
	}
	if len(fields) == 0 {
		return nil, NewValidationError("No fields to update")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	entry, err := s.store.Update(ctx, oid, fields)
	if err != nil {
		return nil, storeError("update mood", err)
	}
	return entry, nil
}

// Delete removes an entry by its hex id.
func (s *MoodService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if s.store == nil {
		return ErrStoreUnavailable
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return storeError("delete mood", err)
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
