// Package servicetest provides an in-memory MoodStore for tests.
package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/AnshRaj112/moodjournal-backend/internal/models"
	"github.com/AnshRaj112/moodjournal-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps entries in a map. Set Err to make every call fail.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]models.MoodEntry
	Err     error
}

var _ services.MoodStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[primitive.ObjectID]models.MoodEntry)}
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Put stores entry as is, assigning an id if it has none.
func (m *MemoryStore) Put(entry models.MoodEntry) models.MoodEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	m.entries[entry.ID] = entry
	return entry
}

func (m *MemoryStore) Insert(_ context.Context, entry *models.MoodEntry) error {
	if m.Err != nil {
		return m.Err
	}
	*entry = m.Put(*entry)
	return nil
}

func (m *MemoryStore) FindAll(_ context.Context) ([]models.MoodEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.MoodEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.MoodEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &e, nil
}

func (m *MemoryStore) Update(_ context.Context, id primitive.ObjectID, fields map[string]string) (*models.MoodEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "mood":
			e.Mood = v
		case "note":
			e.Note = v
		case "date":
			e.Date = v
		}
	}
	m.entries[id] = e
	return &e, nil
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}
