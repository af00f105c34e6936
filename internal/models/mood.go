package models

import (
	"bytes"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodEntry is a single mood journal entry as stored in the "moods" collection.
type MoodEntry struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	Mood string `bson:"mood" json:"mood"`
	Note string `bson:"note" json:"note"`

	// Date is opaque text. Entries created without one get a UTC ISO-8601 timestamp.
	Date string `bson:"date" json:"date"`
}

// MoodResponse is the wire shape of a MoodEntry.
type MoodResponse struct {
	ID   string `json:"id"`
	Mood string `json:"mood"`
	Note string `json:"note"`
	Date string `json:"date"`
}

// Response renders the entry with a hex string id.
func (m MoodEntry) Response() MoodResponse {
	return MoodResponse{
		ID:   m.ID.Hex(),
		Mood: m.Mood,
		Note: m.Note,
		Date: m.Date,
	}
}

// MoodCreate is the body of POST /api/moods
type MoodCreate struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
	Date string `json:"date"`
}

// OptionalString remembers whether its key was present in a JSON object.
// A JSON null counts as present with an empty value.
type OptionalString struct {
	Value string
	Set   bool
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// MoodUpdate is the body of PUT /api/moods/{id}. Only keys present in the
// request are applied.
type MoodUpdate struct {
	Mood OptionalString `json:"mood"`
	Note OptionalString `json:"note"`
	Date OptionalString `json:"date"`
}

// IsEmpty reports whether no recognized field was supplied.
func (u MoodUpdate) IsEmpty() bool {
	return !u.Mood.Set && !u.Note.Set && !u.Date.Set
}
