package profile

import (
	"context"
	"time"
)

// Store defines the interface for profile persistence operations.
// This abstraction allows for different implementations (SQLite, static, mock)
// and enables unit testing without database dependencies.
type Store interface {
	// Load retrieves the profile for a user ID.
	// Implementations may synthesise a default profile on first lookup.
	Load(ctx context.Context, userID string) (*Profile, error)

	// SaveActivity appends an activity record to the user's history.
	SaveActivity(ctx context.Context, userID string, rec ActivityRecord) error

	// SaveFeedback records feedback against a recommendation batch ID.
	SaveFeedback(ctx context.Context, userID, recommendationID string, fb Feedback) error
}

// StaticStore is a deterministic in-memory store used when no database is
// configured. Every unknown user receives the same default preferences.
//
// All methods are safe for concurrent use: Load returns deep copies, and
// writes are discarded (this store has no durable state to protect).
type StaticStore struct{}

// NewStaticStore creates a static placeholder profile store.
func NewStaticStore() *StaticStore {
	return &StaticStore{}
}

// Load returns a deterministic placeholder profile for the user ID.
func (s *StaticStore) Load(_ context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return defaultProfile(userID), nil
}

// SaveActivity is a no-op for the static store.
func (s *StaticStore) SaveActivity(context.Context, string, ActivityRecord) error {
	return nil
}

// SaveFeedback is a no-op for the static store.
func (s *StaticStore) SaveFeedback(context.Context, string, string, Feedback) error {
	return nil
}

// defaultProfile builds the placeholder profile returned when a user has
// no durable record.
func defaultProfile(userID string) *Profile {
	return &Profile{
		ID: userID,
		Preferences: Preferences{
			MusicGenres:  []string{"classique", "jazz", "ambiance"},
			TVCategories: []string{"documentaires", "films", "actualités"},
			StoryTopics:  []string{"aventure", "histoire", "science"},
		},
		ActivityHistory: []ActivityRecord{},
		FeedbackHistory: map[string]Feedback{},
	}
}

// now is indirected for tests.
var now = time.Now
