package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteStore implements Store using SQLite.
//
// Preferences are stored as a JSON column; activity and feedback records
// live in their own tables so history grows without rewriting the profile
// row. A default profile row is created on first lookup for a user ID.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed profile store.
// The db parameter should be an open SQLite connection with migrations applied.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the profile for a user ID, creating a default row on
// first lookup.
func (s *SQLiteStore) Load(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	p, err := s.getProfile(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		p = defaultProfile(userID)
		if insertErr := s.insertProfile(ctx, p); insertErr != nil {
			return nil, insertErr
		}
	} else if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	if err := s.loadActivityHistory(ctx, p); err != nil {
		return nil, err
	}
	if err := s.loadFeedbackHistory(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// SaveActivity appends an activity record to the user's history.
func (s *SQLiteStore) SaveActivity(ctx context.Context, userID string, rec ActivityRecord) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_history (user_id, activity, confidence, observed_at)
		VALUES (?, ?, ?, ?)`,
		userID, rec.Activity, rec.Confidence, rec.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting activity record: %w", err)
	}
	return nil
}

// SaveFeedback records feedback against a recommendation batch ID.
// An existing record for the same batch is replaced.
func (s *SQLiteStore) SaveFeedback(ctx context.Context, userID, recommendationID string, fb Feedback) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback_history (user_id, recommendation_id, accepted, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, recommendation_id) DO UPDATE SET
			accepted = excluded.accepted,
			comment = excluded.comment,
			created_at = excluded.created_at`,
		userID, recommendationID, fb.Accepted, fb.Comment, fb.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting feedback record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) getProfile(ctx context.Context, userID string) (*Profile, error) {
	var prefsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT preferences FROM profiles WHERE user_id = ?`, userID,
	).Scan(&prefsJSON)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		ID:              userID,
		ActivityHistory: []ActivityRecord{},
		FeedbackHistory: map[string]Feedback{},
	}
	if unmarshalErr := json.Unmarshal([]byte(prefsJSON), &p.Preferences); unmarshalErr != nil {
		return nil, fmt.Errorf("decoding preferences: %w", unmarshalErr)
	}
	return p, nil
}

func (s *SQLiteStore) insertProfile(ctx context.Context, p *Profile) error {
	prefsJSON, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, preferences, created_at)
		VALUES (?, ?, ?)`,
		p.ID, string(prefsJSON), now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadActivityHistory(ctx context.Context, p *Profile) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT activity, confidence, observed_at
		FROM activity_history
		WHERE user_id = ?
		ORDER BY observed_at, id`, p.ID)
	if err != nil {
		return fmt.Errorf("querying activity history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	for rows.Next() {
		var rec ActivityRecord
		if scanErr := rows.Scan(&rec.Activity, &rec.Confidence, &rec.Timestamp); scanErr != nil {
			return fmt.Errorf("scanning activity record: %w", scanErr)
		}
		p.ActivityHistory = append(p.ActivityHistory, rec)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadFeedbackHistory(ctx context.Context, p *Profile) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT recommendation_id, accepted, comment, created_at
		FROM feedback_history
		WHERE user_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("querying feedback history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	for rows.Next() {
		var id string
		var fb Feedback
		if scanErr := rows.Scan(&id, &fb.Accepted, &fb.Comment, &fb.Timestamp); scanErr != nil {
			return fmt.Errorf("scanning feedback record: %w", scanErr)
		}
		p.FeedbackHistory[id] = fb
	}
	return rows.Err()
}
