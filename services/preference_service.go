package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MenuMate/models"
)

// PreferenceService reads and writes users' dietary preferences.
type PreferenceService struct {
	db *sql.DB
}

func NewPreferenceService(db *sql.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns nil, nil for an unknown user.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT preferences FROM users WHERE user_id = ?", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}

	var prefs models.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, fmt.Errorf("failed to decode preferences for %s: %w", userID, err)
	}
	return &prefs, nil
}

// Save stores prefs for userID, creating the user if needed.
func (s *PreferenceService) Save(ctx context.Context, userID string, prefs models.Preferences) error {
	encoded, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	query := `
        INSERT INTO users (user_id, preferences, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET preferences = excluded.preferences, updated_at = excluded.updated_at
    `
	if _, err := s.db.ExecContext(ctx, query, userID, string(encoded), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// EnsureDefaults creates userID with the default preferences if it does
// not exist yet, and returns the stored preferences.
func (s *PreferenceService) EnsureDefaults(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil || prefs != nil {
		return prefs, err
	}
	defaults := models.DefaultPreferences()
	if err := s.Save(ctx, userID, defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}
