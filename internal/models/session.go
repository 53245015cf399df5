// ABOUTME: Session represents the logged-in identity for this device
// ABOUTME: Stored as JSON in the data directory, gates the protected commands
package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const sessionFileName = "session.json"

// Session represents the logged-in user and token
type Session struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	Token     string    `json:"token,omitempty"`
	LoginAt   time.Time `json:"login_at"`
}

// User returns the session's identity as a User
func (s *Session) User() User {
	return User{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Username:  s.Username,
		Email:     s.Email,
		Image:     s.Image,
	}
}

// LoadSession loads the saved session from the data directory.
// Returns nil without error when no session exists (not logged in).
func LoadSession(dataDir string) (*Session, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, sessionFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Save writes the session to the data directory
func (s *Session) Save(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Token included, keep it out of other users' reach
	return os.WriteFile(filepath.Join(dataDir, sessionFileName), data, 0600)
}

// ClearSession removes the saved session, if any
func ClearSession(dataDir string) error {
	err := os.Remove(filepath.Join(dataDir, sessionFileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
