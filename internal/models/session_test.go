// ABOUTME: Tests for session persistence
// ABOUTME: Verifies save/load round trip and clear behavior

package models

import (
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()

	session := &Session{
		ID:        5,
		Username:  "emilys",
		FirstName: "Emily",
		LastName:  "Johnson",
		Email:     "emily@example.com",
		Token:     "tok123",
		LoginAt:   time.Now().Truncate(time.Second),
	}

	if err := session.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadSession(dir)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSession() returned nil after Save")
	}

	if loaded.ID != 5 || loaded.Username != "emilys" || loaded.Token != "tok123" {
		t.Errorf("LoadSession() = %+v, want saved session", loaded)
	}

	user := loaded.User()
	if user.ID != 5 || user.FirstName != "Emily" {
		t.Errorf("User() = %+v", user)
	}
}

func TestLoadSession_NotLoggedIn(t *testing.T) {
	session, err := LoadSession(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if session != nil {
		t.Errorf("LoadSession() = %+v, want nil for missing file", session)
	}
}

func TestClearSession(t *testing.T) {
	dir := t.TempDir()

	session := &Session{ID: 1, Username: "a"}
	if err := session.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := ClearSession(dir); err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}

	loaded, err := LoadSession(dir)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if loaded != nil {
		t.Error("session should be gone after ClearSession")
	}

	// Clearing twice is fine
	if err := ClearSession(dir); err != nil {
		t.Errorf("ClearSession() on missing file error = %v", err)
	}
}
