// ABOUTME: Tests for database connection and lifecycle
// ABOUTME: Verifies open, schema creation, reopen, and close

package sqlite

import (
	"path/filepath"
	"testing"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", db.Path())
	}

	// Schema tables should exist
	for _, table := range []string{
		"user_selections",
		"post_likes", "post_affinity",
		"recipe_likes", "recipe_affinity",
		"product_likes", "product_affinity",
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpen_CreatesFileAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taste.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	store := NewPostLikeStore(db)
	if err := store.AddLike(1, 10, []string{"tech"}); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen and verify the like survived
	db, err = Open(path)
	if err != nil {
		t.Fatalf("Open() reopen error = %v", err)
	}
	defer func() { _ = db.Close() }()

	ids, err := NewPostLikeStore(db).LikedIDs(1)
	if err != nil {
		t.Fatalf("LikedIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Errorf("LikedIDs() after reopen = %v, want [10]", ids)
	}
}

func TestClose_NilSafe(t *testing.T) {
	db := &DB{}
	if err := db.Close(); err != nil {
		t.Errorf("Close() on zero DB error = %v", err)
	}
}
