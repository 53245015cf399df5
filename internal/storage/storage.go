// ABOUTME: Storage facade over the SQLite preference database
// ABOUTME: Wires the device identity into the per-catalog like stores and selection log
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tastekit/taste/internal/device"
	"github.com/tastekit/taste/internal/models"
	"github.com/tastekit/taste/internal/storage/sqlite"
)

const dbFileName = "taste.db"

// Storage owns the preference database and the device identity
type Storage struct {
	dataDir    string
	deviceID   string
	db         *sqlite.DB
	posts      *sqlite.LikeStore
	recipes    *sqlite.LikeStore
	products   *sqlite.LikeStore
	selections *sqlite.SelectionStore
}

// Open opens the preference store under dataDir, resolving the device
// id first (generating and persisting one on first run).
func Open(dataDir string) (*Storage, error) {
	deviceID, err := device.ID(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving device id: %w", err)
	}

	db, err := sqlite.Open(filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return newStorage(dataDir, deviceID, db), nil
}

// OpenInMemory creates a throwaway store with a random device id (for testing)
func OpenInMemory() (*Storage, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newStorage("", uuid.NewString(), db), nil
}

func newStorage(dataDir, deviceID string, db *sqlite.DB) *Storage {
	return &Storage{
		dataDir:    dataDir,
		deviceID:   deviceID,
		db:         db,
		posts:      sqlite.NewPostLikeStore(db),
		recipes:    sqlite.NewRecipeLikeStore(db),
		products:   sqlite.NewProductLikeStore(db),
		selections: sqlite.NewSelectionStore(db),
	}
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// DeviceID returns this device's stable identifier
func (s *Storage) DeviceID() string {
	return s.deviceID
}

// Likes returns the like store for the given catalog
func (s *Storage) Likes(catalog models.Catalog) *sqlite.LikeStore {
	switch catalog {
	case models.CatalogRecipe:
		return s.recipes
	case models.CatalogProduct:
		return s.products
	default:
		return s.posts
	}
}

// LikedSet returns the user's liked ids for a catalog as a set
func (s *Storage) LikedSet(catalog models.Catalog, userID int) (map[int]bool, error) {
	ids, err := s.Likes(catalog).LikedIDs(userID)
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// RecordSelection appends a login selection for this device
func (s *Storage) RecordSelection(selectedUserID int) error {
	return s.selections.Record(s.deviceID, selectedUserID)
}

// RecommendedUserIDs ranks this device's previously selected accounts
func (s *Storage) RecommendedUserIDs(limit int) ([]int, error) {
	return s.selections.RecommendedUserIDs(s.deviceID, limit)
}

// SelectionHistory returns this device's full selection log, oldest first
func (s *Storage) SelectionHistory() ([]models.UserSelection, error) {
	return s.selections.History(s.deviceID)
}
