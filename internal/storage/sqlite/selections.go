// ABOUTME: Append-only user selection log, keyed by device id
// ABOUTME: Powers the pre-login "recommended accounts" ranking by login frequency
package sqlite

import (
	"fmt"
	"time"

	"github.com/tastekit/taste/internal/models"
)

// SelectionStore persists which account was chosen at each login
type SelectionStore struct {
	db *DB
}

// NewSelectionStore creates a SelectionStore
func NewSelectionStore(db *DB) *SelectionStore {
	return &SelectionStore{db: db}
}

// Record appends a selection row for this device. Rows are never
// updated or deleted.
func (s *SelectionStore) Record(deviceID string, selectedUserID int) error {
	_, err := s.db.Exec(`
		INSERT INTO user_selections (device_id, selected_user_id, timestamp)
		VALUES (?, ?, ?)
	`, deviceID, selectedUserID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("recording selection: %w", err)
	}
	return nil
}

// RecommendedUserIDs returns up to limit user ids ranked by how often
// they were selected on this device. Ties order by most recent
// selection, then by lowest user id, so the result is deterministic.
func (s *SelectionStore) RecommendedUserIDs(deviceID string, limit int) ([]int, error) {
	if deviceID == "" || limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT selected_user_id
		FROM user_selections
		WHERE device_id = ?
		GROUP BY selected_user_id
		ORDER BY COUNT(*) DESC, MAX(timestamp) DESC, selected_user_id ASC
		LIMIT ?
	`, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// History returns every selection recorded for this device, oldest first
func (s *SelectionStore) History(deviceID string) ([]models.UserSelection, error) {
	if deviceID == "" {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT device_id, selected_user_id, timestamp
		FROM user_selections
		WHERE device_id = ?
		ORDER BY id
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("querying selection history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var selections []models.UserSelection
	for rows.Next() {
		var (
			sel   models.UserSelection
			stamp int64
		)
		if err := rows.Scan(&sel.DeviceID, &sel.SelectedUserID, &stamp); err != nil {
			return nil, err
		}
		sel.Timestamp = time.UnixMilli(stamp)
		selections = append(selections, sel)
	}

	return selections, rows.Err()
}
