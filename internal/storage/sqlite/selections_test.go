// ABOUTME: Tests for the user selection log
// ABOUTME: Verifies append-only recording and frequency-ranked recommendations

package sqlite

import (
	"reflect"
	"testing"
)

func TestRecommendedUserIDs_EmptyDevice(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSelectionStore(db)

	ids, err := store.RecommendedUserIDs("device-a", 3)
	if err != nil {
		t.Fatalf("RecommendedUserIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("RecommendedUserIDs() = %v, want empty for fresh device", ids)
	}
}

func TestRecommendedUserIDs_RankedByFrequency(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSelectionStore(db)

	for _, userID := range []int{5, 5, 3, 5, 3} {
		if err := store.Record("device-a", userID); err != nil {
			t.Fatalf("Record(%d) error = %v", userID, err)
		}
	}

	ids, err := store.RecommendedUserIDs("device-a", 3)
	if err != nil {
		t.Fatalf("RecommendedUserIDs() error = %v", err)
	}
	if !reflect.DeepEqual(ids, []int{5, 3}) {
		t.Errorf("RecommendedUserIDs() = %v, want [5 3]", ids)
	}
}

func TestRecommendedUserIDs_LimitApplied(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSelectionStore(db)

	for userID := 1; userID <= 5; userID++ {
		if err := store.Record("device-a", userID); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	ids, err := store.RecommendedUserIDs("device-a", 3)
	if err != nil {
		t.Fatalf("RecommendedUserIDs() error = %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("len(RecommendedUserIDs()) = %d, want 3", len(ids))
	}
}

func TestRecommendedUserIDs_TieBreakDeterministic(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSelectionStore(db)

	// One selection each; 7 recorded last. Whether the timestamps end
	// up equal (tie falls to lowest id) or distinct (most recent
	// first), the expected order is the same.
	if err := store.Record("device-a", 8); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Record("device-a", 7); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	ids, err := store.RecommendedUserIDs("device-a", 3)
	if err != nil {
		t.Fatalf("RecommendedUserIDs() error = %v", err)
	}
	if !reflect.DeepEqual(ids, []int{7, 8}) {
		t.Errorf("RecommendedUserIDs() = %v, want [7 8]", ids)
	}
}

func TestSelections_DevicesAreIsolated(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSelectionStore(db)

	if err := store.Record("device-a", 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	ids, err := store.RecommendedUserIDs("device-b", 3)
	if err != nil {
		t.Fatalf("RecommendedUserIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("RecommendedUserIDs() for other device = %v, want empty", ids)
	}
}

func TestSelectionHistory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSelectionStore(db)

	for _, userID := range []int{4, 2, 4} {
		if err := store.Record("device-a", userID); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	history, err := store.History("device-a")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len(History()) = %d, want 3", len(history))
	}

	gotIDs := []int{history[0].SelectedUserID, history[1].SelectedUserID, history[2].SelectedUserID}
	if !reflect.DeepEqual(gotIDs, []int{4, 2, 4}) {
		t.Errorf("History() order = %v, want [4 2 4]", gotIDs)
	}
	for _, sel := range history {
		if sel.DeviceID != "device-a" {
			t.Errorf("DeviceID = %q, want device-a", sel.DeviceID)
		}
		if sel.Timestamp.IsZero() {
			t.Error("Timestamp should be set")
		}
	}
}
