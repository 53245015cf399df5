// ABOUTME: Like and affinity-score persistence, generic over catalog tables
// ABOUTME: One code path instantiated for posts, recipes, and products
package sqlite

import (
	"fmt"
	"time"
)

// LikeStore persists likes and affinity scores for one catalog.
// The three catalogs share this implementation and differ only in
// which pair of tables they write to.
type LikeStore struct {
	db          *DB
	likesTable  string
	scoresTable string
}

// NewPostLikeStore creates the like store backed by the post tables
func NewPostLikeStore(db *DB) *LikeStore {
	return &LikeStore{db: db, likesTable: "post_likes", scoresTable: "post_affinity"}
}

// NewRecipeLikeStore creates the like store backed by the recipe tables
func NewRecipeLikeStore(db *DB) *LikeStore {
	return &LikeStore{db: db, likesTable: "recipe_likes", scoresTable: "recipe_affinity"}
}

// NewProductLikeStore creates the like store backed by the product tables
func NewProductLikeStore(db *DB) *LikeStore {
	return &LikeStore{db: db, likesTable: "product_likes", scoresTable: "product_affinity"}
}

// AddLike records that userID liked itemID and bumps the user's score for
// every affinity key. Any previous like row for the same (user, item) is
// replaced first, so at most one exists at a time.
//
// The per-key score updates are individual statements, not one
// transaction; a failure partway leaves the earlier keys applied.
func (s *LikeStore) AddLike(userID, itemID int, keys []string) error {
	if userID <= 0 {
		return nil
	}

	_, err := s.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND item_id = ?", s.likesTable),
		userID, itemID)
	if err != nil {
		return fmt.Errorf("clearing existing like: %w", err)
	}

	_, err = s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (user_id, item_id, timestamp) VALUES (?, ?, ?)", s.likesTable),
		userID, itemID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting like: %w", err)
	}

	for _, key := range keys {
		if err := s.bumpScore(userID, key); err != nil {
			return fmt.Errorf("updating score for key %q: %w", key, err)
		}
	}

	return nil
}

// bumpScore increments the (user, key) score row, creating it at 1 if absent
func (s *LikeStore) bumpScore(userID int, key string) error {
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE %s SET score = score + 1 WHERE user_id = ? AND key = ?", s.scoresTable),
		userID, key)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (user_id, key, score) VALUES (?, ?, 1)", s.scoresTable),
		userID, key)
	return err
}

// RemoveLike deletes the like row for (userID, itemID) if one exists.
// Affinity scores are deliberately left untouched: a past like keeps
// counting as an interest signal even after the item is unliked.
func (s *LikeStore) RemoveLike(userID, itemID int) error {
	if userID <= 0 {
		return nil
	}

	_, err := s.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND item_id = ?", s.likesTable),
		userID, itemID)
	if err != nil {
		return fmt.Errorf("deleting like: %w", err)
	}
	return nil
}

// LikedIDs returns the ids of every item userID currently likes,
// oldest like first. A missing user id yields an empty result.
func (s *LikeStore) LikedIDs(userID int) ([]int, error) {
	if userID <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(
		fmt.Sprintf("SELECT item_id FROM %s WHERE user_id = ? ORDER BY id", s.likesTable),
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying likes: %w", err)
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

// Scores returns userID's affinity key → score map. Duplicate key rows
// should not exist, but their scores are summed defensively if they do.
func (s *LikeStore) Scores(userID int) (map[string]int, error) {
	scores := make(map[string]int)
	if userID <= 0 {
		return scores, nil
	}

	rows, err := s.db.Query(
		fmt.Sprintf("SELECT key, score FROM %s WHERE user_id = ?", s.scoresTable),
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			key   string
			score int
		)
		if err := rows.Scan(&key, &score); err != nil {
			return nil, err
		}
		scores[key] += score
	}

	return scores, rows.Err()
}
