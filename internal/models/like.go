// ABOUTME: Persisted row types for the local preference database
// ABOUTME: Likes, affinity scores, and the append-only user selection log
package models

import "time"

// Like records that a user liked one catalog item
type Like struct {
	UserID    int       `json:"user_id"`
	ItemID    int       `json:"item_id"`
	Timestamp time.Time `json:"timestamp"`
}

// AffinityScore is a per-user counter for one affinity key.
// Scores only ever grow: removing a like does not decrement them.
type AffinityScore struct {
	UserID int    `json:"user_id"`
	Key    string `json:"key"`
	Score  int    `json:"score"`
}

// UserSelection records which account was chosen at login on this device
type UserSelection struct {
	DeviceID       string    `json:"device_id"`
	SelectedUserID int       `json:"selected_user_id"`
	Timestamp      time.Time `json:"timestamp"`
}
