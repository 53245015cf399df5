// ABOUTME: SQLite database schema for the local preference store
// ABOUTME: Creates like, affinity-score, and user-selection tables with their indexes
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Append-only log of which account was chosen at login on this device
CREATE TABLE IF NOT EXISTS user_selections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL,
    selected_user_id INTEGER NOT NULL,
    timestamp INTEGER NOT NULL
);

-- Per-catalog like records: one row per (user, item) at any time
CREATE TABLE IF NOT EXISTS post_likes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    item_id INTEGER NOT NULL,
    timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS recipe_likes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    item_id INTEGER NOT NULL,
    timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS product_likes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    item_id INTEGER NOT NULL,
    timestamp INTEGER NOT NULL
);

-- Per-catalog affinity score aggregates: one row per (user, key)
CREATE TABLE IF NOT EXISTS post_affinity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS recipe_affinity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_affinity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0
);

-- Indexes for equality lookups without full-table scans
CREATE INDEX IF NOT EXISTS idx_selections_device ON user_selections(device_id);
CREATE INDEX IF NOT EXISTS idx_selections_device_user ON user_selections(device_id, selected_user_id);
CREATE INDEX IF NOT EXISTS idx_selections_timestamp ON user_selections(timestamp);
CREATE INDEX IF NOT EXISTS idx_post_likes_user ON post_likes(user_id);
CREATE INDEX IF NOT EXISTS idx_post_likes_user_item ON post_likes(user_id, item_id);
CREATE INDEX IF NOT EXISTS idx_recipe_likes_user ON recipe_likes(user_id);
CREATE INDEX IF NOT EXISTS idx_recipe_likes_user_item ON recipe_likes(user_id, item_id);
CREATE INDEX IF NOT EXISTS idx_product_likes_user ON product_likes(user_id);
CREATE INDEX IF NOT EXISTS idx_product_likes_user_item ON product_likes(user_id, item_id);
CREATE INDEX IF NOT EXISTS idx_post_affinity_user ON post_affinity(user_id);
CREATE INDEX IF NOT EXISTS idx_post_affinity_user_key ON post_affinity(user_id, key);
CREATE INDEX IF NOT EXISTS idx_recipe_affinity_user ON recipe_affinity(user_id);
CREATE INDEX IF NOT EXISTS idx_recipe_affinity_user_key ON recipe_affinity(user_id, key);
CREATE INDEX IF NOT EXISTS idx_product_affinity_user ON product_affinity(user_id);
CREATE INDEX IF NOT EXISTS idx_product_affinity_user_key ON product_affinity(user_id, key);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
