package model

import "time"

const CREATE_METADATA_TABLE = `
CREATE TABLE IF NOT EXISTS metadata (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

type MetadataEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
