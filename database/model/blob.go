package model

import "time"

const CREATE_BLOBS_TABLE = `
CREATE TABLE IF NOT EXISTS blobs (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	size INTEGER NOT NULL,
	sha256 TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

type BlobInfo struct {
	Key       string
	Size      int64
	Sha256    string
	CreatedAt time.Time
}

type BlobUsage struct {
	Count     int64
	SizeBytes int64
}
