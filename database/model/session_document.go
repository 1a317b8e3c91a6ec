package model

import "time"

// one row per user, the whole session list as a JSON document
const CREATE_SESSION_DOCUMENTS_TABLE = `
CREATE TABLE IF NOT EXISTS session_documents (
	user_id TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

type SessionDocument struct {
	UserId    string
	Document  string
	UpdatedAt time.Time
}
