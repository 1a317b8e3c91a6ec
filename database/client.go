package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hourbox/database/model"
	L "hourbox/logger"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrDoesNotExist = errors.New("does not exist")

const DB_FILE_NAME = "hourbox.db"

// sqlite textual timestamps, sortable
const DateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

type DB struct {
	D    *sql.DB
	path string
}

func NewDB(dbPath string) (*DB, error) {
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", dbPath, err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	d.SetMaxOpenConns(1)
	return &DB{D: d, path: dbPath}, nil
}

// GetDBFilePath returns the database file inside dataDir.
func GetDBFilePath(dataDir string) (string, error) {
	return filepath.Abs(filepath.Join(dataDir, DB_FILE_NAME))
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		model.CREATE_METADATA_TABLE,
		model.CREATE_BLOBS_TABLE,
		model.CREATE_SESSION_DOCUMENTS_TABLE,
	} {
		_, err := db.D.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("could not execute %q: %w", stmt, err)
		}
	}
	L.Debug(fmt.Sprintf("database ready: %s", db.path))
	return nil
}

func (db *DB) Init(ctx context.Context) error {
	return db.createTables(ctx)
}

func (db *DB) Close(ctx context.Context) error {
	L.Debug(fmt.Sprintf("closing database: %s", db.path))
	return db.D.Close()
}

func ToTimeStr(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

func FromTimeStr(ts string) time.Time {
	t, err := time.Parse(DateTimeFormat, ts)
	if err != nil {
		L.Error(fmt.Errorf("couldnt parse time for %s: %w", ts, err))
		return time.Time{}
	}
	return t
}
