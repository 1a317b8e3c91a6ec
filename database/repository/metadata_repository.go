package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hourbox/database"
	L "hourbox/logger"
	"time"
)

var ErrQuotaExceeded = errors.New("metadata quota exceeded")

// MetadataRepository is the small-value key/value store. Values are
// serialized records; writes that would push the total size of all
// values over the quota are rejected.
type MetadataRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Usage(ctx context.Context) (int64, error)
}

type metadataRepo struct {
	db    *database.DB
	quota int64
}

// NewMetadataRepository returns a repository limited to quota bytes; quota <= 0 means unlimited.
func NewMetadataRepository(db *database.DB, quota int64) MetadataRepository {
	return metadataRepo{db: db, quota: quota}
}

func (m metadataRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := m.db.D.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key=?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", database.ErrDoesNotExist
		}
		return "", fmt.Errorf("could not read metadata %s: %w", key, err)
	}
	return value, nil
}

func (m metadataRepo) Set(ctx context.Context, key string, value string) error {
	if m.quota > 0 {
		var others int64
		err := m.db.D.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(LENGTH(CAST(value AS BLOB))), 0) FROM metadata WHERE key<>?", key).Scan(&others)
		if err != nil {
			return fmt.Errorf("could not compute metadata usage: %w", err)
		}
		if others+int64(len(value)) > m.quota {
			L.Debug(fmt.Sprintf("metadata %s rejected: %d + %d > %d", key, others, len(value), m.quota))
			return fmt.Errorf("could not write metadata %s: %w", key, ErrQuotaExceeded)
		}
	}
	_, err := m.db.D.ExecContext(ctx,
		`INSERT INTO metadata (key, value, updated_at) VALUES (?,?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, database.ToTimeStr(time.Now()))
	if err != nil {
		return fmt.Errorf("could not write metadata %s: %w", key, err)
	}
	return nil
}

func (m metadataRepo) Delete(ctx context.Context, key string) error {
	_, err := m.db.D.ExecContext(ctx, "DELETE FROM metadata WHERE key=?", key)
	if err != nil {
		return fmt.Errorf("could not delete metadata %s: %w", key, err)
	}
	return nil
}

func (m metadataRepo) Usage(ctx context.Context) (int64, error) {
	var total int64
	err := m.db.D.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(LENGTH(CAST(value AS BLOB))), 0) FROM metadata").Scan(&total)
	if err != nil {
		return -1, fmt.Errorf("could not compute metadata usage: %w", err)
	}
	return total, nil
}
