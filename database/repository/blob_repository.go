package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hourbox/checksum"
	"hourbox/database"
	"hourbox/database/model"
	"time"
)

var ErrChecksumMismatch = errors.New("blob checksum mismatch")

// BlobRepository stores raw file content keyed by file id.
type BlobRepository interface {
	// Open verifies the backing table is reachable.
	Open(ctx context.Context) error
	Put(ctx context.Context, key string, data []byte) error
	// Get returns database.ErrDoesNotExist for an unknown key.
	Get(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (*model.BlobInfo, error)
	Delete(ctx context.Context, key string) error
	Usage(ctx context.Context) (*model.BlobUsage, error)
}

type blobRepo struct {
	db *database.DB
}

func NewBlobRepository(db *database.DB) BlobRepository {
	return blobRepo{db: db}
}

func (b blobRepo) Open(ctx context.Context) error {
	err := b.db.D.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("could not reach blob store: %w", err)
	}
	var n int64
	err = b.db.D.QueryRowContext(ctx, "SELECT COUNT(*) FROM blobs").Scan(&n)
	if err != nil {
		return fmt.Errorf("could not open blob store: %w", err)
	}
	return nil
}

func (b blobRepo) Put(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	sum := checksum.Sha256Hex(data)
	_, err := b.db.D.ExecContext(ctx,
		`INSERT INTO blobs (key, data, size, sha256, created_at) VALUES (?,?,?,?,?)
		 ON CONFLICT(key) DO UPDATE SET data=excluded.data, size=excluded.size, sha256=excluded.sha256`,
		key, data, len(data), sum, database.ToTimeStr(time.Now()))
	if err != nil {
		return fmt.Errorf("could not write blob %s: %w", key, err)
	}
	return nil
}

func (b blobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	var sum string
	err := b.db.D.QueryRowContext(ctx, "SELECT data, sha256 FROM blobs WHERE key=?", key).Scan(&data, &sum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrDoesNotExist
		}
		return nil, fmt.Errorf("could not read blob %s: %w", key, err)
	}
	if checksum.Sha256Hex(data) != sum {
		return nil, fmt.Errorf("could not read blob %s: %w", key, ErrChecksumMismatch)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (b blobRepo) Stat(ctx context.Context, key string) (*model.BlobInfo, error) {
	info := model.BlobInfo{Key: key}
	var createdAtStr string
	err := b.db.D.QueryRowContext(ctx,
		"SELECT size, sha256, created_at FROM blobs WHERE key=?", key).Scan(&info.Size, &info.Sha256, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrDoesNotExist
		}
		return nil, fmt.Errorf("could not stat blob %s: %w", key, err)
	}
	info.CreatedAt = database.FromTimeStr(createdAtStr)
	return &info, nil
}

func (b blobRepo) Delete(ctx context.Context, key string) error {
	_, err := b.db.D.ExecContext(ctx, "DELETE FROM blobs WHERE key=?", key)
	if err != nil {
		return fmt.Errorf("could not delete blob %s: %w", key, err)
	}
	return nil
}

func (b blobRepo) Usage(ctx context.Context) (*model.BlobUsage, error) {
	usage := model.BlobUsage{}
	err := b.db.D.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(size), 0) FROM blobs").Scan(&usage.Count, &usage.SizeBytes)
	if err != nil {
		return nil, fmt.Errorf("could not compute blob usage: %w", err)
	}
	return &usage, nil
}
