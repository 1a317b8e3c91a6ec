package store

import (
	"context"
	"fmt"
	"hourbox/config"
	"hourbox/database/model"
	L "hourbox/logger"
	"path/filepath"
)

const SERVER_DB_FILE_NAME = "hourbox-server.db"

// Store keeps one session document per user. Get returns
// database.ErrDoesNotExist for users that never pushed.
type Store interface {
	Get(ctx context.Context, userId string) (*model.SessionDocument, error)
	Put(ctx context.Context, userId string, document string) error
	Close() error
}

// Open connects the storage backend named in the server config.
func Open(ctx context.Context, c *config.Server, dataDir string) (Store, error) {
	L.Debug(fmt.Sprintf("config::Server::Storage %s", c.Storage))
	switch c.Storage {
	case config.STORAGE_SQLITE:
		return OpenSqlite(ctx, filepath.Join(dataDir, SERVER_DB_FILE_NAME))
	case config.STORAGE_POSTGRES:
		return OpenPostgres(ctx, c.DSN)
	case config.STORAGE_REDIS:
		return OpenRedis(ctx, c.RedisURL)
	default:
		return nil, fmt.Errorf("unsupported server storage %q", c.Storage)
	}
}
