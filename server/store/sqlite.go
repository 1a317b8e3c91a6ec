package store

import (
	"context"
	"hourbox/database"
	"hourbox/database/repository"
)

type sqliteStore struct {
	repository.SessionDocumentRepository
	db *database.DB
}

func OpenSqlite(ctx context.Context, dbPath string) (Store, error) {
	db, err := database.NewDB(dbPath)
	if err != nil {
		return nil, err
	}
	err = db.Init(ctx)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}
	return &sqliteStore{
		SessionDocumentRepository: repository.NewSessionDocumentRepository(db),
		db:                        db,
	}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close(context.Background())
}
