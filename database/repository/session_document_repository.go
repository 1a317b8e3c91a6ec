package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hourbox/database"
	"hourbox/database/model"
	"time"
)

// SessionDocumentRepository keeps one JSON session document per user for `hourbox serve`.
type SessionDocumentRepository interface {
	Get(ctx context.Context, userId string) (*model.SessionDocument, error)
	Put(ctx context.Context, userId string, document string) error
}

type sessionDocumentRepo struct {
	db *database.DB
}

func NewSessionDocumentRepository(db *database.DB) SessionDocumentRepository {
	return sessionDocumentRepo{db: db}
}

func (s sessionDocumentRepo) Get(ctx context.Context, userId string) (*model.SessionDocument, error) {
	doc := model.SessionDocument{UserId: userId}
	var updatedAtStr string
	err := s.db.D.QueryRowContext(ctx,
		"SELECT document, updated_at FROM session_documents WHERE user_id=?", userId).Scan(&doc.Document, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrDoesNotExist
		}
		return nil, fmt.Errorf("could not get session document for %s: %w", userId, err)
	}
	doc.UpdatedAt = database.FromTimeStr(updatedAtStr)
	return &doc, nil
}

func (s sessionDocumentRepo) Put(ctx context.Context, userId string, document string) error {
	_, err := s.db.D.ExecContext(ctx,
		`INSERT INTO session_documents (user_id, document, updated_at) VALUES (?,?,?)
		 ON CONFLICT(user_id) DO UPDATE SET document=excluded.document, updated_at=excluded.updated_at`,
		userId, document, database.ToTimeStr(time.Now()))
	if err != nil {
		return fmt.Errorf("could not store session document for %s: %w", userId, err)
	}
	return nil
}
