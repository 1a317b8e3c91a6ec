package store

import (
	"context"
	"errors"
	"fmt"
	"hourbox/database"
	"hourbox/database/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type pgSessionDocument struct {
	UserId    string         `gorm:"primaryKey;column:user_id"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (pgSessionDocument) TableName() string {
	return "session_documents"
}

type postgresStore struct {
	db *gorm.DB
}

func OpenPostgres(ctx context.Context, dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}
	err = db.WithContext(ctx).AutoMigrate(&pgSessionDocument{})
	if err != nil {
		return nil, fmt.Errorf("could not migrate session_documents: %w", err)
	}
	return &postgresStore{db: db}, nil
}

func (p *postgresStore) Get(ctx context.Context, userId string) (*model.SessionDocument, error) {
	var row pgSessionDocument
	err := p.db.WithContext(ctx).First(&row, "user_id = ?", userId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.ErrDoesNotExist
		}
		return nil, fmt.Errorf("could not get session document for %s: %w", userId, err)
	}
	return &model.SessionDocument{
		UserId:    row.UserId,
		Document:  string(row.Document),
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (p *postgresStore) Put(ctx context.Context, userId string, document string) error {
	row := pgSessionDocument{
		UserId:    userId,
		Document:  datatypes.JSON(document),
		UpdatedAt: time.Now().UTC(),
	}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("could not store session document for %s: %w", userId, err)
	}
	return nil
}

func (p *postgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
