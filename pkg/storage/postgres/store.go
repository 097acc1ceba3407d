// Package postgres keeps documents in PostgreSQL through gorm, one row per
// document with a JSONB body.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// documentRow is the persisted form of one document.
type documentRow struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement"`
	Collection string `gorm:"size:64;not null;index:idx_documents_collection_seq,priority:1"`
	DocID      string `gorm:"column:doc_id;size:36;not null;uniqueIndex"`
	Body       string `gorm:"type:jsonb;not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

// Store is a domain.DocumentStore backed by PostgreSQL.
type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// Open connects with the given DSN and migrates the documents table.
func Open(ctx context.Context, dsn string, log logrus.FieldLogger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&documentRow{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}

	log.Info("Connected to postgres document store")
	return &Store{db: db, log: log}, nil
}

// Insert stores a copy of doc with a new identity.
func (s *Store) Insert(ctx context.Context, collName string, doc domain.Document) (domain.Document, error) {
	if collName == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	stored := doc.Copy()
	id := uuid.NewString()
	stored[domain.IDField] = id

	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	row := documentRow{Collection: collName, DocID: id, Body: string(body)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collName, err)
	}
	return stored, nil
}

// FindAll returns the collection's documents in insertion order.
func (s *Store) FindAll(ctx context.Context, collName string) ([]domain.Document, error) {
	var rows []documentRow
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collName).
		Order("seq").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collName, err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		var doc domain.Document
		if err := json.Unmarshal([]byte(row.Body), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", row.DocID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ domain.DocumentStore = (*Store)(nil)
