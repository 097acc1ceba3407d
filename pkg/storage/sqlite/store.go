// Package sqlite keeps documents in an embedded SQLite database, one row per
// document with a MessagePack body.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id         TEXT NOT NULL UNIQUE,
		body       BLOB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection, seq)`,
}

// Store is a domain.DocumentStore backed by SQLite.
type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string, log logrus.FieldLogger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory:
	// databases shared.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
	}

	log.WithField("path", path).Info("Opened sqlite document store")
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

	body, err := msgpack.Marshal(map[string]interface{}(stored))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)`,
		collName, id, body,
	); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collName, err)
	}
	return stored, nil
}

// FindAll returns the collection's documents in insertion order.
func (s *Store) FindAll(ctx context.Context, collName string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE collection = ? ORDER BY seq`, collName)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collName, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		var doc map[string]interface{}
		if err := msgpack.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, domain.Document(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collName, err)
	}
	return docs, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ domain.DocumentStore = (*Store)(nil)
