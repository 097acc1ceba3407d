package storage

import (
	"context"
	"fmt"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// Insert inserts a copy of doc into a collection, creating the collection on
// first use. When transaction saves are on, a failed flush rolls the insert
// back so the write either fully happens or not at all.
func (se *StorageEngine) Insert(ctx context.Context, collName string, doc domain.Document) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if collName == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	se.mu.Lock()
	defer se.mu.Unlock()

	collection, exists := se.collections[collName]
	if !exists {
		collection = domain.NewCollection(collName)
		se.collections[collName] = collection
	}

	stored := doc.Copy()
	id := se.newID()
	stored[domain.IDField] = id
	collection.Add(id, stored)

	if !se.IsTransactionSaveEnabled() {
		se.dirty = true
		return stored.Copy(), nil
	}

	if err := se.saveLocked(); err != nil {
		collection.Remove(id)
		if !exists {
			delete(se.collections, collName)
		}
		return nil, fmt.Errorf("failed to persist insert into %s: %w", collName, err)
	}

	return stored.Copy(), nil
}

// FindAll returns every document of a collection in insertion order.
func (se *StorageEngine) FindAll(ctx context.Context, collName string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	se.mu.RLock()
	defer se.mu.RUnlock()

	collection, exists := se.collections[collName]
	if !exists {
		return []domain.Document{}, nil
	}
	return collection.All(), nil
}

// Count returns the number of documents in a collection.
func (se *StorageEngine) Count(collName string) int {
	se.mu.RLock()
	defer se.mu.RUnlock()

	if collection, exists := se.collections[collName]; exists {
		return len(collection.Order)
	}
	return 0
}
