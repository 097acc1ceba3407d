package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// MockStorageEngine provides a mock implementation of domain.DocumentStore for testing
type MockStorageEngine struct {
	mu          sync.RWMutex
	collections map[string][]domain.Document
	insertCalls int
	findCalls   int

	// InsertErr and FindErr, when set, are returned instead of touching the data
	InsertErr error
	FindErr   error
}

// NewMockStorageEngine creates a new mock storage engine
func NewMockStorageEngine() *MockStorageEngine {
	return &MockStorageEngine{
		collections: make(map[string][]domain.Document),
	}
}

// Insert adds a document to a collection with a sequential string ID
func (m *MockStorageEngine) Insert(ctx context.Context, collName string, doc domain.Document) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}

	stored := doc.Copy()
	stored[domain.IDField] = fmt.Sprintf("%d", len(m.collections[collName])+1)
	m.collections[collName] = append(m.collections[collName], stored)
	return stored.Copy(), nil
}

// FindAll returns all documents of a collection
func (m *MockStorageEngine) FindAll(ctx context.Context, collName string) ([]domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.findCalls++
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	docs := make([]domain.Document, 0, len(m.collections[collName]))
	for _, doc := range m.collections[collName] {
		docs = append(docs, doc.Copy())
	}
	return docs, nil
}

func (m *MockStorageEngine) Close() error {
	return nil
}

// GetInsertCalls returns the number of Insert calls
func (m *MockStorageEngine) GetInsertCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.insertCalls
}

// GetFindCalls returns the number of FindAll calls
func (m *MockStorageEngine) GetFindCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findCalls
}

// GetCollectionCount returns the number of documents in a collection
func (m *MockStorageEngine) GetCollectionCount(collName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collName])
}

var _ domain.DocumentStore = (*MockStorageEngine)(nil)
