package domain

import "context"

// DocumentStore defines the interface every storage backend conforms to.
// One collection holds one record kind.
type DocumentStore interface {
	// Insert stores a copy of doc with a freshly generated IDField and
	// returns the stored document.
	Insert(ctx context.Context, collName string, doc Document) (Document, error)
	// FindAll returns every document of the collection in insertion order.
	// A collection that was never written yields an empty slice.
	FindAll(ctx context.Context, collName string) ([]Document, error)
	Close() error
}
