package client

import (
	"context"
	"sync"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// Session holds the last loaded records per kind. Each reload replaces a
// kind's snapshot wholesale; there is no merging and no optimistic update.
type Session struct {
	client *Client

	mu        sync.RWMutex
	snapshots map[string][]domain.Document
}

func NewSession(c *Client) *Session {
	return &Session{
		client:    c,
		snapshots: make(map[string][]domain.Document),
	}
}

// Reload fetches kind from the server and stores it as the current snapshot.
func (s *Session) Reload(ctx context.Context, kind domain.Kind) ([]domain.Document, error) {
	docs, err := s.client.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshots[kind.Name] = docs
	s.mu.Unlock()
	return docs, nil
}

// ReloadAll refreshes every kind, stopping at the first failure.
func (s *Session) ReloadAll(ctx context.Context) error {
	for _, kind := range domain.Kinds() {
		if _, err := s.Reload(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// Records returns the last loaded snapshot of kind (nil if never loaded).
func (s *Session) Records(kind domain.Kind) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[kind.Name]
}

// Submit coerces form input, creates the record and reloads the kind. The
// snapshot is left untouched when the create fails.
func (s *Session) Submit(ctx context.Context, kind domain.Kind, form map[string]string) (string, error) {
	message, err := s.client.Create(ctx, kind, Coerce(kind, form))
	if err != nil {
		return "", err
	}
	if _, err := s.Reload(ctx, kind); err != nil {
		return message, err
	}
	return message, nil
}
