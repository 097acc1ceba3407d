// Package records is the record layer: one generic list/create store shared
// by every record kind.
package records

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// Record is one flat field-name-to-value mapping.
type Record = domain.Document

// Store lists and creates records of any kind against a document store.
// There are no uniqueness or cross-kind reference checks: duplicate key
// fields and dangling ids are stored as given.
type Store struct {
	docs domain.DocumentStore
	log  logrus.FieldLogger
}

func NewStore(docs domain.DocumentStore, log logrus.FieldLogger) *Store {
	return &Store{docs: docs, log: log}
}

// List returns every stored record of the kind, in insertion order.
func (s *Store) List(ctx context.Context, kind domain.Kind) ([]Record, error) {
	docs, err := s.docs.FindAll(ctx, kind.Collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrListFailed, kind.Name, err)
	}
	if docs == nil {
		docs = []Record{}
	}
	return docs, nil
}

type statsReporter interface {
	GetMemoryStats() map[string]interface{}
}

// Stats reports the document store's own counters, or nil when the backend
// keeps none.
func (s *Store) Stats() map[string]interface{} {
	if r, ok := s.docs.(statsReporter); ok {
		return r.GetMemoryStats()
	}
	return nil
}

// Create casts fields against the kind's schema and stores the result. Both
// cast failures and store faults are reported as ErrCreateFailed.
func (s *Store) Create(ctx context.Context, kind domain.Kind, fields map[string]interface{}) (Record, error) {
	doc, err := kind.Cast(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCreateFailed, err)
	}

	stored, err := s.docs.Insert(ctx, kind.Collection, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCreateFailed, kind.Name, err)
	}

	s.log.WithFields(logrus.Fields{
		"kind": kind.Name,
		"id":   stored[domain.IDField],
	}).Debug("Record created")
	return stored, nil
}
