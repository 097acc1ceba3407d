package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
	"github.com/adfharrison1/go-bloodbank/pkg/logging"
)

// StorageEngine is the in-memory document store. With a data file configured
// it persists to a single compressed file after each write, or periodically
// when background saves are enabled.
type StorageEngine struct {
	mu          sync.RWMutex
	collections map[string]*domain.Collection
	dirty       bool

	log   logrus.FieldLogger
	newID func() string

	// Configuration
	dataFile        string
	backgroundSave  bool
	transactionSave bool
	saveInterval    time.Duration

	// Background workers
	backgroundWg sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewStorageEngine creates a new storage engine
func NewStorageEngine(options ...StorageOption) *StorageEngine {
	engine := &StorageEngine{
		collections:     make(map[string]*domain.Collection),
		log:             logging.Discard(),
		newID:           uuid.NewString,
		transactionSave: true, // Default to transaction-based saves
		saveInterval:    5 * time.Minute,
		stopChan:        make(chan struct{}),
	}

	// Apply options
	for _, option := range options {
		option(engine)
	}

	return engine
}

// IsTransactionSaveEnabled returns whether every write is flushed to disk
func (se *StorageEngine) IsTransactionSaveEnabled() bool {
	return se.dataFile != "" && se.transactionSave
}

// Close stops background workers and flushes unsaved changes.
func (se *StorageEngine) Close() error {
	se.StopBackgroundWorkers()
	if se.dataFile == "" {
		return nil
	}
	return se.saveIfDirty()
}

var _ domain.DocumentStore = (*StorageEngine)(nil)
