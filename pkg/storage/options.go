package storage

import (
	"time"

	"github.com/sirupsen/logrus"
)

type StorageOption func(*StorageEngine)

// WithDataFile enables single-file persistence at path.
func WithDataFile(path string) StorageOption {
	return func(engine *StorageEngine) {
		engine.dataFile = path
	}
}

func WithBackgroundSave(interval time.Duration) StorageOption {
	return func(engine *StorageEngine) {
		engine.backgroundSave = true
		engine.saveInterval = interval
		engine.transactionSave = false // Disable transaction saves when background saves are enabled
	}
}

// WithTransactionSave enables saving after every write (default: true)
func WithTransactionSave(enabled bool) StorageOption {
	return func(engine *StorageEngine) {
		engine.transactionSave = enabled
	}
}

func WithLogger(log logrus.FieldLogger) StorageOption {
	return func(engine *StorageEngine) {
		if log != nil {
			engine.log = log
		}
	}
}

// WithIDGenerator replaces the UUID generator used for document identities.
func WithIDGenerator(fn func() string) StorageOption {
	return func(engine *StorageEngine) {
		engine.newID = fn
	}
}
