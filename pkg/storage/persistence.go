package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// saveLocked flushes to the data file; caller holds se.mu.
func (se *StorageEngine) saveLocked() error {
	if err := se.writeFile(se.dataFile); err != nil {
		return err
	}
	se.dirty = false
	return nil
}

// saveIfDirty flushes to the data file when there are unsaved writes.
func (se *StorageEngine) saveIfDirty() error {
	se.mu.Lock()
	defer se.mu.Unlock()

	if !se.dirty {
		return nil
	}
	start := time.Now()
	if err := se.saveLocked(); err != nil {
		return err
	}
	se.log.WithFields(logrus.Fields{
		"file":     se.dataFile,
		"duration": time.Since(start).String(),
	}).Info("Saved data file")
	return nil
}

// writeFile replaces filename atomically with the header followed by an LZ4
// frame holding the MessagePack encoded StorageData; caller holds se.mu.
func (se *StorageEngine) writeFile(filename string) error {
	storageData := NewStorageData()
	storageData.Metadata["saved_at"] = time.Now().UTC().Format(time.RFC3339)
	for collName, collection := range se.collections {
		docs := make([]map[string]interface{}, 0, len(collection.Order))
		for _, id := range collection.Order {
			docs = append(docs, map[string]interface{}(collection.Documents[id]))
		}
		storageData.Collections[collName] = docs
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := encodeStorageData(tmp, storageData); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func encodeStorageData(f *os.File, storageData *StorageData) error {
	w := bufio.NewWriter(f)
	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	zw := lz4.NewWriter(w)
	if err := msgpack.NewEncoder(zw).Encode(storageData); err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	return w.Flush()
}

// LoadFromFile replaces the in-memory collections with the contents of
// filename. A missing file leaves the engine empty.
func (se *StorageEngine) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	if _, err := ReadHeader(r); err != nil {
		return fmt.Errorf("invalid file header: %w", err)
	}

	var storageData StorageData
	if err := msgpack.NewDecoder(lz4.NewReader(r)).Decode(&storageData); err != nil {
		return fmt.Errorf("failed to decode data file: %w", err)
	}

	collections := make(map[string]*domain.Collection, len(storageData.Collections))
	total := 0
	for collName, docs := range storageData.Collections {
		collection := domain.NewCollection(collName)
		for i, raw := range docs {
			doc := domain.Document(raw)
			id, ok := doc[domain.IDField].(string)
			if !ok || id == "" {
				return fmt.Errorf("document %d in collection %s has no %s", i, collName, domain.IDField)
			}
			collection.Add(id, doc)
		}
		collections[collName] = collection
		total += len(docs)
	}

	se.mu.Lock()
	se.collections = collections
	se.dirty = false
	se.mu.Unlock()

	se.log.WithFields(logrus.Fields{
		"file":        filename,
		"collections": len(collections),
		"documents":   total,
	}).Info("Loaded data file")
	return nil
}
