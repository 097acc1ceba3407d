package storage

import (
	"runtime"
	"time"
)

// GetMemoryStats returns process memory usage and document counts.
func (se *StorageEngine) GetMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	se.mu.RLock()
	defer se.mu.RUnlock()

	documents := 0
	for _, c := range se.collections {
		documents += len(c.Order)
	}

	return map[string]interface{}{
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"sys_mb":         m.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
		"collections":    len(se.collections),
		"documents":      documents,
		"dirty":          se.dirty,
	}
}

// StartBackgroundWorkers starts the periodic save worker when background saves
// are enabled and a data file is configured.
func (se *StorageEngine) StartBackgroundWorkers() {
	if !se.backgroundSave || se.dataFile == "" {
		return
	}

	se.backgroundWg.Add(1)
	go func() {
		defer se.backgroundWg.Done()
		ticker := time.NewTicker(se.saveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := se.saveIfDirty(); err != nil {
					se.log.WithError(err).Error("Background save failed")
				}
			case <-se.stopChan:
				return
			}
		}
	}()
}

// StopBackgroundWorkers stops background workers
func (se *StorageEngine) StopBackgroundWorkers() {
	se.stopOnce.Do(func() { close(se.stopChan) })
	se.backgroundWg.Wait()
}
