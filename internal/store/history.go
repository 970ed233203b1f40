package store

import (
	"sync"

	"github.com/cephas20k/secops/internal/models"
)

// ExportHistoryStore owns the export history list, newest first. Entries are
// immutable once recorded; truncation belongs to an external archiver.
type ExportHistoryStore struct {
	mu      sync.Mutex
	entries []models.ExportHistoryEntry
}

// NewExportHistoryStore creates an empty ExportHistoryStore.
func NewExportHistoryStore() *ExportHistoryStore {
	return &ExportHistoryStore{}
}

// Prepend records a completed export at the head of the history.
func (s *ExportHistoryStore) Prepend(entry models.ExportHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]models.ExportHistoryEntry{entry}, s.entries...)
}

// List returns up to limit entries newest-first (all when limit <= 0).
func (s *ExportHistoryStore) List(limit int) []models.ExportHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.ExportHistoryEntry, n)
	copy(out, s.entries[:n])

	return out
}
