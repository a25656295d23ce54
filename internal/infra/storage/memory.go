package storage

import (
	"context"
	"sync"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

// MemoryStorage implements QueryStorage in memory. History is lost on exit.
type MemoryStorage struct {
	queries []domain.QueryRecord
	mutex   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage instance
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// RecordQuery appends a query
func (m *MemoryStorage) RecordQuery(_ context.Context, record domain.QueryRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.queries = append(m.queries, record)
	return nil
}

// ListQueries returns recorded queries, newest first
func (m *MemoryStorage) ListQueries(_ context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return pageNewestFirst(m.queries, limit, offset), nil
}

// CountQueries returns the number of recorded queries
func (m *MemoryStorage) CountQueries(_ context.Context) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.queries), nil
}

// Close is a no-op for memory storage
func (m *MemoryStorage) Close() error {
	return nil
}

// Health always succeeds for memory storage
func (m *MemoryStorage) Health(_ context.Context) error {
	return nil
}

// pageNewestFirst pages over records kept in insertion order
func pageNewestFirst(records []domain.QueryRecord, limit, offset int) []domain.QueryRecord {
	limit, offset = normalizePage(limit, offset)

	result := make([]domain.QueryRecord, 0, limit)
	for i := len(records) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, records[i])
	}
	return result
}
