package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

func createTestQueries(n int) []domain.QueryRecord {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := make([]domain.QueryRecord, n)
	for i := range records {
		records[i] = domain.QueryRecord{
			ID:        fmt.Sprintf("query-%d", i),
			Visible:   fmt.Sprintf("What is item %d?", i),
			Hidden:    "(Context: the Level Editor)",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return records
}

// exerciseQueryStorage runs the behavior every backend shares
func exerciseQueryStorage(t *testing.T, storage QueryStorage) {
	ctx := context.Background()

	t.Run("Health Check", func(t *testing.T) {
		assert.NoError(t, storage.Health(ctx))
	})

	t.Run("Empty history", func(t *testing.T) {
		records, err := storage.ListQueries(ctx, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, records)

		count, err := storage.CountQueries(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	queries := createTestQueries(5)
	for _, q := range queries {
		require.NoError(t, storage.RecordQuery(ctx, q))
	}

	t.Run("Newest first", func(t *testing.T) {
		records, err := storage.ListQueries(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, "query-4", records[0].ID)
		assert.Equal(t, "query-0", records[4].ID)
		assert.Equal(t, queries[4].Visible, records[0].Visible)
		assert.Equal(t, queries[4].Hidden, records[0].Hidden)
		assert.True(t, queries[4].CreatedAt.Equal(records[0].CreatedAt))
	})

	t.Run("Pagination", func(t *testing.T) {
		records, err := storage.ListQueries(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "query-3", records[0].ID)
		assert.Equal(t, "query-2", records[1].ID)

		records, err = storage.ListQueries(ctx, 10, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Count", func(t *testing.T) {
		count, err := storage.CountQueries(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})
}

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()
	defer func() { _ = storage.Close() }()

	exerciseQueryStorage(t, storage)
}

func TestMemoryStorage_DefaultLimit(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	for _, q := range createTestQueries(defaultListLimit + 5) {
		require.NoError(t, storage.RecordQuery(ctx, q))
	}

	records, err := storage.ListQueries(ctx, 0, -3)
	require.NoError(t, err)
	assert.Len(t, records, defaultListLimit)
}

func TestSQLiteStorage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")

	storage, err := NewSQLiteStorage(SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer func() { _ = storage.Close() }()

	exerciseQueryStorage(t, storage)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestSQLiteStorage_DuplicateIDIgnored(t *testing.T) {
	storage, err := NewSQLiteStorage(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	q := createTestQueries(1)[0]
	require.NoError(t, storage.RecordQuery(ctx, q))
	require.NoError(t, storage.RecordQuery(ctx, q))

	count, err := storage.CountQueries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStorage_ReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first, err := NewSQLiteStorage(SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	require.NoError(t, first.RecordQuery(ctx, createTestQueries(1)[0]))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStorage(SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	records, err := second.ListQueries(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "query-0", records[0].ID)
}

func TestJsonlStorage(t *testing.T) {
	storage, err := NewJsonlStorage(JsonlStorageConfig{Path: t.TempDir()})
	require.NoError(t, err)
	defer func() { _ = storage.Close() }()

	exerciseQueryStorage(t, storage)
}

func TestJsonlStorage_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewJsonlStorage(JsonlStorageConfig{Path: dir})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, storage.RecordQuery(ctx, createTestQueries(1)[0]))

	f, err := os.OpenFile(filepath.Join(dir, jsonlFileName), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := storage.ListQueries(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStorageFactory(t *testing.T) {
	t.Run("Memory Storage", func(t *testing.T) {
		storage, err := NewStorage(StorageConfig{Type: "memory"})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStorage{}, storage)
	})

	t.Run("SQLite Storage", func(t *testing.T) {
		storage, err := NewStorage(StorageConfig{Type: "sqlite", SQLite: SQLiteConfig{Path: ":memory:"}})
		require.NoError(t, err)
		assert.IsType(t, &SQLiteStorage{}, storage)
		assert.NoError(t, storage.Close())
	})

	t.Run("JSONL Storage", func(t *testing.T) {
		storage, err := NewStorage(StorageConfig{Type: "jsonl", JSONL: JsonlStorageConfig{Path: t.TempDir()}})
		require.NoError(t, err)
		assert.IsType(t, &JsonlStorage{}, storage)
	})

	t.Run("Redis Storage - Invalid Config", func(t *testing.T) {
		_, err := NewStorage(StorageConfig{Type: "redis", Redis: RedisConfig{Host: "invalid-host.invalid", Port: 6379}})
		assert.Error(t, err)
	})

	t.Run("Unsupported Storage Type", func(t *testing.T) {
		_, err := NewStorage(StorageConfig{Type: "unsupported"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported storage type")
	})
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5432, Database: "history", Username: "assistant", Password: "secret", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=assistant password=secret dbname=history sslmode=disable", cfg.DSN())
}
