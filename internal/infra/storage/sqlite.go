package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	migrations "github.com/inference-gateway/editor-assistant/internal/infra/storage/migrations"
)

// SQLiteStorage implements QueryStorage using SQLite
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(config SQLiteConfig) (*SQLiteStorage, error) {
	dsn := config.Path
	if config.Path != ":memory:" {
		dir := filepath.Dir(config.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runner := migrations.NewRunner(db, migrations.DialectSQLite)
	if _, err := runner.Apply(ctx, migrations.SQLiteMigrations()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	return &SQLiteStorage{db: db, path: config.Path}, nil
}

// RecordQuery inserts a query. Recording the same id twice is a no-op.
func (s *SQLiteStorage) RecordQuery(ctx context.Context, record domain.QueryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO queries (id, visible, hidden, created_at) VALUES (?, ?, ?, ?)`,
		record.ID, record.Visible, record.Hidden, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// ListQueries returns recorded queries, newest first
func (s *SQLiteStorage) ListQueries(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, visible, hidden, created_at FROM queries ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanQueries(rows)
}

// CountQueries returns the number of recorded queries
func (s *SQLiteStorage) CountQueries(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count queries: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Health checks if the database is reachable and functional
func (s *SQLiteStorage) Health(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func scanQueries(rows *sql.Rows) ([]domain.QueryRecord, error) {
	var records []domain.QueryRecord
	for rows.Next() {
		var record domain.QueryRecord
		if err := rows.Scan(&record.ID, &record.Visible, &record.Hidden, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DB returns the underlying connection
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}

// Dialect returns migrations.DialectSQLite
func (s *SQLiteStorage) Dialect() string {
	return migrations.DialectSQLite
}
