package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	migrations "github.com/inference-gateway/editor-assistant/internal/infra/storage/migrations"
)

// PostgresStorage implements QueryStorage using PostgreSQL
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(config PostgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("PostgreSQL connection test failed: %w\n\n"+
			"Failed to connect to PostgreSQL. Verify:\n"+
			"  - PostgreSQL server is running at %s:%d\n"+
			"  - Database '%s' exists\n"+
			"  - User '%s' has proper permissions", err, config.Host, config.Port, config.Database, config.Username)
	}

	runner := migrations.NewRunner(db, migrations.DialectPostgres)
	if _, err := runner.Apply(ctx, migrations.PostgresMigrations()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate PostgreSQL database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// RecordQuery inserts a query. Recording the same id twice is a no-op.
func (s *PostgresStorage) RecordQuery(ctx context.Context, record domain.QueryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (id, visible, hidden, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
		record.ID, record.Visible, record.Hidden, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// ListQueries returns recorded queries, newest first
func (s *PostgresStorage) ListQueries(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, visible, hidden, created_at FROM queries ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanQueries(rows)
}

// CountQueries returns the number of recorded queries
func (s *PostgresStorage) CountQueries(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count queries: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// Health checks if the database is reachable
func (s *PostgresStorage) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *PostgresStorage) DB() *sql.DB {
	return s.db
}

func (s *PostgresStorage) Dialect() string {
	return migrations.DialectPostgres
}
