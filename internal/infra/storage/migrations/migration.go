package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Dialects understood by Runner
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Migration is one versioned schema change
type Migration struct {
	// Version orders migrations lexically, e.g. "001"
	Version     string
	Description string
	UpSQL       string
	DownSQL     string
}

// Status reports whether a known migration has been applied
type Status struct {
	Version     string
	Description string
	Applied     bool
}

// Runner applies migrations to a database and records them in schema_migrations
type Runner struct {
	db      *sql.DB
	dialect string
}

// NewRunner creates a migration runner for dialect
func NewRunner(db *sql.DB, dialect string) *Runner {
	return &Runner{db: db, dialect: dialect}
}

// ForDialect returns the built-in migrations for dialect
func ForDialect(dialect string) ([]Migration, error) {
	switch dialect {
	case DialectSQLite:
		return SQLiteMigrations(), nil
	case DialectPostgres:
		return PostgresMigrations(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	timestampType := "DATETIME"
	switch r.dialect {
	case DialectSQLite:
	case DialectPostgres:
		timestampType = "TIMESTAMP WITH TIME ZONE"
	default:
		return fmt.Errorf("unsupported dialect: %s", r.dialect)
	}

	createSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at %s NOT NULL
	);`, timestampType)

	if _, err := r.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

func (r *Runner) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (r *Runner) apply(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
	}

	recordSQL := "INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)"
	if r.dialect == DialectPostgres {
		recordSQL = "INSERT INTO schema_migrations (version, description, applied_at) VALUES ($1, $2, $3)"
	}
	if _, err := tx.ExecContext(ctx, recordSQL, migration.Version, migration.Description, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Version, err)
	}
	return nil
}

// Apply runs every pending migration in version order and returns how many ran
func (r *Runner) Apply(ctx context.Context, migrations []Migration) (int, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}

	applied, err := r.applied(ctx)
	if err != nil {
		return 0, err
	}

	pending := sortedByVersion(migrations)
	count := 0
	for _, migration := range pending {
		if applied[migration.Version] {
			continue
		}
		if err := r.apply(ctx, migration); err != nil {
			return count, fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}
		count++
	}
	return count, nil
}

// Status lists migrations with their applied flag, in version order
func (r *Runner) Status(ctx context.Context, migrations []Migration) ([]Status, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}

	var status []Status
	for _, migration := range sortedByVersion(migrations) {
		status = append(status, Status{
			Version:     migration.Version,
			Description: migration.Description,
			Applied:     applied[migration.Version],
		})
	}
	return status, nil
}

func sortedByVersion(migrations []Migration) []Migration {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})
	return sorted
}
