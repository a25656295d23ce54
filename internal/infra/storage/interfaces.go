package storage

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

// QueryStorage persists the user messages submitted to the assistant
type QueryStorage interface {
	domain.QueryRecorder

	// ListQueries returns recorded queries, newest first
	ListQueries(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error)

	// CountQueries returns how many queries are recorded
	CountQueries(ctx context.Context) (int, error)

	// Close closes the storage connection
	Close() error

	// Health checks if the storage is healthy and reachable
	Health(ctx context.Context) error
}

// StorageConfig contains configuration for storage backends
type StorageConfig struct {
	// Type specifies the storage backend type (memory, jsonl, sqlite, postgres, redis)
	Type string `json:"type" yaml:"type"`

	JSONL    JsonlStorageConfig `json:"jsonl,omitempty" yaml:"jsonl,omitempty"`
	SQLite   SQLiteConfig       `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
	Postgres PostgresConfig     `json:"postgres,omitempty" yaml:"postgres,omitempty"`
	Redis    RedisConfig        `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// JsonlStorageConfig contains JSONL file settings
type JsonlStorageConfig struct {
	Path string `json:"path" yaml:"path"`
}

// SQLiteConfig contains SQLite-specific configuration
type SQLiteConfig struct {
	Path string `json:"path" yaml:"path"`
}

// PostgresConfig contains Postgres-specific configuration
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	SSLMode  string `json:"ssl_mode" yaml:"ssl_mode"`
}

// DSN returns the lib/pq connection string
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database int    `json:"database" yaml:"database"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	TTL      int    `json:"ttl,omitempty" yaml:"ttl,omitempty"` // TTL in seconds, 0 means no expiration
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

const defaultListLimit = 50

// SchemaStorage is implemented by the SQL backends that track a schema
type SchemaStorage interface {
	QueryStorage

	// DB returns the underlying connection
	DB() *sql.DB

	// Dialect names the migration set the backend uses
	Dialect() string
}
