package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	cobra "github.com/spf13/cobra"

	container "github.com/inference-gateway/editor-assistant/internal/container"
	storage "github.com/inference-gateway/editor-assistant/internal/infra/storage"
	migrations "github.com/inference-gateway/editor-assistant/internal/infra/storage/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run query history migrations",
	Long: `Apply pending migrations to the query history database.

Migrations are tracked in the schema_migrations table so each one is applied
once. Only the sqlite and postgres backends have a schema; memory, jsonl and
redis storage need no migrations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		if !cfg.Storage.Enabled {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Query history is disabled")
			return nil
		}

		store, err := storage.NewStorage(container.StorageConfigFrom(cfg.Storage))
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to close storage: %v\n", err)
			}
		}()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		statusOnly, _ := cmd.Flags().GetBool("status")
		return runMigrations(ctx, cmd.OutOrStdout(), store, statusOnly)
	},
}

func init() {
	migrateCmd.Flags().Bool("status", false, "Show migration status without applying migrations")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(ctx context.Context, w io.Writer, store storage.QueryStorage, statusOnly bool) error {
	schema, ok := store.(storage.SchemaStorage)
	if !ok {
		_, err := fmt.Fprintln(w, "This storage backend does not require migrations")
		return err
	}

	known, err := migrations.ForDialect(schema.Dialect())
	if err != nil {
		return err
	}
	runner := migrations.NewRunner(schema.DB(), schema.Dialect())

	if !statusOnly {
		applied, err := runner.Apply(ctx, known)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		if applied == 0 {
			_, _ = fmt.Fprintf(w, "%s migrations are up to date\n", schema.Dialect())
		} else {
			_, _ = fmt.Fprintf(w, "Applied %d %s migration(s)\n", applied, schema.Dialect())
		}
	}

	statuses, err := runner.Status(ctx, known)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	for _, status := range statuses {
		mark := "pending"
		if status.Applied {
			mark = "applied"
		}
		if _, err := fmt.Fprintf(w, "  %s  %-8s %s\n", status.Version, mark, status.Description); err != nil {
			return err
		}
	}
	return nil
}
