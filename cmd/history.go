package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	cobra "github.com/spf13/cobra"

	container "github.com/inference-gateway/editor-assistant/internal/container"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	storage "github.com/inference-gateway/editor-assistant/internal/infra/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the messages submitted to the assistant",
	Long: `List the recorded assistant queries, newest first. Each entry shows the
visible message and, when one was attached, the hidden context sent with it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		if !cfg.Storage.Enabled {
			return fmt.Errorf("query history is disabled (set storage.enabled to true)")
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

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		asJSON, _ := cmd.Flags().GetBool("json")

		records, err := store.ListQueries(cmd.Context(), limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list queries: %w", err)
		}
		total, err := store.CountQueries(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count queries: %w", err)
		}
		return writeHistory(cmd.OutOrStdout(), records, total, asJSON)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of queries to show")
	historyCmd.Flags().Int("offset", 0, "number of newest queries to skip")
	historyCmd.Flags().Bool("json", false, "print the queries as JSON")
	rootCmd.AddCommand(historyCmd)
}

func writeHistory(w io.Writer, records []domain.QueryRecord, total int, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{
			"total":   total,
			"queries": records,
		})
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No queries recorded")
		return err
	}

	for _, record := range records {
		_, _ = fmt.Fprintf(w, "%s  %s\n", record.CreatedAt.Local().Format("2006-01-02 15:04:05"), record.Visible)
		if hidden := strings.TrimSpace(record.Hidden); hidden != "" {
			for _, line := range strings.Split(hidden, "\n") {
				_, _ = fmt.Fprintf(w, "    | %s\n", line)
			}
		}
	}
	_, err := fmt.Fprintf(w, "\nShowing %d of %d queries\n", len(records), total)
	return err
}
