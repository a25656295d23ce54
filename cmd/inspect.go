package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	cobra "github.com/spf13/cobra"

	inspector "github.com/inference-gateway/editor-assistant/internal/inspector"
	web "github.com/inference-gateway/editor-assistant/internal/web"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.yaml>",
	Short: "Describe the widget under the cursor in a UI snapshot",
	Long: `Read a YAML snapshot of the editor's widget tree and print the question the
assistant would be asked about the widget under the cursor: the visible
prompt and the hidden instructions with their context.

With --send the snapshot is posted to a running server, which submits the
question to the most recently connected assistant page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		send, _ := cmd.Flags().GetBool("send")
		asJSON, _ := cmd.Flags().GetBool("json")

		if send {
			cfg, err := getConfigFromViper()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			url := fmt.Sprintf("http://%s:%d/api/inspect", cfg.Server.Host, cfg.Server.Port)
			return sendSnapshot(cmd.OutOrStdout(), url, data, asJSON)
		}

		snapshot, err := inspector.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		query, err := inspector.Describe(snapshot)
		if err != nil {
			return err
		}
		return writeInspection(cmd.OutOrStdout(), query.Visible(), query.Hidden(), asJSON)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("send", false, "post the snapshot to the running server")
	inspectCmd.Flags().Bool("json", false, "print the result as JSON")
}

func writeInspection(w io.Writer, visible, hidden string, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]string{"visible": visible, "hidden": hidden})
	}
	_, err := fmt.Fprintf(w, "Visible:\n  %s\n\nHidden:\n  %s\n", visible, hidden)
	return err
}

func sendSnapshot(w io.Writer, url string, snapshot []byte, asJSON bool) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/yaml", bytes.NewReader(snapshot))
	if err != nil {
		return fmt.Errorf("failed to reach assistant server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server rejected snapshot (%d): %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var result web.InspectResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode server response: %w", err)
	}
	return writeInspection(w, result.Visible, result.Hidden, asJSON)
}
