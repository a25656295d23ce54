package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cobra "github.com/spf13/cobra"

	container "github.com/inference-gateway/editor-assistant/internal/container"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assistant page server",
	Long: `Start the server the assistant page connects to. Each page that connects
to /ws gets its own browser host, which binds the native API, loads the
assistant URL and configures the agent environment once the page is ready.

The server also exposes:
  - GET  /api/status   connected pages and their load state
  - POST /api/inspect  describe the widget under the cursor of a UI snapshot
                       and send the question to the newest page
  - GET  /healthz      liveness check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}
		if host, _ := cmd.Flags().GetString("host"); host != "" {
			cfg.Server.Host = host
		}

		services := container.NewServiceContainer(cfg, V)

		if store := services.GetStorage(); store != nil {
			if err := store.Health(cmd.Context()); err != nil {
				logger.Warn("Storage health check failed", "error", err)
				fmt.Printf("Warning: query history may not be available: %v\n", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := services.GetPageServer().Addr()
		fmt.Printf("\nAssistant page server listening on ws://%s/ws\n", addr)
		fmt.Printf("Status available at http://%s/api/status\n\n", addr)

		if err := services.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Println("Assistant page server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "server port (default: 8787)")
	serveCmd.Flags().String("host", "", "server host (default: 127.0.0.1)")
}
