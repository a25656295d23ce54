package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	config "github.com/inference-gateway/editor-assistant/config"
	services "github.com/inference-gateway/editor-assistant/internal/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage assistant configuration",
	Long:  `Inspect and edit the runtime configuration and the assistant page settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathInUse()
		if _, err := os.Stat(path); err == nil {
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if !overwrite {
				return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", path)
			}
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective runtime configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), cfg)
	},
}

var configURLsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Show the assistant page URL and the navigation allow-list",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return err
		}
		assistant, path := cfg.LoadAssistant()
		return writeAssistantURLs(cmd.OutOrStdout(), assistant, path)
	},
}

var configCheckURLCmd = &cobra.Command{
	Use:   "check-url <url>",
	Short: "Check whether the assistant page may navigate to a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return err
		}
		assistant, _ := cfg.LoadAssistant()
		return checkURL(cmd.OutOrStdout(), assistant.AllowList(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value using dot notation",
	Long: `Set a configuration value and write it to the configuration file, e.g.

  assistant config set assistant.uefn true

A running server watching the file picks the change up.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathInUse()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
		}

		cfg, err := config.Load(V, path)
		if err != nil {
			return err
		}
		if err := services.NewConfigService(V, cfg).SetValue(args[0], args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "replace an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configURLsCmd)
	configCmd.AddCommand(configCheckURLCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configPathInUse() string {
	if path, _ := rootCmd.PersistentFlags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

func writeAssistantURLs(w io.Writer, assistant *config.AssistantConfig, path string) error {
	source := path
	if source == "" {
		source = "(built-in defaults)"
	}
	if _, err := fmt.Fprintf(w, "Config: %s\nMain URL: %s\nAllowed URL patterns:\n", source, assistant.MainURL); err != nil {
		return err
	}
	for _, pattern := range assistant.AllowList().Patterns() {
		if _, err := fmt.Fprintf(w, "  %s\n", pattern); err != nil {
			return err
		}
	}
	return nil
}

func checkURL(w io.Writer, allowList *config.URLAllowList, url string) error {
	if allowList.CanLoad(url) {
		_, err := fmt.Fprintf(w, "allowed: %s\n", url)
		return err
	}
	_, _ = fmt.Fprintf(w, "blocked: %s\n", url)
	return fmt.Errorf("navigation to %s is not allowed", url)
}
