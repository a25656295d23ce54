package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"

	config "github.com/inference-gateway/editor-assistant/config"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

// V is the viper instance holding the runtime configuration
var V *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Host for the in-editor AI assistant panel",
	Long: `Hosts the web-based AI assistant panel for the editor. The assistant page
connects over a websocket; the host polices its navigation, configures the
agent environment, queues conversation messages until the page is ready and
runs native scripts the page asks for.

Use 'assistant serve' to start the page server or 'assistant inspect' to
describe the widget under the cursor in a UI snapshot.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the configuration")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", envFile, err)
	}

	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	V = viper.New()
	cfg, err := config.Load(V, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if err := logger.Init(verbose || cfg.Logging.Verbose, cfg.Logging.Dir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}
}

// loadEnvFile exports the variables of a dotenv file. Variables already set
// in the environment win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// getConfigFromViper decodes the runtime configuration loaded by initConfig
func getConfigFromViper() (*config.Config, error) {
	if V == nil {
		V = viper.New()
		return config.Load(V, "")
	}

	cfg := &config.Config{}
	if err := V.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
