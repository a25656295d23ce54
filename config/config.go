package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	viper "github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"

	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	// ConfigDirName is the project-local configuration directory
	ConfigDirName = ".assistant"

	// ConfigFileName is the runtime configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. ASSISTANT_SERVER_PORT
	EnvPrefix = "ASSISTANT"
)

// DefaultConfigPath is the runtime configuration file used when --config is not set
var DefaultConfigPath = filepath.Join(ConfigDirName, ConfigFileName)

// Config is the runtime configuration of the assistant host
type Config struct {
	Logging   LoggingConfig           `yaml:"logging" mapstructure:"logging"`
	Server    ServerConfig            `yaml:"server" mapstructure:"server"`
	Assistant AssistantConfigSettings `yaml:"assistant" mapstructure:"assistant"`
	Executor  ExecutorConfig          `yaml:"executor" mapstructure:"executor"`
	Storage   StorageConfig           `yaml:"storage" mapstructure:"storage"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ServerConfig contains the page transport listener settings
type ServerConfig struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"`

	// SessionInactivityMins closes page sessions idle for longer
	SessionInactivityMins int `yaml:"session_inactivity_mins" mapstructure:"session_inactivity_mins"`
}

// AssistantConfigSettings locate the assistant page configuration and
// describe the editor the assistant runs in.
type AssistantConfigSettings struct {
	// ConfigFile bypasses the directory search when set.
	ConfigFile string `yaml:"config_file" mapstructure:"config_file"`
	// ConfigDir is the editor's own config directory searched first.
	ConfigDir     string `yaml:"config_dir" mapstructure:"config_dir"`
	EditorVersion string `yaml:"editor_version" mapstructure:"editor_version"`
	Locale        string `yaml:"locale" mapstructure:"locale"`
	InternalBuild bool   `yaml:"internal_build" mapstructure:"internal_build"`
	ModeVariable  string `yaml:"mode_variable" mapstructure:"mode_variable"`
	UEFN          bool   `yaml:"uefn" mapstructure:"uefn"`
}

// ExecutorConfig configures the native script interpreter
type ExecutorConfig struct {
	Interpreter string   `yaml:"interpreter" mapstructure:"interpreter"`
	Args        []string `yaml:"args" mapstructure:"args"`
	Timeout     int      `yaml:"timeout" mapstructure:"timeout"`
}

// StorageConfig selects where submitted queries are recorded
type StorageConfig struct {
	Enabled  bool                  `yaml:"enabled" mapstructure:"enabled"`
	Type     string                `yaml:"type" mapstructure:"type"`
	JSONL    JSONLStorageConfig    `yaml:"jsonl" mapstructure:"jsonl"`
	SQLite   SQLiteStorageConfig   `yaml:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresStorageConfig `yaml:"postgres" mapstructure:"postgres"`
	Redis    RedisStorageConfig    `yaml:"redis" mapstructure:"redis"`
}

// JSONLStorageConfig contains JSONL history settings
type JSONLStorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SQLiteStorageConfig contains SQLite settings
type SQLiteStorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PostgresStorageConfig contains Postgres settings
type PostgresStorageConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database string `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// RedisStorageConfig contains Redis settings
type RedisStorageConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database int    `yaml:"database" mapstructure:"database"`
	Password string `yaml:"password" mapstructure:"password"`
	TTL      int    `yaml:"ttl" mapstructure:"ttl"`
}

// DefaultConfig returns the built-in runtime configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Dir: filepath.Join(ConfigDirName, "logs"),
		},
		Server: ServerConfig{
			Host:                  "127.0.0.1",
			Port:                  8787,
			ReadTimeout:           15,
			WriteTimeout:          15,
			SessionInactivityMins: 60,
		},
		Assistant: AssistantConfigSettings{
			ConfigDir:     ConfigDirName,
			EditorVersion: "5.7.0",
			ModeVariable:  "assistant.uefn",
		},
		Executor: ExecutorConfig{
			Interpreter: "python3",
			Args:        []string{"-c"},
			Timeout:     30,
		},
		Storage: StorageConfig{
			Enabled: true,
			Type:    "sqlite",
			JSONL: JSONLStorageConfig{
				Path: filepath.Join(ConfigDirName, "history"),
			},
			SQLite: SQLiteStorageConfig{
				Path: filepath.Join(ConfigDirName, "history.db"),
			},
			Postgres: PostgresStorageConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
			Redis: RedisStorageConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
	}
}

// SetDefaults registers DefaultConfig on v so every key is known to viper
// and can be overridden from the environment.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.verbose", d.Logging.Verbose)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.session_inactivity_mins", d.Server.SessionInactivityMins)
	v.SetDefault("assistant.config_file", d.Assistant.ConfigFile)
	v.SetDefault("assistant.config_dir", d.Assistant.ConfigDir)
	v.SetDefault("assistant.editor_version", d.Assistant.EditorVersion)
	v.SetDefault("assistant.locale", d.Assistant.Locale)
	v.SetDefault("assistant.internal_build", d.Assistant.InternalBuild)
	v.SetDefault("assistant.mode_variable", d.Assistant.ModeVariable)
	v.SetDefault("assistant.uefn", d.Assistant.UEFN)
	v.SetDefault("executor.interpreter", d.Executor.Interpreter)
	v.SetDefault("executor.args", d.Executor.Args)
	v.SetDefault("executor.timeout", d.Executor.Timeout)
	v.SetDefault("storage.enabled", d.Storage.Enabled)
	v.SetDefault("storage.type", d.Storage.Type)
	v.SetDefault("storage.jsonl.path", d.Storage.JSONL.Path)
	v.SetDefault("storage.sqlite.path", d.Storage.SQLite.Path)
	v.SetDefault("storage.postgres.host", d.Storage.Postgres.Host)
	v.SetDefault("storage.postgres.port", d.Storage.Postgres.Port)
	v.SetDefault("storage.postgres.database", d.Storage.Postgres.Database)
	v.SetDefault("storage.postgres.username", d.Storage.Postgres.Username)
	v.SetDefault("storage.postgres.password", d.Storage.Postgres.Password)
	v.SetDefault("storage.postgres.ssl_mode", d.Storage.Postgres.SSLMode)
	v.SetDefault("storage.redis.host", d.Storage.Redis.Host)
	v.SetDefault("storage.redis.port", d.Storage.Redis.Port)
	v.SetDefault("storage.redis.database", d.Storage.Redis.Database)
	v.SetDefault("storage.redis.password", d.Storage.Redis.Password)
	v.SetDefault("storage.redis.ttl", d.Storage.Redis.TTL)
}

// Load reads the runtime configuration into v. A missing file is not an
// error; defaults and ASSISTANT_* environment variables still apply.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = DefaultConfigPath
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		logger.Debug("Config file not found, using defaults", "path", configPath)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the directory if needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finish config encoding: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AssistantSearchRoots returns the directories searched for AIAssistant.json
func (c *Config) AssistantSearchRoots() SearchRoots {
	return DefaultSearchRoots(c.Assistant.ConfigDir, c.Assistant.EditorVersion)
}

// LoadAssistant resolves and loads the assistant page configuration
func (c *Config) LoadAssistant() (*AssistantConfig, string) {
	path := c.Assistant.ConfigFile
	if path == "" {
		path = FindAssistantConfigFile(DefaultSearchDirectories(c.AssistantSearchRoots()))
	}
	cfg := LoadAssistantConfig(path)
	cfg.Internal = c.Assistant.InternalBuild
	return cfg, path
}
