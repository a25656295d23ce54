package services

import (
	"fmt"
	"sync"

	viper "github.com/spf13/viper"

	config "github.com/inference-gateway/editor-assistant/config"
)

// ConfigService reloads and edits the runtime configuration file
type ConfigService struct {
	viper  *viper.Viper
	config *config.Config
	mu     sync.RWMutex
}

// NewConfigService creates a new config service
func NewConfigService(v *viper.Viper, cfg *config.Config) *ConfigService {
	return &ConfigService{
		viper:  v,
		config: cfg,
	}
}

// Reload re-reads the configuration file
func (cs *ConfigService) Reload() (*config.Config, error) {
	if err := cs.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to re-read config file: %w", err)
	}
	return cs.decode()
}

func (cs *ConfigService) decode() (*config.Config, error) {
	newConfig := &config.Config{}
	if err := cs.viper.Unmarshal(newConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cs.mu.Lock()
	cs.config = newConfig
	cs.mu.Unlock()
	return newConfig, nil
}

// GetConfig returns the current config
func (cs *ConfigService) GetConfig() *config.Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.config
}

// SetValue sets a value using dot notation and writes the whole
// configuration back to the file in use.
func (cs *ConfigService) SetValue(key, value string) error {
	if !cs.viper.IsSet(key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	filename := cs.viper.ConfigFileUsed()
	if filename == "" {
		return fmt.Errorf("no config file is currently being used")
	}

	cs.viper.Set(key, value)

	newConfig, err := cs.decode()
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := newConfig.Save(filename); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
