package services

import (
	"os"
	"path/filepath"
	"testing"

	viper "github.com/spf13/viper"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	config "github.com/inference-gateway/editor-assistant/config"
)

func loadTestConfig(t *testing.T) (*viper.Viper, *config.Config, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0644))

	v := viper.New()
	cfg, err := config.Load(v, path)
	require.NoError(t, err)
	return v, cfg, path
}

func TestConfigService_SetValuePersists(t *testing.T) {
	v, cfg, path := loadTestConfig(t)
	cs := NewConfigService(v, cfg)
	assert.Equal(t, 9000, cs.GetConfig().Server.Port)

	require.NoError(t, cs.SetValue("assistant.uefn", "true"))
	assert.True(t, cs.GetConfig().Assistant.UEFN)

	reloaded, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.True(t, reloaded.Assistant.UEFN)
	assert.Equal(t, 9000, reloaded.Server.Port)
}

func TestConfigService_SetValueRejectsUnknownKey(t *testing.T) {
	v, cfg, _ := loadTestConfig(t)
	cs := NewConfigService(v, cfg)

	err := cs.SetValue("assistant.no_such_key", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration key")
}

func TestConfigService_Reload(t *testing.T) {
	v, cfg, path := loadTestConfig(t)
	cs := NewConfigService(v, cfg)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0644))
	reloaded, err := cs.Reload()
	require.NoError(t, err)
	assert.Equal(t, 9100, reloaded.Server.Port)
	assert.Same(t, reloaded, cs.GetConfig())
}
