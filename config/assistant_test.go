package config

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

func writeAssistantConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, AssistantConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultAssistantConfig(t *testing.T) {
	cfg := LoadAssistantConfig("")
	assert.Equal(t, DefaultMainURL, cfg.MainURL)
	assert.Empty(t, cfg.AllowedURLRegexes)

	all := cfg.AllAllowedURLRegexes()
	require.Len(t, all, len(DefaultAllowedURLRegexes)+1)
	assert.Equal(t, `^https://dev\.epicgames\.com/community/assistant/embedded$`, all[0])
	assert.Equal(t, DefaultAllowedURLRegexes, all[1:])
}

func TestMainURLAsRegex(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://just.a.test/foo/bar", want: `^https://just\.a\.test/foo/bar$`},
		{url: "https://x.test/a?b=(c)|[d]{e}^$*+\\", want: `^https://x\.test/a\?b=\(c\)\|\[d\]\{e\}\^\$\*\+\\$`},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := &AssistantConfig{MainURL: tt.url}
			assert.Equal(t, tt.want, cfg.MainURLAsRegex())
			assert.True(t, cfg.AllowList().CanLoad(tt.url))
		})
	}
}

func TestLoadAssistantConfig_Overrides(t *testing.T) {
	path := writeAssistantConfig(t, t.TempDir(), `{
		"main_url": "https://just.a.test/foo/bar",
		"allowed_url_regexes": ["^https://www\\.epic\\.com/new_login/endpoint.*"],
		"unknown_field": 42
	}`)

	cfg := LoadAssistantConfig(path)
	assert.Equal(t, "https://just.a.test/foo/bar", cfg.MainURL)

	all := cfg.AllAllowedURLRegexes()
	require.Len(t, all, len(DefaultAllowedURLRegexes)+2)
	assert.Equal(t, `^https://just\.a\.test/foo/bar$`, all[0])
	assert.Equal(t, `^https://www\.epic\.com/new_login/endpoint.*`, all[len(all)-1])
}

func TestLoadAssistantConfig_EmptyMainURLUsesDefault(t *testing.T) {
	path := writeAssistantConfig(t, t.TempDir(), `{"main_url": ""}`)
	assert.Equal(t, DefaultMainURL, LoadAssistantConfig(path).MainURL)
}

func TestLoadAssistantConfig_FailuresFallBackToDefaults(t *testing.T) {
	logs, restore := logger.Capture()
	defer restore()

	dir := t.TempDir()
	malformed := writeAssistantConfig(t, dir, `{"main_url": `)

	cfg := LoadAssistantConfig(malformed)
	assert.Equal(t, DefaultAssistantConfig(), cfg)

	cfg = LoadAssistantConfig(filepath.Join(dir, "missing.json"))
	assert.Equal(t, DefaultAssistantConfig(), cfg)

	assert.Equal(t, 1, logs.FilterMessage("Failed to parse assistant config").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to load assistant config").Len())
}

func TestInternalAllowList(t *testing.T) {
	cfg := DefaultAssistantConfig()
	cfg.Internal = true
	cfg.AllowedURLRegexes = []string{`^https://extra\.test/.*`}

	all := cfg.AllAllowedURLRegexes()
	require.Len(t, all, 1+len(DefaultAllowedURLRegexes)+len(InternalAllowedURLRegexes)+1)
	assert.Equal(t, `^https://extra\.test/.*`, all[len(all)-1])
	assert.True(t, cfg.AllowList().CanLoad("https://newassets.hcaptcha.com/captcha/v1/abc"))
}

func TestAllowList(t *testing.T) {
	cfg := &AssistantConfig{
		MainURL:           "https://just.a.test/foo/bar",
		AllowedURLRegexes: []string{`^https://broken(`, `^https://ok\.test/.*`},
	}

	logs, restore := logger.Capture()
	defer restore()

	list := cfg.AllowList()
	assert.Equal(t, 1, logs.FilterMessage("Ignoring invalid allowed URL pattern").Len())
	assert.Len(t, list.Patterns(), len(DefaultAllowedURLRegexes)+2)

	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://just.a.test/foo/bar", want: true},
		{url: "https://just.a.test/foo/bar/baz", want: false},
		{url: "https://justXa.test/foo/bar", want: false},
		{url: "https://www.epicgames.com/id/login", want: true},
		{url: "data:text/html,hello", want: true},
		{url: "file:///tmp/index.html", want: true},
		{url: "https://ok.test/anything", want: true},
		{url: "https://unrelated.example.com/", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, list.CanLoad(tt.url))
		})
	}
}

func TestDefaultSearchDirectories(t *testing.T) {
	roots := SearchRoots{ConfigDir: "engine", UserDir: "user", VersionAgnosticUserDir: "agnostic"}
	dirs := DefaultSearchDirectories(roots)

	expected := []string{
		filepath.Join("engine", "Restricted", "NotForLicensees"),
		filepath.Join("user", "Restricted", "NotForLicensees"),
		filepath.Join("agnostic", "Restricted", "NotForLicensees"),
		filepath.Join("engine", "Restricted", "NoRedist"),
		filepath.Join("user", "Restricted", "NoRedist"),
		filepath.Join("agnostic", "Restricted", "NoRedist"),
		filepath.Join("engine", "Restricted", "LimitedAccess"),
		filepath.Join("user", "Restricted", "LimitedAccess"),
		filepath.Join("agnostic", "Restricted", "LimitedAccess"),
		"engine",
		"user",
		"agnostic",
	}
	assert.Equal(t, expected, dirs)
}

func TestFindAssistantConfigFile(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")
	third := filepath.Join(root, "third")

	assert.Empty(t, FindAssistantConfigFile([]string{first, second, third}))

	expected := writeAssistantConfig(t, second, `{}`)
	writeAssistantConfig(t, third, `{}`)

	assert.Equal(t, expected, FindAssistantConfigFile([]string{first, second, third}))
}

func TestAllowListOrigins(t *testing.T) {
	cfg := DefaultAssistantConfig()
	assert.Equal(t, []string{"https://dev.epicgames.com", "https://www.epicgames.com"}, cfg.AllowList().Origins())

	cfg.Internal = true
	cfg.AllowedURLRegexes = []string{
		`^https://Extra\.test:8443/.*`,
		`https://unanchored\.test/.*`,
		`^https://wild.*\.test/`,
		`^https://partial`,
		`^https://(a|b)\.test/`,
		`^http://exact\.test$`,
	}
	assert.Equal(t, []string{
		"http://exact.test",
		"https://artstation.cloudflareaccess.com",
		"https://dev.epicgames.com",
		"https://extra.test:8443",
		"https://newassets.hcaptcha.com",
		"https://partial",
		"https://www.epicgames.com",
	}, cfg.AllowList().Origins())
}

func TestAllowsOrigin(t *testing.T) {
	list := (&AssistantConfig{MainURL: "https://assistant.test/app"}).AllowList()

	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "https://assistant.test", want: true},
		{origin: "https://assistant.test/", want: true},
		{origin: "HTTPS://ASSISTANT.TEST", want: true},
		{origin: "https://www.epicgames.com", want: true},
		{origin: "http://assistant.test", want: false},
		{origin: "https://assistant.test.evil.example", want: false},
		{origin: "https://evil.example", want: false},
		{origin: "null", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, list.AllowsOrigin(tt.origin))
		})
	}
}
