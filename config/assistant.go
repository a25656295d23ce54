package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"regexp/syntax"
	"sort"
	"strings"

	viper "github.com/spf13/viper"

	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	// AssistantConfigFilename is the file searched for in the config directories
	AssistantConfigFilename = "AIAssistant.json"

	// DefaultMainURL is the assistant page loaded when no main_url is configured
	DefaultMainURL = "https://dev.epicgames.com/community/assistant/embedded"

	restrictedDirName = "Restricted"
)

// DefaultAllowedURLRegexes are the URL patterns, besides the main URL, that
// may be opened inside the assistant view. They cover non-redirect URLs
// needed for sign-in.
var DefaultAllowedURLRegexes = []string{
	`^data:.*`,
	`^file:.*`,
	`^https://dev\.epicgames\.com/community/api/user_identity/.*`,
	`^https://www\.epicgames\.com/id/.*`,
}

// InternalAllowedURLRegexes are appended to the defaults for internal builds
var InternalAllowedURLRegexes = []string{
	`^https://newassets\.hcaptcha\.com/captcha/.*`,
	`^https://artstation\.cloudflareaccess\.com/.*`,
}

// overrideDirNames are searched before the plain base directories, most
// restricted first.
var overrideDirNames = []string{"NotForLicensees", "NoRedist", "LimitedAccess"}

// AssistantConfig is the content of AIAssistant.json
type AssistantConfig struct {
	// MainURL is the assistant page. Empty means DefaultMainURL.
	MainURL string `json:"main_url" mapstructure:"main_url"`

	// AllowedURLRegexes are added to the default allow-list.
	AllowedURLRegexes []string `json:"allowed_url_regexes" mapstructure:"allowed_url_regexes"`

	// Internal adds InternalAllowedURLRegexes to the allow-list.
	Internal bool `json:"-" mapstructure:"-"`
}

// DefaultAssistantConfig returns the configuration used when no file is found
func DefaultAssistantConfig() *AssistantConfig {
	return &AssistantConfig{MainURL: DefaultMainURL}
}

// SearchRoots are the base directories the assistant config is looked up in
type SearchRoots struct {
	ConfigDir              string
	UserDir                string
	VersionAgnosticUserDir string
}

// DefaultSearchRoots derives the base directories for an editor version
func DefaultSearchRoots(configDir, version string) SearchRoots {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		userConfigDir = filepath.Join(os.TempDir(), "editor-assistant")
	}
	agnostic := filepath.Join(userConfigDir, "editor-assistant")
	return SearchRoots{
		ConfigDir:              configDir,
		UserDir:                filepath.Join(agnostic, version),
		VersionAgnosticUserDir: agnostic,
	}
}

// DefaultSearchDirectories lists the directories searched for
// AIAssistant.json: every restricted override of every root first, then the
// roots themselves.
func DefaultSearchDirectories(roots SearchRoots) []string {
	bases := []string{roots.ConfigDir, roots.UserDir, roots.VersionAgnosticUserDir}

	dirs := make([]string, 0, len(bases)*(len(overrideDirNames)+1))
	for _, override := range overrideDirNames {
		for _, base := range bases {
			if base == "" {
				continue
			}
			dirs = append(dirs, filepath.Join(base, restrictedDirName, override))
		}
	}
	for _, base := range bases {
		if base == "" {
			continue
		}
		dirs = append(dirs, base)
	}
	return dirs
}

// FindAssistantConfigFile returns the first existing AIAssistant.json in
// dirs, or an empty string.
func FindAssistantConfigFile(dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, AssistantConfigFilename)
		logger.Debug("Searching for assistant config", "path", path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ParseAssistantConfig decodes an AIAssistant.json document. Unknown
// fields are ignored.
func ParseAssistantConfig(data []byte) (*AssistantConfig, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse assistant config: %w", err)
	}

	cfg := DefaultAssistantConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode assistant config: %w", err)
	}
	if cfg.MainURL == "" {
		cfg.MainURL = DefaultMainURL
	}
	return cfg, nil
}

// LoadAssistantConfig reads filename. An empty filename, an unreadable file
// or malformed JSON all yield the default configuration; the latter two are
// logged.
func LoadAssistantConfig(filename string) *AssistantConfig {
	if filename == "" {
		return DefaultAssistantConfig()
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		logger.Error("Failed to load assistant config", "path", filename, "error", err)
		return DefaultAssistantConfig()
	}

	cfg, err := ParseAssistantConfig(data)
	if err != nil {
		logger.Error("Failed to parse assistant config", "path", filename, "json", string(data), "error", err)
		return DefaultAssistantConfig()
	}

	logger.Debug("Loaded assistant config", "path", filename, "main_url", cfg.MainURL)
	return cfg
}

// MainURLAsRegex returns an anchored pattern matching exactly MainURL
func (c *AssistantConfig) MainURLAsRegex() string {
	return "^" + regexp.QuoteMeta(c.MainURL) + "$"
}

// AllAllowedURLRegexes returns the main URL pattern followed by the
// defaults and the configured extras.
func (c *AssistantConfig) AllAllowedURLRegexes() []string {
	regexes := []string{c.MainURLAsRegex()}
	regexes = append(regexes, DefaultAllowedURLRegexes...)
	if c.Internal {
		regexes = append(regexes, InternalAllowedURLRegexes...)
	}
	return append(regexes, c.AllowedURLRegexes...)
}

// AllowList compiles the allowed URL patterns. Invalid patterns are
// logged and skipped.
func (c *AssistantConfig) AllowList() *URLAllowList {
	regexes := c.AllAllowedURLRegexes()
	list := &URLAllowList{
		patterns: make([]*regexp.Regexp, 0, len(regexes)),
		origins:  make(map[string]bool),
	}
	for _, expr := range regexes {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			logger.Error("Ignoring invalid allowed URL pattern", "pattern", expr, "error", err)
			continue
		}
		list.patterns = append(list.patterns, pattern)
		if origin, ok := patternOrigin(expr); ok {
			list.origins[origin] = true
		}
	}
	return list
}

// patternOrigin returns the scheme://host an anchored http(s) pattern is
// pinned to. Patterns whose host is not fully literal have no origin.
func patternOrigin(expr string) (string, bool) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return "", false
	}
	re = re.Simplify()
	if re.Op != syntax.OpConcat || len(re.Sub) < 2 ||
		re.Sub[0].Op != syntax.OpBeginText || re.Sub[1].Op != syntax.OpLiteral {
		return "", false
	}

	prefix := string(re.Sub[1].Rune)
	complete := len(re.Sub) == 2 || (len(re.Sub) == 3 && re.Sub[2].Op == syntax.OpEndText)

	scheme, rest, found := strings.Cut(prefix, "://")
	if !found {
		return "", false
	}
	scheme = strings.ToLower(scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		if !complete {
			return "", false
		}
		end = len(rest)
	}
	host := rest[:end]
	if host == "" {
		return "", false
	}
	return scheme + "://" + strings.ToLower(host), true
}

// URLAllowList decides which URLs may load inside the assistant view
type URLAllowList struct {
	patterns []*regexp.Regexp
	origins  map[string]bool
}

// AllowsOrigin reports whether a page served from origin (scheme://host)
// was let in by one of the anchored patterns.
func (l *URLAllowList) AllowsOrigin(origin string) bool {
	origin = strings.ToLower(strings.TrimSuffix(origin, "/"))
	return l.origins[origin]
}

// Origins returns the allowed origins, sorted
func (l *URLAllowList) Origins() []string {
	out := make([]string, 0, len(l.origins))
	for origin := range l.origins {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}

// CanLoad reports whether url matches any allowed pattern
func (l *URLAllowList) CanLoad(url string) bool {
	for _, pattern := range l.patterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// Patterns returns the compiled pattern sources in match order
func (l *URLAllowList) Patterns() []string {
	out := make([]string, len(l.patterns))
	for i, pattern := range l.patterns {
		out[i] = pattern.String()
	}
	return out
}
