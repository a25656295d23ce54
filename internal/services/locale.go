package services

import (
	"os"
	"strings"

	language "golang.org/x/text/language"
)

const defaultLanguage = "en"

var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// LocaleProvider resolves the editor language from configuration or the
// process environment.
type LocaleProvider struct {
	configured string
	lookupEnv  func(string) (string, bool)
}

// NewLocaleProvider creates a provider. A non-empty configured locale wins
// over the environment.
func NewLocaleProvider(configured string) *LocaleProvider {
	return &LocaleProvider{configured: configured, lookupEnv: os.LookupEnv}
}

// Language returns the base language code, e.g. "fr" for fr_CA.UTF-8
func (p *LocaleProvider) Language() string {
	if code, ok := baseLanguage(p.configured); ok {
		return code
	}
	for _, name := range localeEnvVars {
		value, ok := p.lookupEnv(name)
		if !ok {
			continue
		}
		if code, ok := baseLanguage(value); ok {
			return code
		}
	}
	return defaultLanguage
}

func baseLanguage(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", false
	}
	return base.String(), true
}
