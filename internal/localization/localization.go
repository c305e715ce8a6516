// Package localization provides functionality for internationalization (i18n).
// It loads translation strings from JSON files and provides a simple way to get
// localized strings for different languages.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Localizer manages the translations for the application.
// It holds a map of languages, each with its own map of translation keys and values.
type Localizer struct {
	translations map[string]map[string]string
	fallback     string
	mu           sync.RWMutex

	// supported is matched against Accept-Language; index 0 is the fallback.
	supported []string
	matcher   language.Matcher
}

// NewLocalizer creates and returns a new Localizer instance.
// It loads all translations from the provided directory path.
// The directory should contain JSON files named with the language code (e.g., "ko.json").
// Keys missing from a language are looked up in the fallback language.
func NewLocalizer(path, fallback string) (*Localizer, error) {
	l := &Localizer{
		translations: make(map[string]map[string]string),
		fallback:     fallback,
	}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		filePath := filepath.Join(path, file.Name())

		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse localization file %s: %w", file.Name(), err)
		}

		l.translations[lang] = translations
	}

	l.buildMatcher()
	return l, nil
}

// buildMatcher puts the fallback language first so that it is also the
// matcher's default.
func (l *Localizer) buildMatcher() {
	l.supported = []string{l.fallback}
	for _, lang := range l.Languages() {
		if lang != l.fallback {
			l.supported = append(l.supported, lang)
		}
	}

	tags := make([]language.Tag, len(l.supported))
	for i, lang := range l.supported {
		tags[i] = language.Make(lang)
	}
	l.matcher = language.NewMatcher(tags)
}

// GetString returns the localized string for a given key and language.
// If the language or the key is not found, it returns the key itself as a fallback.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if langTranslations, ok := l.translations[lang]; ok {
		if value, ok := langTranslations[key]; ok {
			return value
		}
	}

	if lang != l.fallback {
		if fbTranslations, ok := l.translations[l.fallback]; ok {
			if value, ok := fbTranslations[key]; ok {
				return value
			}
		}
	}

	return key
}

// Format is GetString followed by fmt.Sprintf with args.
func (l *Localizer) Format(lang, key string, args ...any) string {
	return fmt.Sprintf(l.GetString(lang, key), args...)
}

// Languages lists the loaded language codes in sorted order.
func (l *Localizer) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Match picks the loaded language that best serves an Accept-Language
// header ("en-US,en;q=0.9,ko;q=0.8"). Quality values order the preferences
// and q=0 marks a language as unacceptable. Anything unmatched gets the
// fallback language.
func (l *Localizer) Match(acceptLanguage string) string {
	desired, q, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return l.fallback
	}

	acceptable := make([]language.Tag, 0, len(desired))
	for i, tag := range desired {
		if q[i] > 0 {
			acceptable = append(acceptable, tag)
		}
	}
	if len(acceptable) == 0 {
		return l.fallback
	}

	_, index, confidence := l.matcher.Match(acceptable...)
	if confidence == language.No {
		return l.fallback
	}
	return l.supported[index]
}
