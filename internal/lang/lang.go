// Package lang holds the per-language tables for the SMG forecast feeds.
package lang

import (
	"fmt"
	"strings"
)

// Language identifies one of the three SMG feed languages.
type Language string

const (
	Chinese    Language = "zh"
	Portuguese Language = "pt"
	English    Language = "en"
)

// All returns the supported languages in display order.
func All() []Language {
	return []Language{Chinese, Portuguese, English}
}

var sourceURLs = map[Language]string{
	Chinese:    "https://xml.smg.gov.mo/c_forecast.xml",
	Portuguese: "https://xml.smg.gov.mo/p_forecast.xml",
	English:    "https://xml.smg.gov.mo/e_forecast.xml",
}

var displayNames = map[Language]string{
	Chinese:    "Chinese (中文)",
	Portuguese: "Portuguese (Português)",
	English:    "English",
}

// tideFallbacks replaces the feed's tide sentinel at render time.
var tideFallbacks = map[Language]string{
	Chinese:    "無資料",
	Portuguese: "Sem dados",
	English:    "No data",
}

var defaultTemplates = map[Language]string{
	Chinese:    "default_template.md",
	Portuguese: "default_pt.md",
	English:    "default_en.md",
}

// Parse validates a user-supplied language tag.
func Parse(tag string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := sourceURLs[l]; !ok {
		return "", fmt.Errorf("unsupported language %q (expected zh, pt or en)", tag)
	}
	return l, nil
}

// FromURL detects the feed language from the URL's filename.
// Unrecognized URLs default to Chinese, matching the upstream feeds.
func FromURL(url string) Language {
	switch {
	case strings.Contains(url, "c_forecast.xml"):
		return Chinese
	case strings.Contains(url, "p_forecast.xml"):
		return Portuguese
	case strings.Contains(url, "e_forecast.xml"):
		return English
	default:
		return Chinese
	}
}

// SourceURL returns the SMG feed endpoint for the language.
func (l Language) SourceURL() string {
	return sourceURLs[l]
}

// DisplayName returns the human-readable language name.
func (l Language) DisplayName() string {
	return displayNames[l]
}

// TideFallback returns the string shown when the feed has no tide data.
func (l Language) TideFallback() string {
	return tideFallbacks[l]
}

// DefaultTemplate returns the default template filename for the language.
func (l Language) DefaultTemplate() string {
	return defaultTemplates[l]
}
