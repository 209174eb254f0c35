// Package render loads markdown templates and fills them with feed data.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"smgmd/internal/lang"
)

// Marker separates the outer document template from the repeated
// per-day fragment within a template file.
const Marker = "<!-- FORECAST_ITEM -->"

// ErrNoMarker reports a template file missing the fragment separator.
var ErrNoMarker = errors.New("template missing " + Marker + " separator")

// Template is the pair of format strings a rendering run needs.
type Template struct {
	Main         string
	ForecastItem string
}

// Load reads a template file and splits it on the marker. Both halves
// are trimmed. A missing file or missing marker is recoverable: the
// caller falls back to the built-in default for the active language.
func Load(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	main, item, found := strings.Cut(string(content), Marker)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoMarker, path)
	}

	return &Template{
		Main:         strings.TrimSpace(main),
		ForecastItem: strings.TrimSpace(item),
	}, nil
}

// List returns the .md template files under dir, sorted by name.
// A missing directory yields the built-in default names.
func List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		names := make([]string, 0, len(lang.All()))
		for _, l := range lang.All() {
			names = append(names, l.DefaultTemplate())
		}
		sort.Strings(names)
		return names
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".md" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Default returns the built-in template for a language.
func Default(l lang.Language) *Template {
	switch l {
	case lang.Chinese:
		return &Template{
			Main: `
# 澳門天氣預報 Weather Forecast Macau

## 今日天氣情況 Today's Situation
{today_situation}

## 系統資訊 System Information
- **發布機構**: {author}
- **發布時間**: {pubdate}
- **語言**: {language}

## 天氣預報 Weather Forecast

{forecasts}

---
*最後更新 Last Updated: {current_time}*
`,
			ForecastItem: `
### {date}
**潮汐 Astronomical Tide**: {tide}

{description}

---
`,
		}
	case lang.Portuguese:
		return &Template{
			Main: `
# Previsão Meteorológica de Macau

## Situação Meteorológica de Hoje
{today_situation}

## Informação do Sistema
- **Entidade**: {author}
- **Data de Publicação**: {pubdate}
- **Idioma**: {language}

## Previsão Meteorológica

{forecasts}

---
*Última atualização: {current_time}*
`,
			ForecastItem: `
### {date}
**Maré Astronómica**: {tide}

{description}

---
`,
		}
	default:
		return &Template{
			Main: `
# Macau Weather Forecast

## Today's Weather Situation
{today_situation}

## System Information
- **Issuing Authority**: {author}
- **Publication Time**: {pubdate}
- **Language**: {language}

## Weather Forecast

{forecasts}

---
*Last Updated: {current_time}*
`,
			ForecastItem: `
### {date}
**Astronomical Tide**: {tide}

{description}

---
`,
		}
	}
}
