package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"smgmd/internal/feed"
	"smgmd/internal/lang"
)

// timeLayout is the {current_time} stamp format.
const timeLayout = "2006-01-02 15:04:05"

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Render fills tmpl with the document's fields and returns the
// markdown. Per-day fragments keep document order.
func Render(doc *feed.Document, tmpl *Template, l lang.Language) (string, error) {
	return RenderAt(doc, tmpl, l, time.Now())
}

// RenderAt is Render with an explicit generation time.
func RenderAt(doc *feed.Document, tmpl *Template, l lang.Language, now time.Time) (string, error) {
	var forecasts strings.Builder
	for _, fc := range doc.Forecasts {
		tide := fc.Tide
		if tide == feed.TideSentinel {
			tide = l.TideFallback()
		}

		item, err := substitute(tmpl.ForecastItem, map[string]string{
			"date":        fc.Date,
			"tide":        tide,
			"description": fc.Description,
		})
		if err != nil {
			return "", err
		}
		forecasts.WriteString(item)
	}

	return substitute(tmpl.Main, map[string]string{
		"today_situation": doc.TodaySituation,
		"author":          doc.Author,
		"pubdate":         doc.PubDate,
		"language":        doc.Language,
		"forecasts":       forecasts.String(),
		"current_time":    now.Format(timeLayout),
	})
}

// substitute replaces every {name} in s with its value. A name with no
// value is a formatting failure. Substituted values are embedded
// verbatim and never re-scanned.
func substitute(s string, values map[string]string) (string, error) {
	var unknown string
	out := placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok {
			if unknown == "" {
				unknown = name
			}
			return m
		}
		return v
	})
	if unknown != "" {
		return "", fmt.Errorf("unrecognized placeholder {%s} in template", unknown)
	}
	return out, nil
}
