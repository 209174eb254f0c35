package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrParse marks malformed feed XML.
var ErrParse = errors.New("malformed feed XML")

// Fallback literals for optional elements absent upstream.
const (
	NoSituation   = "No data available"
	NoDate        = "Unknown"
	NoDescription = "No description"

	// TideSentinel signals absent tide data; translated at render time.
	TideSentinel = "NIL"
)

// Parse extracts a Document from raw feed XML. Elements are located by
// name anywhere in the tree; forecast order is document order and is
// never re-sorted.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &Document{}
	sawElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true

		switch start.Name.Local {
		case "SysAuthor":
			doc.Author, err = elementText(dec, &start)
		case "SysPubdate":
			doc.PubDate, err = elementText(dec, &start)
		case "SysLanguage":
			doc.Language, err = elementText(dec, &start)
		case "TodaySituation":
			doc.TodaySituation, err = elementText(dec, &start)
		case "WeatherForecast":
			var fc Forecast
			if fc, err = parseForecast(dec, &start); err == nil {
				doc.Forecasts = append(doc.Forecasts, fc)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	if !sawElement {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}

	doc.TodaySituation = fallback(doc.TodaySituation, NoSituation)
	return doc, nil
}

// parseForecast consumes one WeatherForecast element.
func parseForecast(dec *xml.Decoder, start *xml.StartElement) (Forecast, error) {
	var raw struct {
		ValidFor           string `xml:"ValidFor"`
		WeatherDescription string `xml:"WeatherDescription"`
		AstronomicalTide   string `xml:"AstronomicalTide"`
	}
	if err := dec.DecodeElement(&raw, start); err != nil {
		return Forecast{}, err
	}

	return Forecast{
		Date:        fallback(raw.ValidFor, NoDate),
		Description: fallback(raw.WeatherDescription, NoDescription),
		Tide:        fallback(raw.AstronomicalTide, TideSentinel),
	}, nil
}

// elementText consumes an element and returns its trimmed text content.
func elementText(dec *xml.Decoder, start *xml.StartElement) (string, error) {
	var s string
	if err := dec.DecodeElement(&s, start); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// fallback substitutes def for empty or whitespace-only values.
func fallback(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
