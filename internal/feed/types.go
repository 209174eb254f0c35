package feed

// Forecast is one day's entry from the feed.
type Forecast struct {
	Date        string
	Description string
	Tide        string
}

// Document aggregates everything extracted from one feed fetch.
// It is built once per run and never mutated afterwards.
type Document struct {
	Author         string
	PubDate        string
	Language       string
	TodaySituation string
	Forecasts      []Forecast
}
