// Package feed fetches and parses the SMG weather forecast XML feeds.
package feed

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultUserAgent = "smgmd/1.0"

// Client handles feed endpoint interactions.
type Client struct {
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new feed client. An empty userAgent or
// non-positive timeout selects the defaults.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the raw XML body from url.
func (c *Client) Fetch(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed error: %d %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
