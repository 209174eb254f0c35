package feed

import (
	"log"
	"time"
)

// Cache stores fetched feed bodies between runs.
type Cache interface {
	Get(url string) ([]byte, bool, error)
	Set(url string, body []byte, ttl time.Duration) error
}

// Service layers an optional cache over the feed client. A nil cache
// means every call fetches from the network.
type Service struct {
	client *Client
	cache  Cache
	ttl    time.Duration
}

// NewService creates a new feed service. cache may be nil.
func NewService(client *Client, cache Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		client: client,
		cache:  cache,
		ttl:    ttl,
	}
}

// GetDocument returns the parsed feed document for url, using a fresh
// cached body when one is available.
func (s *Service) GetDocument(url string) (*Document, error) {
	body, err := s.getBody(url)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

func (s *Service) getBody(url string) ([]byte, error) {
	if s.cache != nil {
		body, ok, err := s.cache.Get(url)
		if err != nil {
			log.Printf("Cache error: %v", err)
			// Proceed to fetch fresh data on cache error
		} else if ok {
			log.Printf("Using cached feed for %s", url)
			return body, nil
		}
	}

	body, err := s.client.Fetch(url)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(url, body, s.ttl); err != nil {
			log.Printf("Failed to update cache: %v", err)
		}
	}

	return body, nil
}
