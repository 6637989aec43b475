package platform

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mentorkit/pkg/cache"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the base HTTP client. The bearer token transport
// is layered on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache enables response caching in store.
func WithCache(store cache.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}
