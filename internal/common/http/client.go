// internal/common/http/client.go

// Package http wraps the stdlib client with the timeout and connection
// discipline the connectors share.
package http

import (
	"net/http"
	"time"
)

// Client is the outbound HTTP client handed to every connector. One
// instance is shared across the fan-out, so the transport keeps a small
// idle pool per upstream host.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Do executes the request. Deadlines come from the request context set
// by the fan-out runner; the client timeout is a backstop.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
