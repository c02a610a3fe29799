// Package client fetches hooks from a running HookVault web server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/log"
)

const hooksPath = "/api/test"

var logger = log.ForService("client")

// Client is a core.Gateway backed by the /api/test endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the server at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAllHooks downloads the full hook list. Transport failures, non-200
// answers and undecodable bodies are reported as core.ErrDataUnavailable;
// for a 500 the server's error message is kept.
func (c *Client) FetchAllHooks(ctx context.Context) ([]core.Hook, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+hooksPath, nil)
	if err != nil {
		return nil, core.DataUnavailable(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.DataUnavailable(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warnf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, core.DataUnavailable(statusError(resp))
	}

	hooks := []core.Hook{}
	if err := json.NewDecoder(resp.Body).Decode(&hooks); err != nil {
		return nil, core.DataUnavailable(fmt.Errorf("decoding hooks: %w", err))
	}
	if hooks == nil {
		hooks = []core.Hook{}
	}

	logger.Debugf("fetched %d hooks from %s", len(hooks), c.baseURL)
	return hooks, nil
}

func statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		logger.Debugf("failed to read error body: %v", err)
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %w", resp.StatusCode, errors.New(payload.Error))
	}
	return fmt.Errorf("server returned %s", resp.Status)
}
