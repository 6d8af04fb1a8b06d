package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/juanmillal/proyecto-grupo-11/internal/config"
)

// Client calls an external JSON resource API. It is constructed from explicit
// configuration at startup; there are no package-level instances and no
// credentials baked into source.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the configured remote API.
func NewClient(cfg config.RemoteConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Get fetches a resource and decodes the JSON body.
func (c *Client) Get(ctx context.Context, endpoint string) (any, int, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// Post creates a resource from the payload.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (any, int, error) {
	return c.do(ctx, http.MethodPost, endpoint, payload)
}

// Put replaces a resource with the payload.
func (c *Client) Put(ctx context.Context, endpoint string, payload any) (any, int, error) {
	return c.do(ctx, http.MethodPut, endpoint, payload)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, endpoint string) (any, int, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) (any, int, error) {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		// Some endpoints answer with an empty body; the status code still counts.
		decoded = nil
	}

	return decoded, resp.StatusCode, nil
}
