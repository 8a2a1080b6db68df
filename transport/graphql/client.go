// Package graphql is the outbound HTTP client for the game backend: one
// instance owns one wallet's cookies and browser headers and is never
// shared across wallets.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client posts JSON requests with a fixed outbound header set. The header
// map is replaced wholesale on login transitions rather than mutated by
// the HTTP layer, so persisted sessions rebuild the exact same state.
type Client struct {
	http     *http.Client
	endpoint string
	headers  map[string]string
}

// NewClient builds a client for the given GraphQL endpoint. proxyURI may be
// empty; timeouts bound every call including body read.
func NewClient(endpoint string, headers map[string]string, timeout time.Duration, proxyURI string) (*Client, error) {
	transport := http.DefaultTransport
	if proxyURI != "" {
		proxyURL, err := url.Parse(proxyURI)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %q: %w", proxyURI, err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return &Client{
		http:     &http.Client{Timeout: timeout, Transport: transport},
		endpoint: endpoint,
		headers:  headers,
	}, nil
}

// Headers returns a copy of the current outbound header set.
func (c *Client) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// SetHeader sets one outbound header.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// ReplaceHeaders swaps the whole outbound header set.
func (c *Client) ReplaceHeaders(headers map[string]string) {
	next := make(map[string]string, len(headers))
	for k, v := range headers {
		next[k] = v
	}
	c.headers = next
}

// Do posts a JSON body to an arbitrary URL with the client's header set and
// returns the raw response. The caller owns the body.
func (c *Client) Do(ctx context.Context, rawURL string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", rawURL, err)
	}
	return resp, nil
}

// PostJSON posts a JSON body, requires a 2xx status, and decodes the
// response into out (which may be nil).
func (c *Client) PostJSON(ctx context.Context, rawURL string, body, out any) error {
	resp, err := c.Do(ctx, rawURL, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s: unexpected status %d: %s", rawURL, resp.StatusCode, truncate(raw, 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Send posts a GraphQL document with optional variables and returns the
// response envelope. Application-level errors ride back inside the
// envelope; only transport failures surface as an error.
func (c *Client) Send(ctx context.Context, query string, variables map[string]any) (*Response, error) {
	req := Request{Query: query, Variables: variables}
	var resp Response
	if err := c.PostJSON(ctx, c.endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
