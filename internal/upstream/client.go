// Package upstream is the typed client for the VriSA REST backend. Every
// durable entity lives there; this package only moves JSON, multipart forms
// and report binaries across, and translates failures into *APIError.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is used when VRISA_API_URL is not set.
const DefaultBaseURL = "http://localhost:8000/api"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is used by tests to point the client at an httptest server.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs a JSON request. An empty token means no Authorization header at
// all; the backend decides what is public. Non-2xx responses come back as
// *APIError, with the session-expired mark set for authenticated 401s (the
// login endpoint is exempt).
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("vrisa api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return c.decode(resp, path, out)
}

// doMultipart sends a multipart form. The content type carries the boundary
// chosen by the multipart writer; nothing else may set it.
func (c *Client) doMultipart(ctx context.Context, path, token string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	c.decorate(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("vrisa api POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	return c.decode(resp, path, out)
}

func (c *Client) decorate(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) decode(resp *http.Response, path string, out any) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, raw, path)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, token, query, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, nil, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, token, nil, body, out)
}
