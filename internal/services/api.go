package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/guitarkit/strum/internal/shared"
)

// Client is the single HTTP client shared by all API surfaces.
//
// It owns the bearer token: SetToken and the per-request snapshot use one
// lock, so logout takes effect before any request dispatched afterwards.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a new catalog API client.
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// SetToken arms the Authorization header for all subsequent requests.
// An empty token removes the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently armed bearer token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs a request against the backend, decoding a JSON response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(data), "application/json", out)
}

func (c *Client) post(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, nil, "", out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// formFile names a local file submitted as a multipart form field.
type formFile struct {
	field string
	path  string
}

// postForm submits text fields and optional files as a multipart form.
func (c *Client) postForm(ctx context.Context, path string, fields map[string]string, files []formFile, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	for field, value := range fields {
		if err := form.WriteField(field, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", field, err)
		}
	}

	for _, file := range files {
		if file.path == "" {
			continue
		}
		f, err := os.Open(file.path)
		if err != nil {
			return fmt.Errorf("%w: cannot open %s: %v", shared.ErrInvalidInput, file.path, err)
		}
		part, err := form.CreateFormFile(file.field, filepath.Base(file.path))
		if err != nil {
			f.Close()
			return fmt.Errorf("failed to create form file %s: %w", file.field, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return fmt.Errorf("failed to copy %s into form: %w", file.path, err)
		}
		f.Close()
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, form.FormDataContentType(), out)
}

// apiError maps an error response onto the shared taxonomy, carrying the
// backend's detail message when present.
func apiError(status int, body []byte) error {
	base := shared.ErrAPIRequest
	switch {
	case status == http.StatusUnauthorized:
		base = shared.ErrUnauthorized
	case status == http.StatusForbidden:
		base = shared.ErrForbidden
	case status == http.StatusNotFound:
		base = shared.ErrNotFound
	case status == http.StatusConflict:
		base = shared.ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		base = shared.ErrInvalidInput
	case status >= 500:
		base = shared.ErrServiceUnavailable
	}

	if detail := errorDetail(body); detail != "" {
		return fmt.Errorf("%w: status %d: %s", base, status, detail)
	}
	return fmt.Errorf("%w: status %d", base, status)
}

// errorDetail extracts the backend's {"detail": "..."} message, best effort.
func errorDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	return ""
}
