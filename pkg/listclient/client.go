// Package listclient is the Go client for the shopping-list API: a thin HTTP
// client plus a state controller that applies optimistic updates and
// reconciles with server responses.
package listclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Item mirrors the item wire shape. CreatedAt stays an RFC3339 string, which
// sorts correctly lexicographically.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Bought    bool   `json:"bought"`
	Quantity  int    `json:"quantity"`
	Order     int    `json:"order"`
	CreatedAt string `json:"createdAt"`
}

// Settings mirrors the list-settings wire shape.
type Settings struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// UpdateItemRequest is the partial update body. Nil fields are omitted.
type UpdateItemRequest struct {
	Bought   *bool `json:"bought,omitempty"`
	Quantity *int  `json:"quantity,omitempty"`
	Order    *int  `json:"order,omitempty"`
}

// APIError is a non-2xx response. Message carries the server's error message
// verbatim so the UI can surface it unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 API response.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the shopping-list HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends a request and decodes the JSON response into out (when out is
// non-nil and the server answered with a body). A 204 leaves out untouched
// and returns found=false so callers can tell deletion signals apart.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (found bool, err error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := "Request failed"
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			message = errBody.Message
		}
		return false, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
	}
	return true, nil
}

// Items fetches all items, server-sorted by order then creation time.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	if _, err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem creates an item or bumps the quantity of a case-insensitive name
// match; the response is authoritative either way.
func (c *Client) AddItem(ctx context.Context, name string) (*Item, error) {
	var item Item
	if _, err := c.do(ctx, http.MethodPost, "/items", map[string]string{"name": name}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update. A (nil, nil) result is the deletion
// signal: the server removed the item because its quantity reached zero.
func (c *Client) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	var item Item
	found, err := c.do(ctx, http.MethodPut, "/items/"+id, req, &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &item, nil
}

// DeleteItem removes an item by id.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/items/"+id, nil, nil)
	return err
}

// ListSettings fetches the list title, creating the default server-side on
// first access.
func (c *Client) ListSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if _, err := c.do(ctx, http.MethodGet, "/list", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SetListTitle upserts the list title.
func (c *Client) SetListTitle(ctx context.Context, title string) (*Settings, error) {
	var settings Settings
	if _, err := c.do(ctx, http.MethodPut, "/list", map[string]string{"title": title}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
