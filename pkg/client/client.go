// Package client is the typed call wrapper UI code consumes. It is
// thin plumbing over the JSON-over-HTTP surface: callers are expected
// to refetch the list after any acknowledged mutation rather than
// patch local state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Sentinel errors for the failure classes callers present differently.
// RateLimited gets "try again later" messaging; everything else is a
// generic failure toast.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
)

// Todo mirrors the server's todo representation.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Session is the authenticated identity returned by /me.
type Session struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// UpdatePatch holds a partial todo update; nil fields are omitted.
type UpdatePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Client calls the todolist backend with a fixed session token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL authenticating with
// the given session token.
func New(baseURL, sessionToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      sessionToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListTodos fetches all of the caller's todos. order is "asc" or
// "desc"; the empty string takes the server default (newest first).
func (c *Client) ListTodos(ctx context.Context, order string) ([]Todo, error) {
	path := "/todos"
	if order != "" {
		path += "?order=" + url.QueryEscape(order)
	}
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, path, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a todo and returns the server-assigned record.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (*Todo, error) {
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}
	var todo Todo
	if err := c.do(ctx, http.MethodPost, "/todos", body, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo applies a partial update to the todo with the given id.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch UpdatePatch) error {
	return c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id), patch, nil)
}

// DeleteTodo permanently removes the todo with the given id.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// Me returns the caller's session as the server resolved it.
func (c *Client) Me(ctx context.Context) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodGet, "/me", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	}
	return fmt.Errorf("server returned %s: %s", resp.Status, message)
}
