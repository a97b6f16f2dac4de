// Package client is a session-holding HTTP client for the nova API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/keremsimsek1907/nova-app/internal/model"
)

const (
	RequestIDHeader     = "X-Request-Id"
	AuthorizationHeader = "Authorization"
)

// ErrUnauthorized is returned when the server rejects the session token.
// The client has already forgotten the token by then.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoSession is returned by protected calls made without a token.
var ErrNoSession = errors.New("not logged in")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken starts the client with an existing session token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client talks to the nova API and holds the session token between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080.
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

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the session token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout forgets the session token. Tokens are not revocable server-side.
func (c *Client) Logout() {
	c.SetToken("")
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, email, password string) (model.UserResponse, error) {
	var out model.UserResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", false, model.RegisterRequest{Email: email, Password: password}, &out)
	return out, err
}

// Login exchanges credentials for a session token and keeps it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, model.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return err
	}
	c.SetToken(out.Token)
	return nil
}

// Me returns the account behind the session token.
func (c *Client) Me(ctx context.Context) (model.UserResponse, error) {
	var out model.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/me", true, nil, &out)
	return out, err
}

// ListItems returns the caller's items, newest first.
func (c *Client) ListItems(ctx context.Context) ([]model.ItemResponse, error) {
	var out []model.ItemResponse
	if err := c.do(ctx, http.MethodGet, "/api/items", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateItem adds an item owned by the caller.
func (c *Client) CreateItem(ctx context.Context, name string) (model.ItemResponse, error) {
	var out model.ItemResponse
	err := c.do(ctx, http.MethodPost, "/api/items", true, model.CreateItemRequest{Name: name}, &out)
	return out, err
}

// DeleteItem removes one of the caller's items. Unknown ids are not an error.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), true, nil, nil)
}

// Status calls the liveness probe.
func (c *Client) Status(ctx context.Context) (model.StatusResponse, error) {
	var out model.StatusResponse
	err := c.do(ctx, http.MethodGet, "/api", false, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token := c.Token()
		if token == "" {
			return ErrNoSession
		}
		req.Header.Set(AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if auth && resp.StatusCode == http.StatusUnauthorized {
		c.Logout()
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
