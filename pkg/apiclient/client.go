// Package apiclient is a typed Go client for the Ideas.net REST API. It
// attaches the bearer token from an injectable TokenStore to every request,
// clears the store and fires OnUnauthorized on any 401, and caches GET
// responses by resource key with invalidation on mutation.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultRetries = 2

// TokenStore holds the bearer token between requests.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore is the default in-process TokenStore.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// APIError is the decoded {error, message?, fields?} body plus the HTTP
// status.
type APIError struct {
	Status  int      `json:"-"`
	Err     string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Message)
	}
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	retries    int

	// OnUnauthorized runs after any 401 response, once the token store
	// has been cleared. The SPA equivalent redirects to login.
	OnUnauthorized func()

	mu    sync.Mutex
	cache map[string][]byte
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     NewMemoryTokenStore(),
		retries:    defaultRetries,
		cache:      make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens exposes the underlying store, e.g. to seed a token recovered from
// the OAuth redirect.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// do performs one request with bearer attachment, transport-level retries
// and 401 handling. A non-2xx response decodes into *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	if lastErr != nil {
		return fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Err == "" {
			apiErr.Err = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// getCached serves out of the cache when the key is present, otherwise
// fetches and stores the raw body under the key.
func (c *Client) getCached(ctx context.Context, path, key string, out interface{}) error {
	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return json.Unmarshal(cached, out)
	}

	if err := c.do(ctx, http.MethodGet, path, nil, out); err != nil {
		return err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	c.mu.Lock()
	c.cache[key] = data
	c.mu.Unlock()
	return nil
}

// invalidate drops every cache entry whose key starts with one of the
// prefixes.
func (c *Client) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(c.cache, key)
				break
			}
		}
	}
}
