package rest

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

	"github.com/google/uuid"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/internal/ctxlog"
	"github.com/TerraSkye/api-client/internal/naming"
)

// Client wraps net/http for talking to the API. All methods are safe
// for concurrent use.
type Client struct {
	base      *url.URL
	token     string
	userAgent string
	http      *http.Client
	catalog   *apiclient.Catalog
}

// A ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. to add a
// custom transport in tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a client for the API described by cfg, building
// models from the given catalog.
func NewClient(cfg *Config, catalog *apiclient.Catalog, opts ...ClientOption) (*Client, error) {
	if err := cfg.init(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, NewConfigError("catalog", "is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("rest: parsing base URL: %w", err)
	}
	c := &Client{
		base:      base,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		catalog:   catalog,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Catalog returns the model catalog the client builds instances from.
func (c *Client) Catalog() *apiclient.Catalog {
	return c.catalog
}

// Get fetches the resource at path, which may be absolute or relative
// to the configured base URL.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Create posts the model's serialized body to the collection path of
// its type and returns the created model as the server echoes it
// back. The model is validated before the request is sent.
func (c *Client) Create(ctx context.Context, m *apiclient.Model) (*apiclient.Model, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPost, "/"+naming.Resource(m.Type().Name), m.Body())
	if err != nil {
		return nil, err
	}
	created := m.Type().New().WithResolver(NewResolver(c))
	if err := created.SetAttributes(env); err != nil {
		return nil, err
	}
	return created, nil
}

// Update puts the model's serialized body to its resource path, keyed
// by the model's id attribute.
func (c *Client) Update(ctx context.Context, m *apiclient.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	path, err := c.resourcePath(m)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, path, m.Body())
	return err
}

// Delete removes the model's resource, keyed by its id attribute.
func (c *Client) Delete(ctx context.Context, m *apiclient.Model) error {
	path, err := c.resourcePath(m)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) resourcePath(m *apiclient.Model) (string, error) {
	id := m.Attr("id")
	if id == nil {
		return "", fmt.Errorf("rest: model %s has no id attribute set", m.Type().Name)
	}
	return fmt.Sprintf("/%s/%v", naming.Resource(m.Type().Name), id), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	u, err := c.requestURL(path)
	if err != nil {
		return nil, err
	}
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("rest: encoding request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("rest: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	logger.Debug("sending request",
		"method", method, "url", u.String(), "request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: %s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: reading response body: %w", err)
	}
	logger.Debug("received response",
		"method", method, "url", u.String(), "status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(method, u.Path, resp.StatusCode, buf)
	}
	return NewEnvelope(buf), nil
}

// requestURL resolves path against the base URL. Absolute hrefs pass
// through untouched so links returned by the server can point at any
// host.
func (c *Client) requestURL(path string) (*url.URL, error) {
	u, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("rest: parsing request path %q: %w", path, err)
	}
	if u.IsAbs() {
		return u, nil
	}
	ref := *c.base
	ref.Path = strings.TrimSuffix(ref.Path, "/") + "/" + strings.TrimPrefix(u.Path, "/")
	ref.RawQuery = u.RawQuery
	return &ref, nil
}

// apiError decodes the server's error body when it carries one.
func apiError(method, path string, status int, body []byte) *APIError {
	e := NewAPIError(method, path, status)
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Code = payload.Code
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	}
	return e
}
