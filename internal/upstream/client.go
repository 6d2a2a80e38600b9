// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package upstream talks to the external content API. It builds requests,
// attaches optional Basic-Auth and a cache policy (TTL plus a tag shared by
// every call to the API), decodes JSON bodies and reads pagination headers.
// It never swallows errors; degrading is the caller's decision.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"newsfront/internal/cache"
	"newsfront/internal/models"
)

const (
	// DefaultTag labels every cached response from the content API.
	DefaultTag = "content-api"

	// DefaultTTL is how long a response may be served before revalidation.
	DefaultTTL = 60 * time.Second

	// HeaderTotal and HeaderTotalPages carry listing totals.
	HeaderTotal      = "X-WP-Total"
	HeaderTotalPages = "X-WP-TotalPages"
)

// Config holds connection settings for the content API.
type Config struct {
	BaseURL  string
	Username string
	Password string
	TTL      time.Duration
	Tag      string
	Timeout  time.Duration
}

// CachePolicy is the revalidation contract declared on every call.
type CachePolicy struct {
	TTL time.Duration
	Tag string
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string // status text, e.g. "Not Found"
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream: %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Status)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// Client performs requests against the content API. It is safe for
// concurrent use.
type Client struct {
	baseURL  string
	username string
	password string
	policy   CachePolicy
	store    cache.Store // may be nil: no caching
	client   *http.Client
}

// New creates a client. store may be nil, in which case every call goes to
// the network.
func New(cfg Config, store cache.Store) *Client {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Tag == "" {
		cfg.Tag = DefaultTag
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		policy:   CachePolicy{TTL: cfg.TTL, Tag: cfg.Tag},
		store:    store,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Policy returns the cache policy attached to every call.
func (c *Client) Policy() CachePolicy {
	return c.policy
}

// Fetch requests path and decodes the JSON body into T. T is usually a
// slice for collection endpoints or a struct for single records.
func Fetch[T any](ctx context.Context, c *Client, path string, p Params) (T, error) {
	var out T
	entry, err := c.get(ctx, path, p)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(entry.Body, &out); err != nil {
		return out, fmt.Errorf("upstream: decode %s: %w", path, err)
	}
	return out, nil
}

// FetchPaged requests a collection and returns it with the totals read from
// the pagination headers. Missing or unparsable headers leave the totals nil.
func FetchPaged[T any](ctx context.Context, c *Client, path string, p Params) (*models.PagedResult[T], error) {
	entry, err := c.get(ctx, path, p)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(entry.Body, &items); err != nil {
		return nil, fmt.Errorf("upstream: decode %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return &models.PagedResult[T]{
		Items:      items,
		Total:      parseCount(entry.Total),
		TotalPages: parseCount(entry.TotalPages),
	}, nil
}

// get returns the cached entry for the request or performs it.
func (c *Client) get(ctx context.Context, path string, p Params) (*cache.Entry, error) {
	query := p.Values().Encode()
	key := cacheKey(path, query)

	if c.store != nil {
		if entry, ok := c.store.Get(ctx, c.policy.Tag, key); ok {
			return entry, nil
		}
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if query != "" {
		url += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream: read body %s: %w", path, err)
	}

	slog.Debug("upstream fetch", "path", path, "query", query, "status", resp.StatusCode, "duration", time.Since(start).String())

	entry := cache.Entry{
		Body:       body,
		Total:      resp.Header.Get(HeaderTotal),
		TotalPages: resp.Header.Get(HeaderTotalPages),
	}
	if c.store != nil {
		c.store.Set(ctx, c.policy.Tag, key, entry, c.policy.TTL)
	}
	return &entry, nil
}

func cacheKey(path, query string) string {
	path = "/" + strings.TrimLeft(path, "/")
	if query == "" {
		return path
	}
	return path + "?" + query
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func parseCount(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
