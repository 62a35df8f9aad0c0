// Package fetch provides JSON fetching over HTTP with an optional
// filesystem cache in front of the network.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"charm.land/log/v2"

	"github.com/damianpoole/Loadstone/internal/cache"
	"github.com/damianpoole/Loadstone/internal/config"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Loadstone/1.0 (+https://github.com/damianpoole/Loadstone)"

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior. Cache controls whether the
// filesystem cache is consulted; CacheKey, when set, is used verbatim in
// place of the derived request key.
type Options struct {
	Cache     config.Cache
	CacheKey  string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Logger    *log.Logger
}

// DefaultOptions returns sensible defaults for fetching, with the cache
// disabled until a resolved configuration is supplied.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// JSON retrieves urlStr and decodes the response body into v.
//
// With caching enabled a fresh cache entry satisfies the call without any
// network traffic; a miss performs the request and persists the body
// best-effort (a failed write is logged and otherwise ignored).
func JSON(ctx context.Context, urlStr string, opts *Options, v any) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	key := opts.CacheKey
	if key == "" {
		key = cache.Key(http.MethodGet, urlStr, nil)
	}

	if opts.Cache.Enabled {
		if body, ok := cache.Get(opts.Cache, key); ok {
			if err := json.Unmarshal(body, v); err != nil {
				return &Error{URL: urlStr, Message: "failed to decode cached body", Cause: err}
			}
			return nil
		}
	}

	body, err := get(ctx, urlStr, opts)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{URL: urlStr, Message: "failed to decode response body", Cause: err}
	}

	if opts.Cache.Enabled {
		if err := cache.Set(opts.Cache, key, body); err != nil {
			opts.logger().Warn("cache write failed", "url", urlStr, "err", err)
		}
	}

	return nil
}

func get(ctx context.Context, urlStr string, opts *Options) ([]byte, error) {
	client := &http.Client{Timeout: opts.timeout()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", opts.userAgent())
	req.Header.Set("Accept", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %s", resp.Status)}
	}

	return body, nil
}

func (o *Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

func (o *Options) userAgent() string {
	if o.UserAgent != "" {
		return o.UserAgent
	}
	return DefaultUserAgent
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
