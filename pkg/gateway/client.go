// Package gateway turns logical explorer calls into HTTP GET requests and decoded results.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public blockchain.info API root.
	DefaultBaseURL = "https://blockchain.info/"
	// DefaultTimeout bounds a single round-trip.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the client to the upstream service.
	DefaultUserAgent = "bcapi-go"

	maxErrorBody = 256
)

// Config describes how the gateway reaches the upstream API.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RPS       int
	UserAgent string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// Client performs exactly one GET per call against a fixed base URL.
// It does not retry and does not cache.
type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	logger  *zap.Logger
}

// NewClient constructs a gateway client. A nil logger disables logging; RPS <= 0 disables throttling.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json, text/plain")

	return &Client{
		http:    httpClient,
		limiter: limiter,
		logger:  logger.Named("gateway"),
	}
}

// FetchJSON performs a GET and decodes the body as JSON. Numbers are kept as json.Number.
func (c *Client) FetchJSON(ctx context.Context, path []string, params Params) (any, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(body)
}

// FetchText performs a GET and returns the body as trimmed plain text.
func (c *Client) FetchText(ctx context.Context, path []string, params Params) (string, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) get(ctx context.Context, path []string, params Params) ([]byte, error) {
	endpoint := JoinPath(path)

	c.limiter.Take()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get %s: %w", endpoint, err)
	}
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		c.logger.Warn("request failed", zap.String("path", endpoint), zap.Error(err))
		return nil, fmt.Errorf("get %s: %w", endpoint, err)
	}

	c.logger.Debug("request done",
		zap.String("path", endpoint),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(started)),
	)

	if !resp.IsSuccess() {
		return nil, &RequestFailedError{
			StatusCode: resp.StatusCode(),
			URL:        resp.Request.URL,
			Body:       truncate(strings.TrimSpace(resp.String()), maxErrorBody),
		}
	}
	return resp.Body(), nil
}

// JoinPath escapes each segment and joins them into a relative URL path.
func JoinPath(path []string) string {
	escaped := make([]string, 0, len(path))
	for _, segment := range path {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return "/" + strings.Join(escaped, "/")
}

// DecodeJSON parses a single JSON document keeping numbers as json.Number so
// integer minor-unit amounts survive without float rounding. Anything but
// whitespace after the document is an error.
func DecodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &DecodeFailedError{Kind: "json", Err: errors.New("empty body")}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &DecodeFailedError{Kind: "json", Err: err}
	}
	if off := dec.InputOffset(); off < int64(len(body)) && len(bytes.TrimSpace(body[off:])) > 0 {
		return nil, &DecodeFailedError{Kind: "json", Err: fmt.Errorf("trailing data after JSON value at offset %d", off)}
	}
	return value, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
