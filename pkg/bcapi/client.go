// Package bcapi exposes the explorer's named operations: data lookups that
// return resource records, chart and stats queries, exchange rates, and the
// single-value query endpoints.
package bcapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
	"go.uber.org/zap"
)

var (
	// ErrUnexpectedPayload is returned when a decoded response does not have the expected shape.
	ErrUnexpectedPayload = errors.New("unexpected payload")
	// ErrNoAddresses is returned by batch lookups called with an empty address list.
	ErrNoAddresses = errors.New("no addresses given")
	// ErrInvalidHash is returned when a 64-character identifier is not a valid hash.
	ErrInvalidHash = errors.New("invalid hash")
)

// Client issues named operations against a Source. Every operation performs
// exactly the requests it documents; records returned may issue more on
// lazy access through the same source.
type Client struct {
	source Source
	logger *zap.Logger
}

// New constructs a client over source.
func New(source Source, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		source: source,
		logger: logger.Named("bcapi"),
	}
}

// NewFromConfig builds the HTTP gateway, wraps it with metrics when given, and returns a client over it.
func NewFromConfig(cfg gateway.Config, metrics gateway.Metrics, logger *zap.Logger) *Client {
	var source gateway.Source = gateway.NewClient(cfg, logger)
	if metrics != nil {
		source = gateway.NewObservedSource(source, metrics)
	}
	return New(source, logger)
}

// Source returns the underlying request source.
func (c *Client) Source() Source {
	return c.source
}

func (c *Client) fetchObject(ctx context.Context, path []string, params gateway.Params) (map[string]any, error) {
	payload, err := c.source.FetchJSON(ctx, path, params)
	if err != nil {
		return nil, err
	}
	raw, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: want object, got %T", gateway.JoinPath(path), ErrUnexpectedPayload, payload)
	}
	return raw, nil
}

// fetchObjects fetches an object and returns the list of objects stored under key.
func (c *Client) fetchObjects(ctx context.Context, path []string, params gateway.Params, key string) ([]map[string]any, error) {
	raw, err := c.fetchObject(ctx, path, params)
	if err != nil {
		return nil, err
	}
	list, err := resource.NewRecord(gateway.Operation(path), raw).List(key)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s[%d] is %T", gateway.JoinPath(path), ErrUnexpectedPayload, key, i, item)
		}
		out = append(out, obj)
	}
	return out, nil
}
