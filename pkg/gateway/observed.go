package gateway

import (
	"context"
	"time"
)

// ObservedSource wraps a Source and records every call with Metrics.
type ObservedSource struct {
	source  Source
	metrics Metrics
}

// NewObservedSource constructs an instrumented source.
func NewObservedSource(source Source, metrics Metrics) *ObservedSource {
	return &ObservedSource{
		source:  source,
		metrics: metrics,
	}
}

// FetchJSON delegates to the wrapped source.
func (o *ObservedSource) FetchJSON(ctx context.Context, path []string, params Params) (value any, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe(Operation(path), err, started)
	}()
	return o.source.FetchJSON(ctx, path, params)
}

// FetchText delegates to the wrapped source.
func (o *ObservedSource) FetchText(ctx context.Context, path []string, params Params) (text string, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe(Operation(path), err, started)
	}()
	return o.source.FetchText(ctx, path, params)
}

// Operation names a request by its endpoint, leaving out identifiers so metric
// label cardinality stays bounded: rawblock/<hash> becomes "rawblock",
// q/getdifficulty stays "q/getdifficulty".
func Operation(path []string) string {
	switch {
	case len(path) == 0:
		return "root"
	case path[0] == PathQuery && len(path) > 1:
		return path[0] + "/" + path[1]
	default:
		return path[0]
	}
}
