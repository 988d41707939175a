package gateway

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records the outcome of upstream requests.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// TextSource fetches plain-text payloads.
	TextSource interface {
		FetchText(ctx context.Context, path []string, params Params) (string, error)
	}

	// Source is the data source consumed by the resource graph and the named operations.
	Source interface {
		FetchJSON(ctx context.Context, path []string, params Params) (any, error)
		FetchText(ctx context.Context, path []string, params Params) (string, error)
	}
)

// Params are URL query parameters attached to a request.
type Params map[string]string

// With returns a copy of p with key set to value.
func (p Params) With(key, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// WithDefault returns a copy of p with key set to value unless p already carries key.
func (p Params) WithDefault(key, value string) Params {
	if _, ok := p[key]; ok {
		return p.With(key, p[key])
	}
	return p.With(key, value)
}
