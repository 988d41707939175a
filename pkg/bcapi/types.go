package bcapi

import (
	"context"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is the request interface the named operations are built on.
	Source interface {
		FetchJSON(ctx context.Context, path []string, params gateway.Params) (any, error)
		FetchText(ctx context.Context, path []string, params gateway.Params) (string, error)
	}
)
