package resource

import (
	"context"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source fetches the decoded JSON payloads that lazy relationships resolve from.
	Source interface {
		FetchJSON(ctx context.Context, path []string, params gateway.Params) (any, error)
	}
)
