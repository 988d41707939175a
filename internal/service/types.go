// Package service composes explorer lookups into chain walking, tip following and balance scanning.
package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Explorer interface {
		LatestBlock(ctx context.Context) (*resource.Block, error)
		MultiAddress(ctx context.Context, addrs []string, params gateway.Params) (*resource.MultiAddress, error)
	}
	FollowerMetrics interface {
		ObservePoll(err error, started time.Time)
		ObserveNewBlocks(count int, tipHeight int64)
	}
)
