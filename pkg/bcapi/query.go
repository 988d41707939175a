package bcapi

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
)

// Single-value query endpoints under q/.
const (
	QueryDifficulty   = "getdifficulty"
	QueryBlockCount   = "getblockcount"
	QueryLatestHash   = "latesthash"
	QueryBlockReward  = "bcperblock"
	QueryTotalBTC     = "totalbc"
	QueryProbability  = "probability"
	QueryHashesToWin  = "hashestowin"
	QueryNextRetarget = "nextretarget"
	QueryAvgTxSize    = "avgtxsize"
	QueryAvgTxValue   = "avgtxvalue"
	QueryAvgTxNumber  = "avgtxnumber"
	QueryInterval     = "interval"
	QueryETA          = "eta"
)

func query[T gateway.Scalar](ctx context.Context, c *Client, name string) (T, error) {
	v, err := gateway.FetchScalar[T](ctx, c.source, []string{gateway.PathQuery, name}, nil)
	if err != nil {
		return v, fmt.Errorf("query %s: %w", name, err)
	}
	return v, nil
}

// Difficulty returns the current difficulty target.
func (c *Client) Difficulty(ctx context.Context) (float64, error) {
	return query[float64](ctx, c, QueryDifficulty)
}

// BlockCount returns the height of the longest chain.
func (c *Client) BlockCount(ctx context.Context) (int64, error) {
	return query[int64](ctx, c, QueryBlockCount)
}

// LatestHash returns the hash of the chain tip.
func (c *Client) LatestHash(ctx context.Context) (string, error) {
	return query[string](ctx, c, QueryLatestHash)
}

// BlockReward returns the current block subsidy.
func (c *Client) BlockReward(ctx context.Context) (btcutil.Amount, error) {
	v, err := query[int64](ctx, c, QueryBlockReward)
	return btcutil.Amount(v), err
}

// TotalBitcoins returns the amount in circulation, delayed by up to an hour.
func (c *Client) TotalBitcoins(ctx context.Context) (btcutil.Amount, error) {
	v, err := query[int64](ctx, c, QueryTotalBTC)
	return btcutil.Amount(v), err
}

// Probability returns the chance that a single hash attempt finds a block.
func (c *Client) Probability(ctx context.Context) (float64, error) {
	return query[float64](ctx, c, QueryProbability)
}

// HashesToWin returns the average number of hash attempts to solve a block.
func (c *Client) HashesToWin(ctx context.Context) (int64, error) {
	return query[int64](ctx, c, QueryHashesToWin)
}

// NextRetarget returns the height of the next difficulty retarget.
func (c *Client) NextRetarget(ctx context.Context) (int64, error) {
	return query[int64](ctx, c, QueryNextRetarget)
}

// AvgTxSize returns the average transaction size in bytes over the last 1000 blocks.
func (c *Client) AvgTxSize(ctx context.Context) (int64, error) {
	return query[int64](ctx, c, QueryAvgTxSize)
}

// AvgTxValue returns the average transaction value over the last 1000 blocks.
func (c *Client) AvgTxValue(ctx context.Context) (int64, error) {
	return query[int64](ctx, c, QueryAvgTxValue)
}

// AvgTxNumber returns the average number of transactions per block.
func (c *Client) AvgTxNumber(ctx context.Context) (int64, error) {
	return query[int64](ctx, c, QueryAvgTxNumber)
}

// Interval returns the average time between blocks.
func (c *Client) Interval(ctx context.Context) (time.Duration, error) {
	return seconds(query[float64](ctx, c, QueryInterval))
}

// ETA returns the estimated time until the next block.
func (c *Client) ETA(ctx context.Context) (time.Duration, error) {
	return seconds(query[float64](ctx, c, QueryETA))
}

func seconds(v float64, err error) (time.Duration, error) {
	if err != nil {
		return 0, err
	}
	return time.Duration(v * float64(time.Second)), nil
}
