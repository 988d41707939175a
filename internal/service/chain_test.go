package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
)

// testChain serves rawblock payloads for heights 1..n. Height 1 points at the
// all-zero hash and therefore has no parent.
type testChain struct {
	mu      sync.Mutex
	blocks  map[string]map[string]any
	fetches []string
}

func hashOf(height int) string {
	return fmt.Sprintf("%064x", height)
}

func newTestChain(n int) *testChain {
	c := &testChain{blocks: make(map[string]map[string]any, n)}
	for h := 1; h <= n; h++ {
		c.blocks[hashOf(h)] = map[string]any{
			"hash":       hashOf(h),
			"prev_block": hashOf(h - 1),
			"height":     float64(h),
			"time":       float64(1700000000 + h*600),
			"n_tx":       float64(1),
			"fee":        float64(h * 1000),
			"tx":         []any{},
		}
	}
	return c
}

func (c *testChain) FetchJSON(_ context.Context, path []string, _ gateway.Params) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(path) != 2 || path[0] != gateway.PathRawBlock {
		return nil, fmt.Errorf("unexpected path %v", path)
	}
	c.fetches = append(c.fetches, path[1])
	raw, ok := c.blocks[path[1]]
	if !ok {
		return nil, &gateway.RequestFailedError{StatusCode: 404, Body: "Block not found"}
	}
	return raw, nil
}

func (c *testChain) block(height int) *resource.Block {
	return resource.NewBlock(c.blocks[hashOf(height)], c)
}

func (c *testChain) fetched() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.fetches...)
}
