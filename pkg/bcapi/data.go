package bcapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
	"go.uber.org/zap"
)

// Block fetches a block by hash or explorer index.
func (c *Client) Block(ctx context.Context, id string) (*resource.Block, error) {
	if err := checkHash(id); err != nil {
		return nil, err
	}
	raw, err := c.fetchObject(ctx, []string{gateway.PathRawBlock, id}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch block %s: %w", id, err)
	}
	return resource.NewBlock(raw, c.source), nil
}

// BlockByIndex fetches a block by the explorer's block index.
func (c *Client) BlockByIndex(ctx context.Context, index int64) (*resource.Block, error) {
	return c.Block(ctx, strconv.FormatInt(index, 10))
}

// Transaction fetches a transaction by hash or explorer index.
func (c *Client) Transaction(ctx context.Context, id string) (*resource.Transaction, error) {
	if err := checkHash(id); err != nil {
		return nil, err
	}
	raw, err := c.fetchObject(ctx, []string{gateway.PathRawTx, id}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch tx %s: %w", id, err)
	}
	return resource.NewTransaction(raw, nil), nil
}

// TransactionByIndex fetches a transaction by the explorer's transaction index.
func (c *Client) TransactionByIndex(ctx context.Context, index int64) (*resource.Transaction, error) {
	return c.Transaction(ctx, strconv.FormatInt(index, 10))
}

// BlocksAtHeight returns every block the explorer knows at height, orphans included.
func (c *Client) BlocksAtHeight(ctx context.Context, height int64, params gateway.Params) ([]*resource.Block, error) {
	path := []string{gateway.PathBlockHeight, strconv.FormatInt(height, 10)}
	raws, err := c.fetchObjects(ctx, path, params.WithDefault(gateway.ParamFormat, gateway.FormatJSON), "blocks")
	if err != nil {
		return nil, fmt.Errorf("fetch blocks at height %d: %w", height, err)
	}
	blocks := make([]*resource.Block, 0, len(raws))
	for _, raw := range raws {
		blocks = append(blocks, resource.NewBlock(raw, c.source))
	}
	return blocks, nil
}

// Address fetches an address summary with its most recent transactions.
// params may carry limit and offset for paging.
func (c *Client) Address(ctx context.Context, addr string, params gateway.Params) (*resource.Address, error) {
	raw, err := c.fetchObject(ctx, []string{gateway.PathRawAddr, addr}, params)
	if err != nil {
		return nil, fmt.Errorf("fetch address %s: %w", addr, err)
	}
	return resource.NewAddress(raw), nil
}

// AddressOf refetches an address record, for example with different paging params.
func (c *Client) AddressOf(ctx context.Context, addr *resource.Address, params gateway.Params) (*resource.Address, error) {
	return c.Address(ctx, addr.Addr(), params)
}

// MultiAddress looks up several addresses in a single request.
func (c *Client) MultiAddress(ctx context.Context, addrs []string, params gateway.Params) (*resource.MultiAddress, error) {
	if len(addrs) == 0 {
		return nil, ErrNoAddresses
	}
	params = params.With(gateway.ParamActive, strings.Join(addrs, gateway.ActiveSeparator))
	raw, err := c.fetchObject(ctx, []string{gateway.PathMultiAddr}, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %d addresses: %w", len(addrs), err)
	}
	return resource.NewMultiAddress(raw), nil
}

// Unspent lists the unspent outputs of addrs in a single request.
func (c *Client) Unspent(ctx context.Context, addrs []string, params gateway.Params) ([]*resource.UnspentOutput, error) {
	if len(addrs) == 0 {
		return nil, ErrNoAddresses
	}
	params = params.With(gateway.ParamActive, strings.Join(addrs, gateway.ActiveSeparator))
	raws, err := c.fetchObjects(ctx, []string{gateway.PathUnspent}, params, "unspent_outputs")
	if err != nil {
		return nil, fmt.Errorf("fetch unspent outputs: %w", err)
	}
	outs := make([]*resource.UnspentOutput, 0, len(raws))
	for _, raw := range raws {
		outs = append(outs, resource.NewUnspentOutput(raw, c.source))
	}
	return outs, nil
}

// LatestBlock resolves the tip hash and then fetches the full block: two requests.
func (c *Client) LatestBlock(ctx context.Context) (*resource.Block, error) {
	latest, err := c.fetchObject(ctx, []string{gateway.PathLatestBlock}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch latest block: %w", err)
	}
	hash, err := resource.NewRecord(gateway.PathLatestBlock, latest).Text("hash")
	if err != nil {
		return nil, fmt.Errorf("fetch latest block: %w", err)
	}
	c.logger.Debug("latest block", zap.String("hash", hash))
	return c.Block(ctx, hash)
}

// UnconfirmedTransactions returns the explorer's current mempool sample.
func (c *Client) UnconfirmedTransactions(ctx context.Context, params gateway.Params) ([]*resource.Transaction, error) {
	raws, err := c.fetchObjects(ctx, []string{gateway.PathUnconfirmedTxs}, params.WithDefault(gateway.ParamFormat, gateway.FormatJSON), "txs")
	if err != nil {
		return nil, fmt.Errorf("fetch unconfirmed transactions: %w", err)
	}
	txs := make([]*resource.Transaction, 0, len(raws))
	for _, raw := range raws {
		txs = append(txs, resource.NewTransaction(raw, nil))
	}
	return txs, nil
}

// checkHash rejects malformed hashes before they reach the network.
// Shorter identifiers are explorer indexes and pass through.
func checkHash(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidHash)
	}
	if len(id) != chainhash.MaxHashStringSize {
		return nil
	}
	if _, err := chainhash.NewHashFromStr(id); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidHash, id, err)
	}
	return nil
}
