package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/bcapi/internal/model"
	"github.com/goodnatureofminers/bcapi/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultScanBatchSize = 20
	defaultScanWorkers   = 4
)

// ErrAddressMissing marks an address the explorer left out of a multiaddr response.
var ErrAddressMissing = errors.New("address missing from response")

// BalanceScanner resolves balances for many addresses with one multiaddr
// request per batch and a bounded number of batches in flight.
type BalanceScanner struct {
	logger    *zap.Logger
	explorer  Explorer
	batchSize int
	workers   int
}

// NewBalanceScanner builds a BalanceScanner. Non-positive sizes fall back to defaults.
func NewBalanceScanner(explorer Explorer, batchSize, workers int, logger *zap.Logger) *BalanceScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = defaultScanBatchSize
	}
	if workers <= 0 {
		workers = defaultScanWorkers
	}
	return &BalanceScanner{
		logger:    logger.Named("balanceScanner"),
		explorer:  explorer,
		batchSize: batchSize,
		workers:   workers,
	}
}

// Scan returns one balance per distinct address, in the order first given.
func (s *BalanceScanner) Scan(ctx context.Context, addrs []string) ([]model.Balance, error) {
	unique := dedupe(addrs)
	if len(unique) == 0 {
		return nil, nil
	}
	batches := chunk(unique, s.batchSize)
	s.logger.Debug("scanning balances", zap.Int("addresses", len(unique)), zap.Int("batches", len(batches)))

	results, err := workerpool.Map(ctx, s.workers, batches, s.scanBatch)
	if err != nil {
		return nil, err
	}

	balances := make([]model.Balance, 0, len(unique))
	for _, batch := range results {
		balances = append(balances, batch...)
	}
	return balances, nil
}

func (s *BalanceScanner) scanBatch(ctx context.Context, batch []string) ([]model.Balance, error) {
	multi, err := s.explorer.MultiAddress(ctx, batch, nil)
	if err != nil {
		return nil, fmt.Errorf("scan %d addresses: %w", len(batch), err)
	}
	entries, err := multi.Addresses()
	if err != nil {
		return nil, fmt.Errorf("scan %d addresses: %w", len(batch), err)
	}

	byAddr := make(map[string]model.Balance, len(entries))
	for _, entry := range entries {
		balance, err := ToBalance(entry)
		if err != nil {
			return nil, err
		}
		byAddr[balance.Address] = balance
	}

	balances := make([]model.Balance, 0, len(batch))
	for _, addr := range batch {
		balance, ok := byAddr[addr]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAddressMissing, addr)
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

func dedupe(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

func chunk[T any](items []T, size int) [][]T {
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
