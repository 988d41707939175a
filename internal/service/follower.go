package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bcapi/internal/clock"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultMaxBackfill  = 10
)

// FollowerConfig tunes the tip follower.
type FollowerConfig struct {
	Interval    time.Duration
	MaxBackfill int
	// LastHash resumes following after a block already handled by the caller.
	LastHash string
}

// Follower polls the chain tip and emits every new block exactly once, oldest first.
type Follower struct {
	logger      *zap.Logger
	explorer    Explorer
	metrics     FollowerMetrics
	sleep       func(context.Context, time.Duration) error
	interval    time.Duration
	maxBackfill int
	backoff     clock.Backoff
	lastHash    string
}

// NewFollower builds a Follower with dependencies.
func NewFollower(explorer Explorer, metrics FollowerMetrics, cfg FollowerConfig, logger *zap.Logger) (*Follower, error) {
	if explorer == nil {
		return nil, errors.New("follower explorer is required")
	}
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.MaxBackfill <= 0 {
		cfg.MaxBackfill = defaultMaxBackfill
	}

	return &Follower{
		logger:      logger.Named("follower"),
		explorer:    explorer,
		metrics:     metrics,
		sleep:       clock.SleepWithContext,
		interval:    cfg.Interval,
		maxBackfill: cfg.MaxBackfill,
		backoff:     clock.Backoff{Initial: time.Second, Max: cfg.Interval},
		lastHash:    cfg.LastHash,
	}, nil
}

// LastHash returns the hash of the most recently emitted block.
func (f *Follower) LastHash() string {
	return f.lastHash
}

// Run polls until ctx is canceled. Failed polls back off exponentially up to
// the poll interval. An emit error is treated like a failed poll and the
// block is offered again on the next one.
func (f *Follower) Run(ctx context.Context, emit func(context.Context, *resource.Block) error) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.run(ctx, emit); err != nil {
			delay := f.backoff.Next()
			f.logger.Warn("poll failed, backing off", zap.Error(err), zap.Duration("sleep", delay))
			if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		f.backoff.Reset()
		if err := f.sleep(ctx, f.interval); err != nil {
			return err
		}
	}
}

func (f *Follower) run(ctx context.Context, emit func(context.Context, *resource.Block) error) error {
	started := time.Now()
	blocks, err := f.newBlocks(ctx)
	f.metrics.ObservePoll(err, started)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		f.logger.Debug("no new blocks", zap.String("tip", f.lastHash))
		return nil
	}

	tipHeight, _ := blocks[0].Height()
	f.logger.Info("new blocks", zap.Int("count", len(blocks)), zap.Int64("tip_height", tipHeight))
	emitted := 0
	for i := len(blocks) - 1; i >= 0; i-- {
		if err := emit(ctx, blocks[i]); err != nil {
			f.metrics.ObserveNewBlocks(emitted, tipHeight)
			return fmt.Errorf("emit block %s: %w", blocks[i].Hash(), err)
		}
		f.lastHash = blocks[i].Hash()
		emitted++
	}
	f.metrics.ObserveNewBlocks(emitted, tipHeight)
	return nil
}

// newBlocks returns the blocks after lastHash, newest first. The first poll
// without a resume hash yields the tip alone. Parents are fetched only while
// the raw prev_block differs from lastHash, at most maxBackfill blocks in total.
func (f *Follower) newBlocks(ctx context.Context) ([]*resource.Block, error) {
	tip, err := f.explorer.LatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest block: %w", err)
	}
	if tip.Hash() == f.lastHash {
		return nil, nil
	}
	if f.lastHash == "" {
		return []*resource.Block{tip}, nil
	}

	collected := []*resource.Block{tip}
	current := tip
	for {
		prevHash, err := current.PrevHash()
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", current.Hash(), err)
		}
		if prevHash == f.lastHash {
			return collected, nil
		}
		if len(collected) >= f.maxBackfill {
			f.logger.Warn("backfill limit reached, skipping older blocks",
				zap.Int("max_backfill", f.maxBackfill),
				zap.String("last_hash", f.lastHash),
				zap.String("oldest_emitted", current.Hash()),
			)
			return collected, nil
		}

		prev, err := current.PreviousBlock(ctx)
		if err != nil {
			return nil, fmt.Errorf("walk back from %s: %w", current.Hash(), err)
		}
		if prev == nil {
			return collected, nil
		}
		collected = append(collected, prev)
		current = prev
	}
}
