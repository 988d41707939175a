package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/bcapi/pkg/resource"
	"go.uber.org/zap"
)

// ErrStopWalk may be returned by a visit func to end a walk early without error.
var ErrStopWalk = errors.New("stop walk")

// Walker follows previous_block links from a starting block towards genesis.
type Walker struct {
	logger *zap.Logger
}

// NewWalker builds a Walker.
func NewWalker(logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{logger: logger.Named("walker")}
}

// Walk visits start and then its ancestors, newest first, until depth blocks
// were visited or genesis is reached. A depth <= 0 walks to genesis.
// No parent is fetched after the last visit.
func (w *Walker) Walk(ctx context.Context, start *resource.Block, depth int, visit func(*resource.Block) error) error {
	current := start
	for visited := 0; current != nil; visited++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := visit(current); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return fmt.Errorf("visit %s: %w", current.Hash(), err)
		}
		if depth > 0 && visited+1 >= depth {
			return nil
		}

		prev, err := current.PreviousBlock(ctx)
		if err != nil {
			return fmt.Errorf("walk back from %s: %w", current.Hash(), err)
		}
		if prev == nil {
			w.logger.Debug("reached genesis", zap.String("hash", current.Hash()))
		}
		current = prev
	}
	return nil
}
