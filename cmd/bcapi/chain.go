package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/goodnatureofminers/bcapi/internal/metrics"
	"github.com/goodnatureofminers/bcapi/internal/model"
	"github.com/goodnatureofminers/bcapi/internal/service"
	"github.com/goodnatureofminers/bcapi/pkg/batcher"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
)

type walkCommand struct {
	app *app

	From  string `long:"from" description:"start block hash or index, the latest block when empty"`
	Depth int    `long:"depth" default:"10" description:"number of blocks to visit, 0 walks to genesis"`
	Quiet bool   `short:"q" long:"quiet" description:"hide the progress bar"`
}

func (c *walkCommand) Execute([]string) error {
	a := c.app
	var (
		start *resource.Block
		err   error
	)
	if c.From == "" {
		start, err = a.client.LatestBlock(a.ctx)
	} else {
		start, err = a.client.Block(a.ctx, c.From)
	}
	if err != nil {
		return err
	}

	total := int64(c.Depth)
	if c.Depth <= 0 {
		total = -1
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(a.errOut),
		progressbar.OptionSetDescription("walking"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!c.Quiet && !a.opts.JSON),
		progressbar.OptionClearOnFinish(),
	)

	var summaries []model.BlockSummary
	err = service.NewWalker(a.logger).Walk(a.ctx, start, c.Depth, func(b *resource.Block) error {
		summary, err := service.ToBlockSummary(b)
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
		return bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	return a.render(summaries, blockHeader, blockRows(summaries))
}

type followCommand struct {
	app *app

	From      string `long:"from" description:"hash of the last block already seen; only later blocks are printed"`
	Count     int    `long:"count" description:"exit after printing this many blocks, 0 runs until interrupted"`
	FlushSize int    `long:"flush-size" default:"1" description:"blocks buffered before printing"`
}

func (c *followCommand) Execute([]string) error {
	a := c.app
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	if a.opts.MetricsAddr != "" {
		if _, err := metrics.Serve(ctx, a.opts.MetricsAddr, prometheus.DefaultGatherer, a.logger); err != nil {
			return err
		}
	}

	follower, err := service.NewFollower(a.client, metrics.NewFollower(a.opts.Network), service.FollowerConfig{
		Interval:    a.opts.PollInterval,
		MaxBackfill: a.opts.MaxBackfill,
		LastHash:    c.From,
	}, a.logger)
	if err != nil {
		return err
	}

	printer := batcher.New(a.logger.Named("printer"), a.printBlocks, c.FlushSize, time.Second, nil)
	printer.Start(ctx)

	emitted := 0
	err = follower.Run(ctx, func(ctx context.Context, b *resource.Block) error {
		summary, err := service.ToBlockSummary(b)
		if err != nil {
			return err
		}
		if err := printer.Add(ctx, summary); err != nil {
			return err
		}
		emitted++
		if c.Count > 0 && emitted >= c.Count {
			cancel()
		}
		return nil
	})
	flushErr := printer.Stop()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, flushErr)
}

// printBlocks writes one line per block, or one JSON object per line in --json mode.
func (a *app) printBlocks(_ context.Context, blocks []model.BlockSummary) error {
	for _, b := range blocks {
		if a.opts.JSON {
			line, err := json.Marshal(b)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(a.out, string(line)); err != nil {
				return err
			}
			continue
		}
		_, err := fmt.Fprintf(a.out, "%s %s %s txs, fee %s\n",
			color.CyanString("#%s", humanize.Comma(b.Height)),
			b.Hash,
			humanize.Comma(b.TxCount),
			amount(b.Fee),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
