package main

import (
	"context"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/goodnatureofminers/bcapi/internal/config"
	"github.com/goodnatureofminers/bcapi/internal/log"
	"github.com/goodnatureofminers/bcapi/internal/metrics"
	"github.com/goodnatureofminers/bcapi/pkg/bcapi"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

type options struct {
	config.Options

	JSON    bool `long:"json" env:"BCAPI_JSON" description:"print JSON instead of tables"`
	NoColor bool `long:"no-color" description:"disable colored output"`
}

// app carries what every command needs once options are parsed.
type app struct {
	ctx    context.Context
	opts   options
	out    io.Writer
	errOut io.Writer

	logger *zap.Logger
	client *bcapi.Client
	params *chaincfg.Params
}

func newApp(ctx context.Context, out, errOut io.Writer) *app {
	return &app{ctx: ctx, out: out, errOut: errOut}
}

func (a *app) init() error {
	resolved, err := a.opts.Options.Resolve()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.opts.Options = resolved
	if a.opts.NoColor {
		color.NoColor = true
	}

	if a.logger == nil {
		logger, err := log.New(resolved.Log())
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		a.logger = logger
	}
	if a.params, err = resource.ChainParams(resolved.Network); err != nil {
		return err
	}
	a.client = bcapi.NewFromConfig(resolved.Gateway(), metrics.NewGateway(resolved.Network), a.logger)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// render prints v as JSON in --json mode and as a table otherwise.
func (a *app) render(v any, header []string, rows [][]string) error {
	if a.opts.JSON {
		return a.printJSON(v)
	}
	return a.table(header, rows)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(a.out)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return table.Render()
}
