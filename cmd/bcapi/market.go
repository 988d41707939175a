package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/dustin/go-humanize"
	"github.com/goodnatureofminers/bcapi/pkg/bcapi"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/shopspring/decimal"
)

type chartCommand struct {
	app *app

	Timespan       string `long:"timespan" description:"period covered, for example 30days or 1year"`
	RollingAverage string `long:"rolling-average" description:"smoothing window, for example 8hours"`
	Args           struct {
		Name string `positional-arg-name:"chart" required:"yes"`
	} `positional-args:"yes"`
}

func (c *chartCommand) Execute([]string) error {
	a := c.app
	params := gateway.Params{}
	if c.Timespan != "" {
		params = params.With(gateway.ParamTimespan, c.Timespan)
	}
	if c.RollingAverage != "" {
		params = params.With(gateway.ParamRollingAverage, c.RollingAverage)
	}
	points, err := a.client.Chart(a.ctx, c.Args.Name, params)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Time().Format(time.DateTime), humanize.Commaf(p.Y)})
	}
	return a.render(points, []string{"Time", c.Args.Name}, rows)
}

type statsCommand struct {
	app *app
}

func (c *statsCommand) Execute([]string) error {
	a := c.app
	record, err := a.client.Stats(a.ctx, nil)
	if err != nil {
		return err
	}

	keys := record.Keys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		v, _ := record.Field(key)
		rows = append(rows, []string{key, fmt.Sprint(v)})
	}
	return a.render(record.Raw(), []string{"Stat", "Value"}, rows)
}

type tickerCommand struct {
	app *app

	Currency []string `short:"c" long:"currency" description:"only show these currency codes"`
}

func (c *tickerCommand) Execute([]string) error {
	a := c.app
	ticker, err := a.client.Ticker(a.ctx)
	if err != nil {
		return err
	}
	if len(c.Currency) > 0 {
		filtered := make(map[string]bcapi.TickerEntry, len(c.Currency))
		for _, code := range c.Currency {
			code = strings.ToUpper(code)
			entry, ok := ticker[code]
			if !ok {
				return fmt.Errorf("currency %s not in ticker", code)
			}
			filtered[code] = entry
		}
		ticker = filtered
	}

	codes := make([]string, 0, len(ticker))
	for code := range ticker {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		e := ticker[code]
		rows = append(rows, []string{
			code,
			e.Symbol,
			e.Last.StringFixed(2),
			e.Buy.StringFixed(2),
			e.Sell.StringFixed(2),
			e.FifteenMin.StringFixed(2),
		})
	}
	return a.render(ticker, []string{"Currency", "Symbol", "Last", "Buy", "Sell", "15m"}, rows)
}

type toBTCCommand struct {
	app *app

	Args struct {
		Currency string `positional-arg-name:"currency" required:"yes"`
		Value    string `positional-arg-name:"value" required:"yes"`
	} `positional-args:"yes"`
}

func (c *toBTCCommand) Execute([]string) error {
	a := c.app
	value, err := decimal.NewFromString(c.Args.Value)
	if err != nil {
		return fmt.Errorf("parse value %q: %w", c.Args.Value, err)
	}
	currency := strings.ToUpper(c.Args.Currency)
	btc, err := a.client.ToBTC(a.ctx, currency, value)
	if err != nil {
		return err
	}
	if a.opts.JSON {
		return a.printJSON(map[string]string{
			"currency": currency,
			"value":    value.String(),
			"btc":      btc.String(),
		})
	}
	_, err = fmt.Fprintf(a.out, "%s %s = %s BTC\n", value.String(), currency, btc.String())
	return err
}

type queryCommand struct {
	app *app

	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}

type queryFunc func(context.Context, *bcapi.Client) (any, error)

func scalar[T any](fn func(*bcapi.Client, context.Context) (T, error)) queryFunc {
	return func(ctx context.Context, c *bcapi.Client) (any, error) {
		return fn(c, ctx)
	}
}

var queries = map[string]queryFunc{
	bcapi.QueryDifficulty:   scalar((*bcapi.Client).Difficulty),
	bcapi.QueryBlockCount:   scalar((*bcapi.Client).BlockCount),
	bcapi.QueryLatestHash:   scalar((*bcapi.Client).LatestHash),
	bcapi.QueryBlockReward:  scalar((*bcapi.Client).BlockReward),
	bcapi.QueryTotalBTC:     scalar((*bcapi.Client).TotalBitcoins),
	bcapi.QueryProbability:  scalar((*bcapi.Client).Probability),
	bcapi.QueryHashesToWin:  scalar((*bcapi.Client).HashesToWin),
	bcapi.QueryNextRetarget: scalar((*bcapi.Client).NextRetarget),
	bcapi.QueryAvgTxSize:    scalar((*bcapi.Client).AvgTxSize),
	bcapi.QueryAvgTxValue:   scalar((*bcapi.Client).AvgTxValue),
	bcapi.QueryAvgTxNumber:  scalar((*bcapi.Client).AvgTxNumber),
	bcapi.QueryInterval:     scalar((*bcapi.Client).Interval),
	bcapi.QueryETA:          scalar((*bcapi.Client).ETA),
}

func queryNames() []string {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *queryCommand) Execute([]string) error {
	a := c.app
	fn, ok := queries[c.Args.Name]
	if !ok {
		return fmt.Errorf("unknown query %q, want one of %s", c.Args.Name, strings.Join(queryNames(), ", "))
	}
	v, err := fn(a.ctx, a.client)
	if err != nil {
		return err
	}
	if a.opts.JSON {
		if d, ok := v.(time.Duration); ok {
			v = d.Seconds()
		}
		return a.printJSON(map[string]any{"name": c.Args.Name, "value": v})
	}
	_, err = fmt.Fprintln(a.out, formatScalar(v))
	return err
}

func formatScalar(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return humanize.Comma(v)
	case btcutil.Amount:
		return amount(v)
	case time.Duration:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
