// Command bcapi queries a blockchain explorer API from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp(ctx, os.Stdout, os.Stderr)
	code := run(a, os.Args[1:])
	a.close()
	stop()
	os.Exit(code)
}

func run(a *app, args []string) int {
	parser, err := newParser(a)
	if err != nil {
		fmt.Fprintln(a.errOut, color.RedString("error: %v", err))
		return 1
	}
	if _, err := parser.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(a.out, ferr.Message)
			return 0
		}
		fmt.Fprintln(a.errOut, color.RedString("error: %v", err))
		return 1
	}
	return 0
}

func newParser(a *app) (*flags.Parser, error) {
	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		a.opts.MarkSet(explicitOptions(parser)...)
		if err := a.init(); err != nil {
			return err
		}
		return cmd.Execute(args)
	}

	commands := []struct {
		name  string
		short string
		data  any
	}{
		{"block", "Show a block by hash or index", &blockCommand{app: a}},
		{"tx", "Show a transaction by hash or index", &txCommand{app: a}},
		{"address", "Show an address summary and recent transactions", &addressCommand{app: a}},
		{"balance", "Show balances of many addresses", &balanceCommand{app: a}},
		{"unspent", "List unspent outputs of addresses", &unspentCommand{app: a}},
		{"latest", "Show the latest block", &latestCommand{app: a}},
		{"unconfirmed", "List unconfirmed transactions", &unconfirmedCommand{app: a}},
		{"walk", "Walk the chain backwards from a block", &walkCommand{app: a}},
		{"follow", "Print new blocks as they arrive", &followCommand{app: a}},
		{"chart", "Show a chart series", &chartCommand{app: a}},
		{"stats", "Show network statistics", &statsCommand{app: a}},
		{"ticker", "Show exchange rates", &tickerCommand{app: a}},
		{"tobtc", "Convert a fiat amount to BTC", &toBTCCommand{app: a}},
		{"query", "Run a single-value query", &queryCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, "", c.data); err != nil {
			return nil, fmt.Errorf("register command %s: %w", c.name, err)
		}
	}
	return parser, nil
}

// explicitOptions lists the global options given by flag or environment, so
// an explicit zero is not overridden by the config file.
func explicitOptions(parser *flags.Parser) []string {
	var names []string
	for _, group := range parser.Groups() {
		for _, opt := range group.Options() {
			if opt.LongName != "" && opt.IsSet() {
				names = append(names, opt.LongName)
			}
		}
	}
	return names
}
