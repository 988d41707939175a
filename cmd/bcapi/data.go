package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/goodnatureofminers/bcapi/internal/model"
	"github.com/goodnatureofminers/bcapi/internal/service"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
)

type blockCommand struct {
	app *app

	Transactions bool `short:"t" long:"transactions" description:"also list the block's transactions"`
	Height       bool `long:"height" description:"treat the argument as a height and list every block at it"`
	Args         struct {
		ID string `positional-arg-name:"hash|index" required:"yes"`
	} `positional-args:"yes"`
}

func (c *blockCommand) Execute([]string) error {
	a := c.app
	if c.Height {
		height, err := strconv.ParseInt(c.Args.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("parse height %q: %w", c.Args.ID, err)
		}
		blocks, err := a.client.BlocksAtHeight(a.ctx, height, nil)
		if err != nil {
			return err
		}
		summaries, err := blockSummaries(blocks)
		if err != nil {
			return err
		}
		return a.render(summaries, blockHeader, blockRows(summaries))
	}

	block, err := a.client.Block(a.ctx, c.Args.ID)
	if err != nil {
		return err
	}
	summary, err := service.ToBlockSummary(block)
	if err != nil {
		return err
	}

	var txs []model.TransactionSummary
	if c.Transactions {
		list, err := block.Transactions()
		if err != nil {
			return err
		}
		if txs, err = txSummaries(list); err != nil {
			return err
		}
	}

	if a.opts.JSON {
		return a.printJSON(struct {
			Block        model.BlockSummary         `json:"block"`
			Transactions []model.TransactionSummary `json:"transactions,omitempty"`
		}{summary, txs})
	}
	if err := a.table(blockHeader, blockRows([]model.BlockSummary{summary})); err != nil {
		return err
	}
	if !c.Transactions {
		return nil
	}
	return a.table(txHeader, txRows(txs))
}

type txCommand struct {
	app *app

	Args struct {
		ID string `positional-arg-name:"hash|index" required:"yes"`
	} `positional-args:"yes"`
}

func (c *txCommand) Execute([]string) error {
	a := c.app
	tx, err := a.client.Transaction(a.ctx, c.Args.ID)
	if err != nil {
		return err
	}
	summary, err := service.ToTransactionSummary(tx)
	if err != nil {
		return err
	}
	outputs, err := service.ToOutputSummaries(tx, a.params)
	if err != nil {
		return err
	}

	if a.opts.JSON {
		return a.printJSON(struct {
			Transaction model.TransactionSummary `json:"transaction"`
			Outputs     []model.OutputSummary    `json:"outputs"`
		}{summary, outputs})
	}
	if err := a.table(txHeader, txRows([]model.TransactionSummary{summary})); err != nil {
		return err
	}
	return a.table(outputHeader, outputRows(outputs))
}

type addressCommand struct {
	app *app

	Limit  int `long:"limit" description:"number of transactions to show"`
	Offset int `long:"offset" description:"skip this many transactions"`
	Args   struct {
		Address string `positional-arg-name:"address" required:"yes"`
	} `positional-args:"yes"`
}

func (c *addressCommand) Execute([]string) error {
	a := c.app
	addr, err := a.client.Address(a.ctx, c.Args.Address, pageParams(c.Limit, c.Offset))
	if err != nil {
		return err
	}
	balance, err := service.ToBalance(addr)
	if err != nil {
		return err
	}
	list, err := addr.Transactions()
	if err != nil {
		return err
	}
	txs, err := txSummaries(list)
	if err != nil {
		return err
	}

	if a.opts.JSON {
		return a.printJSON(struct {
			Balance      model.Balance              `json:"balance"`
			Transactions []model.TransactionSummary `json:"transactions"`
		}{balance, txs})
	}
	if err := a.table(balanceHeader, balanceRows([]model.Balance{balance})); err != nil {
		return err
	}
	return a.table(txHeader, txRows(txs))
}

type balanceCommand struct {
	app *app

	Args struct {
		Addresses []string `positional-arg-name:"address" required:"1"`
	} `positional-args:"yes"`
}

func (c *balanceCommand) Execute([]string) error {
	a := c.app
	scanner := service.NewBalanceScanner(a.client, a.opts.BatchSize, a.opts.Workers, a.logger)
	balances, err := scanner.Scan(a.ctx, c.Args.Addresses)
	if err != nil {
		return err
	}
	return a.render(balances, balanceHeader, balanceRows(balances))
}

type unspentCommand struct {
	app *app

	Confirmations int `long:"confirmations" description:"minimum confirmations"`
	Limit         int `long:"limit" description:"maximum number of outputs"`
	Args          struct {
		Addresses []string `positional-arg-name:"address" required:"1"`
	} `positional-args:"yes"`
}

type unspentView struct {
	TxHash        string `json:"tx_hash"`
	Index         uint32 `json:"index"`
	Value         int64  `json:"value"`
	Confirmations int64  `json:"confirmations"`
	ScriptType    string `json:"script_type,omitempty"`
}

func (c *unspentCommand) Execute([]string) error {
	a := c.app
	params := gateway.Params{}
	if c.Confirmations > 0 {
		params = params.With(gateway.ParamConfirmations, strconv.Itoa(c.Confirmations))
	}
	if c.Limit > 0 {
		params = params.With(gateway.ParamLimit, strconv.Itoa(c.Limit))
	}
	outs, err := a.client.Unspent(a.ctx, c.Args.Addresses, params)
	if err != nil {
		return err
	}

	views := make([]unspentView, 0, len(outs))
	rows := make([][]string, 0, len(outs))
	for _, out := range outs {
		index, err := out.Index()
		if err != nil {
			return err
		}
		value, err := out.Value()
		if err != nil {
			return err
		}
		confirmations, _ := out.Confirmations()
		view := unspentView{TxHash: out.TxHash(), Index: index, Value: int64(value), Confirmations: confirmations}
		if script, err := out.Script(a.params); err == nil {
			view.ScriptType = script.Class.String()
		}
		views = append(views, view)
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", view.TxHash, view.Index),
			amount(value),
			humanize.Comma(confirmations),
			view.ScriptType,
		})
	}
	return a.render(views, []string{"Outpoint", "Value", "Confirmations", "Script"}, rows)
}

type latestCommand struct {
	app *app
}

func (c *latestCommand) Execute([]string) error {
	a := c.app
	block, err := a.client.LatestBlock(a.ctx)
	if err != nil {
		return err
	}
	summary, err := service.ToBlockSummary(block)
	if err != nil {
		return err
	}
	return a.render(summary, blockHeader, blockRows([]model.BlockSummary{summary}))
}

type unconfirmedCommand struct {
	app *app
}

func (c *unconfirmedCommand) Execute([]string) error {
	a := c.app
	list, err := a.client.UnconfirmedTransactions(a.ctx, nil)
	if err != nil {
		return err
	}
	txs, err := txSummaries(list)
	if err != nil {
		return err
	}
	return a.render(txs, txHeader, txRows(txs))
}

func pageParams(limit, offset int) gateway.Params {
	params := gateway.Params{}
	if limit > 0 {
		params = params.With(gateway.ParamLimit, strconv.Itoa(limit))
	}
	if offset > 0 {
		params = params.With(gateway.ParamOffset, strconv.Itoa(offset))
	}
	return params
}

func blockSummaries(blocks []*resource.Block) ([]model.BlockSummary, error) {
	out := make([]model.BlockSummary, 0, len(blocks))
	for _, b := range blocks {
		s, err := service.ToBlockSummary(b)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func txSummaries(txs []*resource.Transaction) ([]model.TransactionSummary, error) {
	out := make([]model.TransactionSummary, 0, len(txs))
	for _, tx := range txs {
		s, err := service.ToTransactionSummary(tx)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
