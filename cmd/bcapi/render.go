package main

import (
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/goodnatureofminers/bcapi/internal/model"
)

var (
	blockHeader   = []string{"Height", "Hash", "Mined", "Txs", "Fee"}
	txHeader      = []string{"Hash", "Status", "In", "Out", "Total Out", "Size"}
	outputHeader  = []string{"N", "Address", "Value", "State", "Script"}
	balanceHeader = []string{"Address", "Final", "Received", "Sent", "Txs"}
)

func blockRows(blocks []model.BlockSummary) [][]string {
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []string{
			humanize.Comma(b.Height),
			b.Hash,
			ago(b.Time),
			humanize.Comma(b.TxCount),
			amount(b.Fee),
		})
	}
	return rows
}

func txRows(txs []model.TransactionSummary) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Hash,
			status(tx),
			strconv.Itoa(tx.InputCount),
			strconv.Itoa(tx.OutputCount),
			amount(tx.TotalOut),
			humanize.Bytes(uint64(max(tx.Size, 0))),
		})
	}
	return rows
}

func outputRows(outs []model.OutputSummary) [][]string {
	rows := make([][]string, 0, len(outs))
	for _, out := range outs {
		state := color.GreenString("unspent")
		if out.Spent {
			state = color.RedString("spent")
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(out.Index), 10),
			out.Address,
			amount(out.Value),
			state,
			out.ScriptType,
		})
	}
	return rows
}

func balanceRows(balances []model.Balance) [][]string {
	rows := make([][]string, 0, len(balances)+1)
	var total btcutil.Amount
	for _, b := range balances {
		total += b.Final
		rows = append(rows, []string{
			b.Address,
			amount(b.Final),
			amount(b.Received),
			amount(b.Sent),
			humanize.Comma(b.TxCount),
		})
	}
	if len(balances) > 1 {
		rows = append(rows, []string{color.New(color.Bold).Sprint("total"), amount(total), "", "", ""})
	}
	return rows
}

func status(tx model.TransactionSummary) string {
	if !tx.Confirmed {
		return color.YellowString("unconfirmed")
	}
	return color.GreenString("#%s", humanize.Comma(tx.BlockHeight))
}

// amount prints whole coins with the shortest exact decimal form.
func amount(a btcutil.Amount) string {
	return strconv.FormatFloat(a.ToBTC(), 'f', -1, 64) + " BTC"
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
