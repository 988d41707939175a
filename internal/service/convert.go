package service

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/bcapi/internal/model"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
)

// optional treats a missing payload field as its zero value.
func optional[T any](v T, err error) (T, error) {
	if errors.Is(err, resource.ErrFieldMissing) {
		var zero T
		return zero, nil
	}
	return v, err
}

// ToBlockSummary flattens a block. Hash, height and prev_block are required.
func ToBlockSummary(b *resource.Block) (model.BlockSummary, error) {
	height, err := b.Height()
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("block %s height: %w", b.Hash(), err)
	}
	prev, err := b.PrevHash()
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("block %s prev_block: %w", b.Hash(), err)
	}
	ts, err := optional(b.Time())
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("block %s time: %w", b.Hash(), err)
	}
	count, err := optional(b.TxCount())
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("block %s n_tx: %w", b.Hash(), err)
	}
	fee, err := optional(b.Fee())
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("block %s fee: %w", b.Hash(), err)
	}

	return model.BlockSummary{
		Hash:     b.Hash(),
		PrevHash: prev,
		Height:   height,
		Time:     ts,
		TxCount:  count,
		Fee:      fee,
	}, nil
}

// ToTransactionSummary flattens a transaction. Unconfirmed transactions carry
// no block height and are reported with Confirmed false.
func ToTransactionSummary(tx *resource.Transaction) (model.TransactionSummary, error) {
	summary := model.TransactionSummary{Hash: tx.Hash()}
	if block := tx.Block(); block != nil {
		summary.BlockHash = block.Hash()
	}

	height, err := tx.BlockHeight()
	switch {
	case err == nil:
		summary.BlockHeight = height
		summary.Confirmed = true
	case !errors.Is(err, resource.ErrFieldMissing):
		return model.TransactionSummary{}, fmt.Errorf("tx %s block_height: %w", tx.Hash(), err)
	}

	if summary.Time, err = optional(tx.Time()); err != nil {
		return model.TransactionSummary{}, fmt.Errorf("tx %s time: %w", tx.Hash(), err)
	}
	if summary.Size, err = optional(tx.Size()); err != nil {
		return model.TransactionSummary{}, fmt.Errorf("tx %s size: %w", tx.Hash(), err)
	}

	ins, err := tx.Inputs()
	if err != nil {
		return model.TransactionSummary{}, fmt.Errorf("tx %s: %w", tx.Hash(), err)
	}
	outs, err := tx.Outputs()
	if err != nil {
		return model.TransactionSummary{}, fmt.Errorf("tx %s: %w", tx.Hash(), err)
	}
	summary.InputCount = len(ins)
	summary.OutputCount = len(outs)

	var total btcutil.Amount
	for i, out := range outs {
		value, err := out.Value()
		if err != nil {
			return model.TransactionSummary{}, fmt.Errorf("tx %s output %d value: %w", tx.Hash(), i, err)
		}
		total += value
	}
	summary.TotalOut = total
	return summary, nil
}

// ToOutputSummaries flattens the outputs of tx. Script types are decoded for params.
func ToOutputSummaries(tx *resource.Transaction, params *chaincfg.Params) ([]model.OutputSummary, error) {
	outs, err := tx.Outputs()
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", tx.Hash(), err)
	}

	summaries := make([]model.OutputSummary, 0, len(outs))
	for i, out := range outs {
		index, err := optional(out.Index())
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d n: %w", tx.Hash(), i, err)
		}
		value, err := out.Value()
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value: %w", tx.Hash(), i, err)
		}
		addr, err := optional(out.Addr())
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d addr: %w", tx.Hash(), i, err)
		}
		spent, err := optional(out.Spent())
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d spent: %w", tx.Hash(), i, err)
		}
		script, err := optional(out.Script(params))
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d script: %w", tx.Hash(), i, err)
		}

		summary := model.OutputSummary{
			TxHash:  tx.Hash(),
			Index:   index,
			Value:   value,
			Address: addr,
			Spent:   spent,
		}
		if script != nil {
			summary.ScriptType = script.Class.String()
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ToBalance flattens an address summary.
func ToBalance(a *resource.Address) (model.Balance, error) {
	final, err := a.FinalBalance()
	if err != nil {
		return model.Balance{}, fmt.Errorf("address %s final_balance: %w", a.Addr(), err)
	}
	received, err := optional(a.TotalReceived())
	if err != nil {
		return model.Balance{}, fmt.Errorf("address %s total_received: %w", a.Addr(), err)
	}
	sent, err := optional(a.TotalSent())
	if err != nil {
		return model.Balance{}, fmt.Errorf("address %s total_sent: %w", a.Addr(), err)
	}
	count, err := optional(a.TxCount())
	if err != nil {
		return model.Balance{}, fmt.Errorf("address %s n_tx: %w", a.Addr(), err)
	}

	return model.Balance{
		Address:  a.Addr(),
		Final:    final,
		Received: received,
		Sent:     sent,
		TxCount:  count,
	}, nil
}
