// Package model defines flat summaries of explorer records used for rendering and export.
// Amounts are in satoshi.
package model

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

// BlockSummary describes a block without its transactions.
type BlockSummary struct {
	Hash     string         `json:"hash"`
	PrevHash string         `json:"prev_hash"`
	Height   int64          `json:"height"`
	Time     time.Time      `json:"time"`
	TxCount  int64          `json:"tx_count"`
	Fee      btcutil.Amount `json:"fee"`
}

// TransactionSummary describes a transaction and its aggregate values.
type TransactionSummary struct {
	Hash        string         `json:"hash"`
	BlockHash   string         `json:"block_hash,omitempty"`
	BlockHeight int64          `json:"block_height,omitempty"`
	Confirmed   bool           `json:"confirmed"`
	Time        time.Time      `json:"time"`
	Size        int64          `json:"size"`
	InputCount  int            `json:"input_count"`
	OutputCount int            `json:"output_count"`
	TotalOut    btcutil.Amount `json:"total_out"`
}

// OutputSummary describes a single transaction output.
type OutputSummary struct {
	TxHash     string         `json:"tx_hash"`
	Index      uint32         `json:"index"`
	Value      btcutil.Amount `json:"value"`
	Address    string         `json:"address,omitempty"`
	Spent      bool           `json:"spent"`
	ScriptType string         `json:"script_type,omitempty"`
}

// Balance describes the totals of one address.
type Balance struct {
	Address  string         `json:"address"`
	Final    btcutil.Amount `json:"final_balance"`
	Received btcutil.Amount `json:"total_received"`
	Sent     btcutil.Amount `json:"total_sent"`
	TxCount  int64          `json:"tx_count"`
}
