package resource

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// TxInput is one entry of a transaction's inputs list.
type TxInput struct {
	*Record
	tx *Transaction
}

func newTxInput(raw map[string]any, tx *Transaction) *TxInput {
	return &TxInput{Record: NewRecord(KindTxInput, raw), tx: tx}
}

// Transaction returns the owning transaction.
func (in *TxInput) Transaction() *Transaction {
	return in.tx
}

// PrevOut returns the output this input spends. Coinbase inputs have none.
func (in *TxInput) PrevOut() (*Record, error) {
	return in.Object(keyPrevOut)
}

// Value returns the spent amount: the input's own value when present,
// otherwise the value of the referenced output.
func (in *TxInput) Value() (btcutil.Amount, error) {
	if in.Has(keyValue) {
		return in.Amount(keyValue)
	}
	prev, err := in.PrevOut()
	if err != nil {
		return 0, err
	}
	return prev.Amount(keyValue)
}

// Addr returns the funding address, read from the input or its referenced output.
func (in *TxInput) Addr() (string, error) {
	if in.Has(keyAddr) {
		return in.Text(keyAddr)
	}
	prev, err := in.PrevOut()
	if err != nil {
		return "", err
	}
	return prev.Text(keyAddr)
}

// Get looks up a derived field first and falls back to the raw payload.
func (in *TxInput) Get(_ context.Context, name string) (any, error) {
	if name == FieldTransaction {
		return in.tx, nil
	}
	return in.Field(name)
}

func (in *TxInput) String() string {
	value, err := in.Value()
	addr, _ := in.Addr()
	if err != nil {
		return fmt.Sprintf("<Tx Input: ? BTC from %s>", addr)
	}
	return fmt.Sprintf("<Tx Input: %.5f BTC from %s>", value.ToBTC(), addr)
}

// TxOutput is one entry of a transaction's out list.
type TxOutput struct {
	*Record
	tx *Transaction
}

func newTxOutput(raw map[string]any, tx *Transaction) *TxOutput {
	return &TxOutput{Record: NewRecord(KindTxOutput, raw), tx: tx}
}

// Transaction returns the owning transaction.
func (out *TxOutput) Transaction() *Transaction {
	return out.tx
}

// Value returns the output amount in satoshi.
func (out *TxOutput) Value() (btcutil.Amount, error) {
	return out.Amount(keyValue)
}

// BTC returns the output amount in whole coins. For display only.
func (out *TxOutput) BTC() (float64, error) {
	value, err := out.Value()
	if err != nil {
		return 0, err
	}
	return value.ToBTC(), nil
}

// Addr returns the destination address.
func (out *TxOutput) Addr() (string, error) {
	return out.Text(keyAddr)
}

// Index returns the output position within the transaction.
func (out *TxOutput) Index() (uint32, error) {
	return out.Uint32(keyN)
}

// Spent reports whether a later transaction consumed the output.
func (out *TxOutput) Spent() (bool, error) {
	return out.Bool(keySpent)
}

// Script decodes the output's locking script for the given network.
func (out *TxOutput) Script(params *chaincfg.Params) (*Script, error) {
	hexScript, err := out.Text(keyScript)
	if err != nil {
		return nil, err
	}
	return DecodeScript(hexScript, params)
}

// Get looks up a derived field first and falls back to the raw payload.
func (out *TxOutput) Get(_ context.Context, name string) (any, error) {
	if name == FieldTransaction {
		return out.tx, nil
	}
	return out.Field(name)
}

func (out *TxOutput) String() string {
	value, err := out.Value()
	addr, _ := out.Addr()
	if err != nil {
		return fmt.Sprintf("<Tx Output: ? BTC to %s>", addr)
	}
	return fmt.Sprintf("<Tx Output: %.5f BTC to %s>", value.ToBTC(), addr)
}
