package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bcapi/pkg/lazy"
)

// Transaction is a rawtx payload, standalone or embedded in a block or address history.
type Transaction struct {
	*Record
	block   *Block
	inputs  *lazy.Cell[[]*TxInput]
	outputs *lazy.Cell[[]*TxOutput]
}

// NewTransaction wraps a transaction payload. block is the owning block when
// the transaction came from a block fetch, nil otherwise.
func NewTransaction(raw map[string]any, block *Block) *Transaction {
	tx := &Transaction{
		Record: NewRecord(KindTransaction, raw),
		block:  block,
	}
	tx.inputs = lazy.New(tx.resolveInputs)
	tx.outputs = lazy.New(tx.resolveOutputs)
	return tx
}

// Hash returns the transaction hash, or "" when the payload carries none.
func (t *Transaction) Hash() string {
	hash, _ := t.Text(keyHash)
	return hash
}

// Index returns the explorer-specific transaction index.
func (t *Transaction) Index() (int64, error) {
	return t.Int64(keyTxIndex)
}

// Time returns the time the transaction was first seen, in UTC.
func (t *Transaction) Time() (time.Time, error) {
	sec, err := t.Int64(keyTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

// BlockHeight returns the height the transaction was confirmed at. Unconfirmed
// transactions carry no height and fail with FieldMissingError.
func (t *Transaction) BlockHeight() (int64, error) {
	return t.Int64(keyBlockHeight)
}

// Size returns the serialized size in bytes.
func (t *Transaction) Size() (int64, error) {
	return t.Int64(keySize)
}

// Block returns the owning block, or nil when the transaction was not built from one.
func (t *Transaction) Block() *Block {
	return t.block
}

// Inputs returns the transaction inputs. The result is nil, not empty, when the
// raw list is null or empty or its first entry is an empty placeholder.
func (t *Transaction) Inputs() ([]*TxInput, error) {
	return t.inputs.Get(context.Background())
}

// Outputs returns the transaction outputs under the same absence rule as Inputs.
func (t *Transaction) Outputs() ([]*TxOutput, error) {
	return t.outputs.Get(context.Background())
}

// Get looks up a derived field first and falls back to the raw payload.
func (t *Transaction) Get(_ context.Context, name string) (any, error) {
	switch name {
	case FieldInputs:
		ins, err := t.Inputs()
		if err != nil || ins == nil {
			return nil, err
		}
		return ins, nil
	case FieldOutputs:
		outs, err := t.Outputs()
		if err != nil || outs == nil {
			return nil, err
		}
		return outs, nil
	case FieldBlock:
		if t.block == nil {
			return nil, nil
		}
		return t.block, nil
	default:
		return t.Field(name)
	}
}

func (t *Transaction) String() string {
	return fmt.Sprintf("<Tx: %s>", t.Hash())
}

func (t *Transaction) resolveInputs(context.Context) ([]*TxInput, error) {
	raws, err := t.present(keyInputs, FieldInputs)
	if err != nil || raws == nil {
		return nil, err
	}
	ins := make([]*TxInput, 0, len(raws))
	for _, raw := range raws {
		ins = append(ins, newTxInput(raw, t))
	}
	return ins, nil
}

func (t *Transaction) resolveOutputs(context.Context) ([]*TxOutput, error) {
	raws, err := t.present(keyOut, FieldOutputs)
	if err != nil || raws == nil {
		return nil, err
	}
	outs := make([]*TxOutput, 0, len(raws))
	for _, raw := range raws {
		outs = append(outs, newTxOutput(raw, t))
	}
	return outs, nil
}

// present applies the placeholder rule: the list counts only when it is
// non-empty and its first entry is non-empty.
func (t *Transaction) present(key, field string) ([]map[string]any, error) {
	list, err := t.List(key)
	if err != nil {
		return nil, &ResolutionError{Record: KindTransaction, Field: field, Err: err}
	}
	if len(list) == 0 || !truthy(list[0]) {
		return nil, nil
	}
	raws, err := objects(KindTransaction, key, list)
	if err != nil {
		return nil, &ResolutionError{Record: KindTransaction, Field: field, Err: err}
	}
	return raws, nil
}
