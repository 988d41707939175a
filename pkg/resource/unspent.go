package resource

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/lazy"
)

// UnspentOutput is one entry of an unspent payload. Unlike TxOutput it is not
// embedded in a transaction; the spending candidate's transaction is fetched
// on demand by its big-endian hash.
type UnspentOutput struct {
	*Record
	source      Source
	transaction *lazy.Cell[*Transaction]
}

// NewUnspentOutput wraps an unspent_outputs entry.
func NewUnspentOutput(raw map[string]any, source Source) *UnspentOutput {
	u := &UnspentOutput{
		Record: NewRecord(KindUnspentOutput, raw),
		source: source,
	}
	u.transaction = lazy.New(u.resolveTransaction)
	return u
}

// TxHash returns the hash of the transaction that created the output, in display byte order.
func (u *UnspentOutput) TxHash() string {
	hash, _ := u.Text(keyTxHashBigEndian)
	return hash
}

// Index returns the output position within its transaction.
func (u *UnspentOutput) Index() (uint32, error) {
	return u.Uint32(keyTxOutputN)
}

// Value returns the output amount in satoshi.
func (u *UnspentOutput) Value() (btcutil.Amount, error) {
	return u.Amount(keyValue)
}

// Confirmations returns the confirmation count reported by the explorer.
func (u *UnspentOutput) Confirmations() (int64, error) {
	return u.Int64(keyConfirmations)
}

// Script decodes the output's locking script for the given network.
func (u *UnspentOutput) Script(params *chaincfg.Params) (*Script, error) {
	hexScript, err := u.Text(keyScript)
	if err != nil {
		return nil, err
	}
	return DecodeScript(hexScript, params)
}

// Transaction fetches the creating transaction once and caches it.
func (u *UnspentOutput) Transaction(ctx context.Context) (*Transaction, error) {
	return u.transaction.Get(ctx)
}

// Get looks up a derived field first and falls back to the raw payload.
func (u *UnspentOutput) Get(ctx context.Context, name string) (any, error) {
	if name == FieldTransaction {
		return u.Transaction(ctx)
	}
	return u.Field(name)
}

func (u *UnspentOutput) String() string {
	index, _ := u.Index()
	value, err := u.Value()
	if err != nil {
		return fmt.Sprintf("<Unspent Output: ? BTC at %s:%d>", u.TxHash(), index)
	}
	return fmt.Sprintf("<Unspent Output: %.5f BTC at %s:%d>", value.ToBTC(), u.TxHash(), index)
}

func (u *UnspentOutput) resolveTransaction(ctx context.Context) (*Transaction, error) {
	fail := func(err error) (*Transaction, error) {
		return nil, &ResolutionError{Record: KindUnspentOutput, Field: FieldTransaction, Err: err}
	}

	hash, err := u.Text(keyTxHashBigEndian)
	if err != nil {
		return fail(err)
	}
	if u.source == nil {
		return fail(ErrNoSource)
	}
	payload, err := u.source.FetchJSON(ctx, []string{gateway.PathRawTx, hash}, nil)
	if err != nil {
		return fail(fmt.Errorf("fetch tx %s: %w", hash, err))
	}
	raw, ok := payload.(map[string]any)
	if !ok {
		return fail(fieldTypeError(KindUnspentOutput, FieldTransaction, "object", payload))
	}
	return NewTransaction(raw, nil), nil
}
