package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/lazy"
)

// Derived field names.
const (
	FieldTransactions  = "transactions"
	FieldPreviousBlock = "previous_block"
	FieldInputs        = "inputs"
	FieldOutputs       = "outputs"
	FieldBlock         = "block"
	FieldTransaction   = "transaction"
	FieldAddresses     = "addresses"
)

// Block is a rawblock payload. Its transactions are built from the embedded
// tx list; its previous block is fetched through the source on first access.
type Block struct {
	*Record
	source       Source
	transactions *lazy.Cell[[]*Transaction]
	previous     *lazy.Cell[*Block]
}

// NewBlock wraps a rawblock payload. source may be nil when PreviousBlock is never used.
func NewBlock(raw map[string]any, source Source) *Block {
	b := &Block{
		Record: NewRecord(KindBlock, raw),
		source: source,
	}
	b.transactions = lazy.New(b.resolveTransactions)
	b.previous = lazy.New(b.resolvePrevious)
	return b
}

// Hash returns the block hash, or "" when the payload carries none.
func (b *Block) Hash() string {
	hash, _ := b.Text(keyHash)
	return hash
}

// Height returns the block height.
func (b *Block) Height() (int64, error) {
	return b.Int64(keyHeight)
}

// PrevHash returns the raw hash of the parent block.
func (b *Block) PrevHash() (string, error) {
	return b.Text(keyPrevBlock)
}

// Time returns the block timestamp in UTC.
func (b *Block) Time() (time.Time, error) {
	sec, err := b.Int64(keyTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

// TxCount returns the declared number of transactions.
func (b *Block) TxCount() (int64, error) {
	return b.Int64(keyNTx)
}

// Fee returns the total fees collected by the block.
func (b *Block) Fee() (btcutil.Amount, error) {
	return b.Amount(keyFee)
}

// Transactions returns the block's transactions in payload order, each
// carrying a back-reference to b. The list is built once.
func (b *Block) Transactions() ([]*Transaction, error) {
	return b.transactions.Get(context.Background())
}

// PreviousBlock fetches the parent block by its raw prev_block hash. The
// result is cached; a failed fetch is retried on the next call. The genesis
// block has no parent and yields nil.
func (b *Block) PreviousBlock(ctx context.Context) (*Block, error) {
	return b.previous.Get(ctx)
}

// Get looks up a derived field first and falls back to the raw payload.
func (b *Block) Get(ctx context.Context, name string) (any, error) {
	switch name {
	case FieldTransactions:
		return b.Transactions()
	case FieldPreviousBlock:
		prev, err := b.PreviousBlock(ctx)
		if err != nil || prev == nil {
			return nil, err
		}
		return prev, nil
	default:
		return b.Field(name)
	}
}

func (b *Block) String() string {
	return fmt.Sprintf("<Block: %s>", b.Hash())
}

func (b *Block) resolveTransactions(context.Context) ([]*Transaction, error) {
	list, err := b.List(keyTx)
	if err != nil {
		return nil, &ResolutionError{Record: KindBlock, Field: FieldTransactions, Err: err}
	}
	raws, err := objects(KindBlock, keyTx, list)
	if err != nil {
		return nil, &ResolutionError{Record: KindBlock, Field: FieldTransactions, Err: err}
	}

	txs := make([]*Transaction, 0, len(raws))
	for _, raw := range raws {
		txs = append(txs, NewTransaction(raw, b))
	}
	return txs, nil
}

func (b *Block) resolvePrevious(ctx context.Context) (*Block, error) {
	fail := func(err error) (*Block, error) {
		return nil, &ResolutionError{Record: KindBlock, Field: FieldPreviousBlock, Err: err}
	}

	prev, err := b.PrevHash()
	if err != nil {
		return fail(err)
	}
	hash, err := chainhash.NewHashFromStr(prev)
	if err != nil {
		return fail(fmt.Errorf("parse prev_block %q: %w", prev, err))
	}
	if hash.IsEqual(&chainhash.Hash{}) {
		return nil, nil
	}
	if b.source == nil {
		return fail(ErrNoSource)
	}

	payload, err := b.source.FetchJSON(ctx, []string{gateway.PathRawBlock, prev}, nil)
	if err != nil {
		return fail(fmt.Errorf("fetch block %s: %w", prev, err))
	}
	raw, ok := payload.(map[string]any)
	if !ok {
		return fail(fieldTypeError(KindBlock, FieldPreviousBlock, "object", payload))
	}
	return NewBlock(raw, b.source), nil
}
