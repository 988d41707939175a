// Package resource models explorer payloads as records with lazily resolved,
// memoized relationships.
//
// A Block owns its Transactions and a Transaction owns its inputs and outputs.
// The reverse links (Transaction.Block, TxInput.Transaction, TxOutput.Transaction)
// are plain back-references used for navigation only.
package resource

import (
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/bcapi/pkg/safe"
)

// Record kinds used in error messages and diagnostics.
const (
	KindRecord        = "record"
	KindBlock         = "block"
	KindTransaction   = "transaction"
	KindTxInput       = "tx input"
	KindTxOutput      = "tx output"
	KindAddress       = "address"
	KindMultiAddress  = "multi address"
	KindUnspentOutput = "unspent output"
)

// Raw payload keys.
const (
	keyHash            = "hash"
	keyHeight          = "height"
	keyTime            = "time"
	keyTx              = "tx"
	keyNTx             = "n_tx"
	keyPrevBlock       = "prev_block"
	keyInputs          = "inputs"
	keyOut             = "out"
	keyPrevOut         = "prev_out"
	keyValue           = "value"
	keyAddr            = "addr"
	keyScript          = "script"
	keyN               = "n"
	keySpent           = "spent"
	keyTxs             = "txs"
	keyAddress         = "address"
	keyAddresses       = "addresses"
	keyFinalBalance    = "final_balance"
	keyTotalReceived   = "total_received"
	keyTotalSent       = "total_sent"
	keyTxHashBigEndian = "tx_hash_big_endian"
	keyTxOutputN       = "tx_output_n"
	keyConfirmations   = "confirmations"
	keyTxIndex         = "tx_index"
	keyBlockHeight     = "block_height"
	keySize            = "size"
	keyFee             = "fee"
)

// Record is a decoded JSON object with typed accessors. Lookups of absent keys
// fail with FieldMissingError instead of returning a zero value.
type Record struct {
	kind string
	raw  map[string]any
}

// NewRecord wraps raw. A nil map is treated as an empty payload.
func NewRecord(kind string, raw map[string]any) *Record {
	if raw == nil {
		raw = map[string]any{}
	}
	return &Record{kind: kind, raw: raw}
}

// Kind names the record type.
func (r *Record) Kind() string {
	return r.kind
}

// Raw exposes the underlying payload. Callers must not modify it.
func (r *Record) Raw() map[string]any {
	return r.raw
}

// Has reports whether the payload carries name.
func (r *Record) Has(name string) bool {
	_, ok := r.raw[name]
	return ok
}

// Keys returns the payload keys in sorted order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.raw))
	for k := range r.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the raw value stored under name.
func (r *Record) Field(name string) (any, error) {
	v, ok := r.raw[name]
	if !ok {
		return nil, &FieldMissingError{Record: r.kind, Field: name}
	}
	return v, nil
}

// Text returns name as a string.
func (r *Record) Text(name string) (string, error) {
	v, err := r.Field(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldTypeError(r.kind, name, "string", v)
	}
	return s, nil
}

// Int64 returns name as an integer.
func (r *Record) Int64(name string) (int64, error) {
	v, err := r.Field(name)
	if err != nil {
		return 0, err
	}
	i, err := safe.Int64(v)
	if err != nil {
		return 0, fmt.Errorf("%s.%s: %w: %v", r.kind, name, ErrFieldType, err)
	}
	return i, nil
}

// Uint32 returns name as a uint32, failing on overflow.
func (r *Record) Uint32(name string) (uint32, error) {
	v, err := r.Field(name)
	if err != nil {
		return 0, err
	}
	u, err := safe.Uint32(v)
	if err != nil {
		return 0, fmt.Errorf("%s.%s: %w: %v", r.kind, name, ErrFieldType, err)
	}
	return u, nil
}

// Float64 returns name as a float.
func (r *Record) Float64(name string) (float64, error) {
	v, err := r.Field(name)
	if err != nil {
		return 0, err
	}
	f, err := safe.Float64(v)
	if err != nil {
		return 0, fmt.Errorf("%s.%s: %w: %v", r.kind, name, ErrFieldType, err)
	}
	return f, nil
}

// Bool returns name as a boolean.
func (r *Record) Bool(name string) (bool, error) {
	v, err := r.Field(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fieldTypeError(r.kind, name, "bool", v)
	}
	return b, nil
}

// Amount returns name as a satoshi amount.
func (r *Record) Amount(name string) (btcutil.Amount, error) {
	i, err := r.Int64(name)
	if err != nil {
		return 0, err
	}
	return btcutil.Amount(i), nil
}

// List returns name as a JSON array. A JSON null yields a nil slice.
func (r *Record) List(name string) ([]any, error) {
	v, err := r.Field(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fieldTypeError(r.kind, name, "array", v)
	}
	return list, nil
}

// Object returns name as a nested record.
func (r *Record) Object(name string) (*Record, error) {
	v, err := r.Field(name)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fieldTypeError(r.kind, name, "object", v)
	}
	return NewRecord(name, obj), nil
}

// truthy mirrors the emptiness test used for placeholder input/output lists:
// null, false, zero, and empty strings, arrays or objects are all empty.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case map[string]any:
		return len(value) > 0
	case []any:
		return len(value) > 0
	case float64:
		return value != 0
	case int:
		return value != 0
	case int64:
		return value != 0
	case interface{ Float64() (float64, error) }:
		f, err := value.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// objects converts a decoded JSON array into payload maps. A null element is
// treated as an empty object; any other non-object element is an error.
func objects(kind, field string, list []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		if item == nil {
			out = append(out, map[string]any{})
			continue
		}
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fieldTypeError(kind, fmt.Sprintf("%s[%d]", field, i), "object", item)
		}
		out = append(out, obj)
	}
	return out, nil
}
