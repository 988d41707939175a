package resource

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/bcapi/pkg/lazy"
)

// Address is a rawaddr payload. Its history transactions carry no owning block.
type Address struct {
	*Record
	transactions *lazy.Cell[[]*Transaction]
}

// NewAddress wraps an address payload.
func NewAddress(raw map[string]any) *Address {
	return newAddress(KindAddress, raw)
}

func newAddress(kind string, raw map[string]any) *Address {
	a := &Address{Record: NewRecord(kind, raw)}
	a.transactions = lazy.New(a.resolveTransactions)
	return a
}

// Addr returns the address string, or "" when the payload carries none.
func (a *Address) Addr() string {
	addr, _ := a.Text(keyAddress)
	return addr
}

// FinalBalance returns the current balance.
func (a *Address) FinalBalance() (btcutil.Amount, error) {
	return a.Amount(keyFinalBalance)
}

// TotalReceived returns the sum of all received outputs.
func (a *Address) TotalReceived() (btcutil.Amount, error) {
	return a.Amount(keyTotalReceived)
}

// TotalSent returns the sum of all spent outputs.
func (a *Address) TotalSent() (btcutil.Amount, error) {
	return a.Amount(keyTotalSent)
}

// TxCount returns the number of transactions touching the address.
func (a *Address) TxCount() (int64, error) {
	return a.Int64(keyNTx)
}

// Transactions returns the address history page carried in the payload.
func (a *Address) Transactions() ([]*Transaction, error) {
	return a.transactions.Get(context.Background())
}

// Get looks up a derived field first and falls back to the raw payload.
func (a *Address) Get(_ context.Context, name string) (any, error) {
	if name == FieldTransactions {
		return a.Transactions()
	}
	return a.Field(name)
}

func (a *Address) String() string {
	return fmt.Sprintf("<Address: %s>", a.Addr())
}

func (a *Address) resolveTransactions(context.Context) ([]*Transaction, error) {
	list, err := a.List(keyTxs)
	if err != nil {
		return nil, &ResolutionError{Record: a.Kind(), Field: FieldTransactions, Err: err}
	}
	raws, err := objects(a.Kind(), keyTxs, list)
	if err != nil {
		return nil, &ResolutionError{Record: a.Kind(), Field: FieldTransactions, Err: err}
	}
	txs := make([]*Transaction, 0, len(raws))
	for _, raw := range raws {
		txs = append(txs, NewTransaction(raw, nil))
	}
	return txs, nil
}

// MultiAddress is a multiaddr payload: a combined history plus one summary per queried address.
type MultiAddress struct {
	*Address
	addresses *lazy.Cell[[]*Address]
}

// NewMultiAddress wraps a multiaddr payload.
func NewMultiAddress(raw map[string]any) *MultiAddress {
	m := &MultiAddress{Address: newAddress(KindMultiAddress, raw)}
	m.addresses = lazy.New(m.resolveAddresses)
	return m
}

// Addresses returns one Address per entry of the payload's addresses list, in payload order.
func (m *MultiAddress) Addresses() ([]*Address, error) {
	return m.addresses.Get(context.Background())
}

// Get looks up a derived field first and falls back to the raw payload.
func (m *MultiAddress) Get(ctx context.Context, name string) (any, error) {
	if name == FieldAddresses {
		return m.Addresses()
	}
	return m.Address.Get(ctx, name)
}

func (m *MultiAddress) String() string {
	list, _ := m.List(keyAddresses)
	return fmt.Sprintf("<MultiAddress: %d addresses>", len(list))
}

func (m *MultiAddress) resolveAddresses(context.Context) ([]*Address, error) {
	list, err := m.List(keyAddresses)
	if err != nil {
		return nil, &ResolutionError{Record: KindMultiAddress, Field: FieldAddresses, Err: err}
	}
	raws, err := objects(KindMultiAddress, keyAddresses, list)
	if err != nil {
		return nil, &ResolutionError{Record: KindMultiAddress, Field: FieldAddresses, Err: err}
	}
	addrs := make([]*Address, 0, len(raws))
	for _, raw := range raws {
		addrs = append(addrs, NewAddress(raw))
	}
	return addrs, nil
}
