package bcapi

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/shopspring/decimal"
)

// TickerEntry is the market price of one bitcoin in a fiat currency.
type TickerEntry struct {
	// FifteenMin is the 15 minutes delayed market price.
	FifteenMin decimal.Decimal `json:"15m"`
	Last       decimal.Decimal `json:"last"`
	Buy        decimal.Decimal `json:"buy"`
	Sell       decimal.Decimal `json:"sell"`
	Symbol     string          `json:"symbol"`
}

// Ticker returns market prices keyed by currency code.
func (c *Client) Ticker(ctx context.Context) (map[string]TickerEntry, error) {
	raw, err := c.fetchObject(ctx, []string{gateway.PathTicker}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker: %w", err)
	}

	out := make(map[string]TickerEntry, len(raw))
	for currency, value := range raw {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ticker %s: %w: got %T", currency, ErrUnexpectedPayload, value)
		}
		entry, err := tickerEntry(obj)
		if err != nil {
			return nil, fmt.Errorf("ticker %s: %w", currency, err)
		}
		out[currency] = entry
	}
	return out, nil
}

// ToBTC converts value in currency to bitcoin at the current market price.
func (c *Client) ToBTC(ctx context.Context, currency string, value decimal.Decimal) (decimal.Decimal, error) {
	params := gateway.Params{
		gateway.ParamCurrency: currency,
		gateway.ParamValue:    value.String(),
	}
	payload, err := c.source.FetchJSON(ctx, []string{gateway.PathToBTC}, params)
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert %s %s: %w", value, currency, err)
	}
	btc, err := toDecimal(payload)
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert %s %s: %w", value, currency, err)
	}
	return btc, nil
}

func tickerEntry(obj map[string]any) (TickerEntry, error) {
	var (
		entry TickerEntry
		err   error
	)
	fields := []struct {
		key string
		dst *decimal.Decimal
	}{
		{key: "15m", dst: &entry.FifteenMin},
		{key: "last", dst: &entry.Last},
		{key: "buy", dst: &entry.Buy},
		{key: "sell", dst: &entry.Sell},
	}
	for _, f := range fields {
		v, ok := obj[f.key]
		if !ok {
			continue
		}
		if *f.dst, err = toDecimal(v); err != nil {
			return TickerEntry{}, fmt.Errorf("%s: %w", f.key, err)
		}
	}
	if symbol, ok := obj["symbol"].(string); ok {
		entry.Symbol = symbol
	}
	return entry, nil
}

// toDecimal converts a decoded JSON number without passing through float64
// when the decoder kept the literal.
func toDecimal(v any) (decimal.Decimal, error) {
	switch value := v.(type) {
	case fmt.Stringer:
		d, err := decimal.NewFromString(value.String())
		if err != nil {
			return decimal.Zero, &gateway.DecodeFailedError{Kind: "decimal", Err: err}
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, &gateway.DecodeFailedError{Kind: "decimal", Err: err}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(value), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: want number, got %T", ErrUnexpectedPayload, v)
	}
}
