package bcapi

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Chart(t *testing.T) {
	c, src := newTestClient(t)
	src.EXPECT().
		FetchJSON(gomock.Any(), []string{gateway.PathCharts, "market-price"}, gateway.Params{"format": "json", "timespan": "5weeks"}).
		Return(map[string]any{"values": []any{
			map[string]any{"x": json.Number("1400198400"), "y": json.Number("443.5")},
			map[string]any{"x": json.Number("1400284800"), "y": json.Number("447")},
		}}, nil)

	points, err := c.Chart(context.Background(), "market-price", gateway.Params{"timespan": "5weeks"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, ChartPoint{X: 1400198400, Y: 443.5}, points[0])
	assert.Equal(t, time.Date(2014, 5, 16, 0, 0, 0, 0, time.UTC), points[0].Time())
}

func TestClient_ChartBadPoint(t *testing.T) {
	c, src := newTestClient(t)
	src.EXPECT().
		FetchJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(map[string]any{"values": []any{map[string]any{"x": json.Number("1")}}}, nil)

	_, err := c.Chart(context.Background(), "n-transactions", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point 0")
}

func TestClient_Stats(t *testing.T) {
	c, src := newTestClient(t)
	src.EXPECT().
		FetchJSON(gomock.Any(), []string{gateway.PathStats}, gateway.Params{"format": "json"}).
		Return(map[string]any{"n_blocks_total": json.Number("301031"), "market_price_usd": json.Number("447.1")}, nil)

	stats, err := c.Stats(context.Background(), nil)
	require.NoError(t, err)
	total, err := stats.Int64("n_blocks_total")
	require.NoError(t, err)
	assert.Equal(t, int64(301031), total)
}

func TestClient_Ticker(t *testing.T) {
	c, src := newTestClient(t)
	src.EXPECT().
		FetchJSON(gomock.Any(), []string{gateway.PathTicker}, nil).
		Return(map[string]any{
			"USD": map[string]any{
				"15m":    json.Number("443.51"),
				"last":   json.Number("443.51"),
				"buy":    json.Number("443.6"),
				"sell":   json.Number("443.42"),
				"symbol": "$",
			},
		}, nil)

	ticker, err := c.Ticker(context.Background())
	require.NoError(t, err)
	usd, ok := ticker["USD"]
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("443.51").Equal(usd.Last))
	assert.True(t, decimal.RequireFromString("443.6").Equal(usd.Buy))
	assert.True(t, decimal.RequireFromString("443.42").Equal(usd.Sell))
	assert.True(t, decimal.RequireFromString("443.51").Equal(usd.FifteenMin))
	assert.Equal(t, "$", usd.Symbol)
}

func TestClient_TickerBadEntry(t *testing.T) {
	c, src := newTestClient(t)
	src.EXPECT().
		FetchJSON(gomock.Any(), []string{gateway.PathTicker}, nil).
		Return(map[string]any{"EUR": map[string]any{"last": json.Number("x")}}, nil)

	_, err := c.Ticker(context.Background())
	require.ErrorIs(t, err, gateway.ErrDecodeFailed)
}

func TestClient_ToBTC(t *testing.T) {
	c, src := newTestClient(t)
	src.EXPECT().
		FetchJSON(gomock.Any(), []string{gateway.PathToBTC}, gateway.Params{"currency": "USD", "value": "500"}).
		Return(json.Number("1.12739"), nil)

	btc, err := c.ToBTC(context.Background(), "USD", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "1.12739", btc.String())
}
