package bcapi

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
)

// ChartPoint is one sample of a chart series. X is a unix timestamp for time series.
type ChartPoint struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// Time interprets X as a unix timestamp.
func (p ChartPoint) Time() time.Time {
	return time.Unix(p.X, 0).UTC()
}

// Chart returns the values of a named chart series, such as "market-price" or "n-transactions".
func (c *Client) Chart(ctx context.Context, chartType string, params gateway.Params) ([]ChartPoint, error) {
	path := []string{gateway.PathCharts, chartType}
	raws, err := c.fetchObjects(ctx, path, params.WithDefault(gateway.ParamFormat, gateway.FormatJSON), "values")
	if err != nil {
		return nil, fmt.Errorf("fetch chart %s: %w", chartType, err)
	}

	points := make([]ChartPoint, 0, len(raws))
	for i, raw := range raws {
		rec := resource.NewRecord("chart point", raw)
		x, err := rec.Int64("x")
		if err != nil {
			return nil, fmt.Errorf("chart %s point %d: %w", chartType, i, err)
		}
		y, err := rec.Float64("y")
		if err != nil {
			return nil, fmt.Errorf("chart %s point %d: %w", chartType, i, err)
		}
		points = append(points, ChartPoint{X: x, Y: y})
	}
	return points, nil
}

// Stats returns the explorer's network statistics object.
func (c *Client) Stats(ctx context.Context, params gateway.Params) (*resource.Record, error) {
	raw, err := c.fetchObject(ctx, []string{gateway.PathStats}, params.WithDefault(gateway.ParamFormat, gateway.FormatJSON))
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	return resource.NewRecord(gateway.PathStats, raw), nil
}
