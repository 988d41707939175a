package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bcapi",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Count of upstream explorer requests.",
	}, []string{"endpoint", "network", "status"})
	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bcapi",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Duration of upstream explorer requests.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
	}, []string{"endpoint", "network", "status"})
)

// Gateway tracks metrics for upstream explorer requests.
type Gateway struct {
	network string
}

// NewGateway constructs a metrics collector for gateway requests.
func NewGateway(network string) *Gateway {
	if network == "" {
		network = "unknown"
	}
	return &Gateway{network: network}
}

// Observe records a single request outcome and duration.
func (m Gateway) Observe(operation string, err error, started time.Time) {
	status := Status(err)
	gatewayRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	gatewayRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}

// Status classifies a request error into a bounded label value.
func Status(err error) string {
	if err == nil {
		return "success"
	}
	if code, ok := gateway.StatusCode(err); ok {
		return strconv.Itoa(code)
	}
	if errors.Is(err, gateway.ErrDecodeFailed) {
		return "decode_error"
	}
	return "error"
}
