package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bcapi",
		Subsystem: "follower",
		Name:      "poll_total",
		Help:      "Count of chain tip polls.",
	}, []string{"network", "status"})

	followerPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bcapi",
		Subsystem: "follower",
		Name:      "poll_duration_seconds",
		Help:      "Duration of a chain tip poll including backfill.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerNewBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bcapi",
		Subsystem: "follower",
		Name:      "new_blocks_total",
		Help:      "Count of blocks emitted by the follower.",
	}, []string{"network"})

	followerTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bcapi",
		Subsystem: "follower",
		Name:      "tip_height",
		Help:      "Height of the most recently observed chain tip.",
	}, []string{"network"})
)

// Follower tracks metrics for the chain tip follower.
type Follower struct {
	network string
}

// NewFollower constructs a Follower with defaults.
func NewFollower(network string) *Follower {
	if network == "" {
		network = "unknown"
	}
	return &Follower{network: network}
}

// ObservePoll records a poll attempt outcome and duration.
func (m Follower) ObservePoll(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	followerPollTotal.WithLabelValues(m.network, status).Inc()
	followerPollDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveNewBlocks records blocks emitted by one poll and the resulting tip height.
func (m Follower) ObserveNewBlocks(count int, tipHeight int64) {
	followerNewBlocksTotal.WithLabelValues(m.network).Add(float64(count))
	followerTipHeight.WithLabelValues(m.network).Set(float64(tipHeight))
}
