package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestGatewayRecords(t *testing.T) {
	m := NewGateway("")
	start := time.Now().Add(-200 * time.Millisecond)

	if inc := delta(t, gatewayRequestsTotal.WithLabelValues("rawblock", "unknown", "success"), func() {
		m.Observe("rawblock", nil, start)
	}); inc != 1 {
		t.Fatalf("expected request counter increment, got %v", inc)
	}

	notFound := fmt.Errorf("fetch block: %w", &gateway.RequestFailedError{StatusCode: 404})
	if inc := delta(t, gatewayRequestsTotal.WithLabelValues("rawblock", "unknown", "404"), func() {
		m.Observe("rawblock", notFound, start)
	}); inc != 1 {
		t.Fatalf("expected 404 counter increment, got %v", inc)
	}

	m.Observe("q/getblockcount", errors.New("reset"), start)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "success"},
		{name: "http", err: &gateway.RequestFailedError{StatusCode: 500}, want: "500"},
		{name: "decode", err: &gateway.DecodeFailedError{Kind: "json", Err: errors.New("eof")}, want: "decode_error"},
		{name: "transport", err: errors.New("dial tcp"), want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Fatalf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFollowerRecords(t *testing.T) {
	m := NewFollower("mainnet")
	start := time.Now().Add(-time.Second)

	if inc := delta(t, followerPollTotal.WithLabelValues("mainnet", "error"), func() {
		m.ObservePoll(errors.New("fail"), start)
	}); inc != 1 {
		t.Fatalf("expected poll error increment, got %v", inc)
	}

	if inc := delta(t, followerNewBlocksTotal.WithLabelValues("mainnet"), func() {
		m.ObserveNewBlocks(3, 301031)
	}); inc != 3 {
		t.Fatalf("expected new blocks increment of 3, got %v", inc)
	}

	if got := testutil.ToFloat64(followerTipHeight.WithLabelValues("mainnet")); got != 301031 {
		t.Fatalf("expected tip height 301031, got %v", got)
	}

	m.ObservePoll(nil, start)
}
