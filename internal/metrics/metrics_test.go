package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("joinRoom", "")
	m.ObserveDelivery(3, 1)
	m.ConnOpened()
	m.ConnClosed()
	m.ObserveKick()
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("joinRoom", "")
	m.ObserveRequest("joinRoom", "room_full")
	m.ObserveRequest("joinRoom", "room_full")
	m.ObserveDelivery(3, 1)
	m.ConnOpened()
	m.ConnOpened()
	m.ConnClosed()

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("joinRoom", "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("joinRoom", "room_full")); got != 2 {
		t.Errorf("room_full requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Delivered); got != 3 {
		t.Errorf("delivered = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.Dropped); got != 1 {
		t.Errorf("dropped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Connections); got != 1 {
		t.Errorf("connections = %v, want 1", got)
	}
}

func TestRegisterState(t *testing.T) {
	reg := prometheus.NewRegistry()
	n := 2
	RegisterState(reg, func() int { return n }, func() int { return 5 })

	count, err := testutil.GatherAndCount(reg, "chat_identities", "chat_rooms")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 2 {
		t.Errorf("series = %d, want 2", count)
	}
}
