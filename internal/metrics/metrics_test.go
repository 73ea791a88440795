package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveLookup(OutcomeFound)
	m.ObserveLookup(OutcomeFound)
	m.ObserveLookup(OutcomeNotFound)
	m.ObserveStrategy("keyvalue")
	m.ObserveUpstream("ok", 120*time.Millisecond)

	if v := testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeFound)); v != 2 {
		t.Fatalf("found=%v, want 2", v)
	}
	if v := testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeNotFound)); v != 1 {
		t.Fatalf("not_found=%v, want 1", v)
	}
	if v := testutil.ToFloat64(m.Strategies.WithLabelValues("keyvalue")); v != 1 {
		t.Fatalf("keyvalue=%v, want 1", v)
	}
	if n := testutil.CollectAndCount(m.UpstreamDuration); n != 1 {
		t.Fatalf("histogram series=%d, want 1", n)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveLookup(OutcomeFound)
	m.ObserveStrategy("labeled")
	m.ObserveUpstream("error", time.Second)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	New(reg)
}
