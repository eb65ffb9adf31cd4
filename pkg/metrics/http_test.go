package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewHTTPMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Observe("GET", "/health", 200, time.Millisecond)

	n, err := testutil.GatherAndCount(reg, requestsTotalName, requestLatencyName, requestsInFlightName)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 series, got %d", n)
	}
}

func TestNewHTTPMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewHTTPMetrics(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewHTTPMetrics(reg); err == nil {
		t.Fatal("expected error on duplicate registration")
	}
}

func TestObserve_LabelsAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, _ := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/v1/items", 201, 10*time.Millisecond)
	m.Observe("POST", "/api/v1/items", 201, 20*time.Millisecond)
	m.Observe("POST", "/api/v1/items", 409, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/items", "201")); got != 2 {
		t.Errorf("201 count: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/items", "409")); got != 1 {
		t.Errorf("409 count: got %v, want 1", got)
	}

	if n := testutil.CollectAndCount(m.latency); n != 1 {
		t.Errorf("expected one latency series, got %d", n)
	}
}

func TestInFlight_ConcurrentPairsReturnToZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, _ := NewHTTPMetrics(reg)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RequestStarted()
			m.RequestFinished()
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Fatalf("in-flight gauge drifted to %v", got)
	}
}

func TestNewRegistry_IncludesRuntimeCollectors(t *testing.T) {
	reg := NewRegistry()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sawGo bool
	for _, mf := range mfs {
		if strings.HasPrefix(mf.GetName(), "go_") {
			sawGo = true
			break
		}
	}
	if !sawGo {
		t.Fatal("expected go_* metrics from the runtime collector")
	}
}
