package observability

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghuser/itemsvc/pkg/logger"
	"github.com/ghuser/itemsvc/pkg/metrics"
)

func newTestMetrics(t *testing.T) (*metrics.HTTPMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	return m, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, method, path, status string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == method && labels["path"] == path && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func gaugeValue(t *testing.T, reg *prometheus.Registry) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_in_flight" {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("in-flight gauge not found")
	return 0
}

func TestMiddleware_SetsRequestIDHeader(t *testing.T) {
	m, _ := newTestMetrics(t)

	var seen string
	h := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	got := rr.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("X-Request-ID %q is not a UUID: %v", got, err)
	}
	if seen != got {
		t.Fatalf("context request id %q differs from header %q", seen, got)
	}
}

func TestMiddleware_UniqueIDsPerRequest(t *testing.T) {
	m, _ := newTestMetrics(t)
	h := Middleware(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	ids := map[string]bool{}
	for i := 0; i < 20; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		id := rr.Header().Get(RequestIDHeader)
		if ids[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		ids[id] = true
	}
}

func TestMiddleware_BindsPathAndMethod(t *testing.T) {
	m, _ := newTestMetrics(t)

	var fields logger.RequestFields
	h := Middleware(m)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		fields, _ = logger.RequestFieldsFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/api/v1/items/3", http.NoBody))

	if fields.Path != "/api/v1/items/3" || fields.Method != http.MethodPatch {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestMiddleware_CountsByRoutePatternAndStatus(t *testing.T) {
	m, reg := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(Middleware(m))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, http.NoBody))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

	if got := counterValue(t, reg, "GET", "/items/{id}", "404"); got != 3 {
		t.Fatalf("expected 3 requests on /items/{id}, got %v", got)
	}
	if got := counterValue(t, reg, "GET", unmatchedRoute, "404"); got != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", got)
	}
}

func TestMiddleware_DefaultStatusIs200(t *testing.T) {
	m, reg := newTestMetrics(t)
	h := Middleware(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quiet", http.NoBody))

	if got := counterValue(t, reg, "GET", "/quiet", "200"); got != 1 {
		t.Fatalf("expected 200 to be recorded, got %v", got)
	}
}

func TestMiddleware_InFlightDecrementsOnPanic(t *testing.T) {
	m, reg := newTestMetrics(t)
	h := Middleware(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler failure")
	}))

	func() {
		defer func() {
			if rec := recover(); rec == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	}()

	if got := gaugeValue(t, reg); got != 0 {
		t.Fatalf("in-flight gauge drifted to %v", got)
	}
	if got := counterValue(t, reg, "GET", "/boom", "500"); got != 1 {
		t.Fatalf("expected panic to be counted as 500, got %v", got)
	}
}

func TestMiddleware_InFlightDuringRequest(t *testing.T) {
	m, reg := newTestMetrics(t)

	var during float64
	h := Middleware(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		during = gaugeValue(t, reg)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if during != 1 {
		t.Fatalf("expected gauge 1 during request, got %v", during)
	}
	if after := gaugeValue(t, reg); after != 0 {
		t.Fatalf("expected gauge 0 after request, got %v", after)
	}
}

func TestMiddleware_ConcurrentRequestsNoLostUpdates(t *testing.T) {
	m, reg := newTestMetrics(t)
	h := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/c", http.NoBody))
		}()
	}
	wg.Wait()

	if got := counterValue(t, reg, "GET", "/c", "200"); got != n {
		t.Fatalf("expected %d counted requests, got %v", n, got)
	}
	if got := gaugeValue(t, reg); got != 0 {
		t.Fatalf("in-flight gauge drifted to %v", got)
	}
}
