package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp
}

func parseLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = lines[i]
			break
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("failed to parse log line %q: %v", last, err)
	}
	return m
}

// TestInfoContext_WithSpan verifies trace_id and span_id are injected when
// an active span is in context. No helper is needed, just InfoContext.
func TestInfoContext_WithSpan(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	ctx, span := otel.Tracer("test").Start(context.Background(), "my-span")
	defer span.End()

	log.InfoContext(ctx, "hello")

	entry := parseLastLine(t, &buf)
	if _, ok := entry["trace_id"]; !ok {
		t.Error("expected trace_id")
	}
	if _, ok := entry["span_id"]; !ok {
		t.Error("expected span_id")
	}
}

// TestInfoContext_NoSpan verifies no trace or request fields appear on a bare context.
func TestInfoContext_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	log.InfoContext(context.Background(), "no span")

	entry := parseLastLine(t, &buf)
	for _, k := range []string{"trace_id", "span_id", "request_id", "path", "method"} {
		if _, ok := entry[k]; ok {
			t.Errorf("%s should not be present on a bare context", k)
		}
	}
}

func TestErrorContext_RequestFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	ctx := WithRequestFields(context.Background(), RequestFields{
		RequestID: "req-1",
		Path:      "/api/v1/items",
		Method:    http.MethodPost,
	})
	log.ErrorContext(ctx, "something went wrong", "error", errors.New("boom"), "item_id", 7)

	entry := parseLastLine(t, &buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id: got %v", entry["request_id"])
	}
	if entry["path"] != "/api/v1/items" {
		t.Errorf("path: got %v", entry["path"])
	}
	if entry["method"] != "POST" {
		t.Errorf("method: got %v", entry["method"])
	}
	if entry["error"] == nil {
		t.Error("expected error field")
	}
}

func TestWith_KeepsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug").With("component", "store")

	ctx := WithRequestFields(context.Background(), RequestFields{RequestID: "req-2", Path: "/x", Method: "GET"})
	log.InfoContext(ctx, "query")

	entry := parseLastLine(t, &buf)
	if entry["component"] != "store" || entry["request_id"] != "req-2" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

// TestRequestFields_Isolation verifies concurrent requests never see each other's ids.
func TestRequestFields_Isolation(t *testing.T) {
	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	log := NewWithWriter(&lockedWriter{mu: &mu, w: &buf}, "debug")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			ctx := WithRequestFields(context.Background(), RequestFields{RequestID: id, Path: "/p", Method: "GET"})
			log.InfoContext(ctx, "line", "expected", id)
		}(strings.Repeat("r", i+1))
	}
	wg.Wait()

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad line %q: %v", line, err)
		}
		if m["request_id"] != m["expected"] {
			t.Fatalf("request id leaked: %v", m)
		}
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// TestLoggerMiddleware_LogsStatus verifies the access log carries the final
// status and the request fields bound upstream.
func TestLoggerMiddleware_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := WithRequestFields(req.Context(), RequestFields{RequestID: "abc", Path: req.URL.Path, Method: req.Method})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Use(Middleware(log))
	r.Get("/test", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	entry := parseLastLine(t, &buf)
	if entry["request_id"] != "abc" {
		t.Error("expected request_id in request log")
	}
	if entry["method"] != "GET" {
		t.Errorf("expected method GET, got %v", entry["method"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", entry["status"])
	}
}

func TestRecovery_Returns500(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	entry := parseLastLine(t, &buf)
	if entry["msg"] != "panic recovered" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

// TestNestedSpans verifies same trace_id but different span_ids for parent/child.
func TestNestedSpans(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")
	tracer := otel.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), "parent")
	log.InfoContext(ctx, "parent log")
	parentEntry := parseLastLine(t, &buf)
	buf.Reset()

	ctx, child := tracer.Start(ctx, "child")
	log.InfoContext(ctx, "child log")
	childEntry := parseLastLine(t, &buf)

	child.End()
	parent.End()

	if parentEntry["trace_id"] != childEntry["trace_id"] {
		t.Errorf("expected same trace_id: %v vs %v", parentEntry["trace_id"], childEntry["trace_id"])
	}
	if parentEntry["span_id"] == childEntry["span_id"] {
		t.Error("expected different span_ids for parent and child")
	}
}
