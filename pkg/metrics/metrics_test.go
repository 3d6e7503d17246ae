package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReconcile(t *testing.T) {
	m := NewManager()
	m.ObserveReconcile(3, 1, 2, 5)
	m.ObserveReconcile(0, 0, 0, 5)

	if got := testutil.ToFloat64(m.reconciles); got != 2 {
		t.Fatalf("reconciles = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.starsAdded); got != 3 {
		t.Fatalf("stars added = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.clampedValues); got != 2 {
		t.Fatalf("clamped = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.stars); got != 5 {
		t.Fatalf("stars gauge = %v, want 5", got)
	}
}

func TestObserveFetchAndInspect(t *testing.T) {
	m := NewManager(WithNamespace("test"))
	m.ObserveFetch(FetchOK, 20*time.Millisecond)
	m.ObserveFetch(FetchError, time.Second)
	m.ObserveFetch(FetchFallback, 0)
	m.ObserveInspect("Go")
	m.ObserveInspect("Go")

	if got := testutil.ToFloat64(m.fetches.WithLabelValues(FetchOK)); got != 1 {
		t.Fatalf("ok fetches = %v", got)
	}
	if got := testutil.ToFloat64(m.inspects.WithLabelValues("Go")); got != 2 {
		t.Fatalf("Go inspects = %v", got)
	}
	if n := testutil.CollectAndCount(m.fetchLatency); n != 1 {
		t.Fatalf("latency collectors = %d", n)
	}
}

func TestNilManagerIsSafe(t *testing.T) {
	var m *Manager
	m.ObserveReconcile(1, 1, 1, 1)
	m.ObserveInspect("x")
	m.ObserveFetch(FetchOK, time.Millisecond)
	m.ObserveFrame(time.Millisecond, 3)
}

func TestHandlerServesNamespace(t *testing.T) {
	m := NewManager()
	m.ObserveFrame(2*time.Millisecond, 4)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "constellation_connections 4") {
		t.Fatalf("connections gauge missing from exposition:\n%s", body)
	}
}
