package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
)

type stubLayer struct{}

func (stubLayer) View() string { return "" }

func stub(*dialog.Controller) dialog.Layer { return stubLayer{} }

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(body)
}

func TestHealthz(t *testing.T) {
	code, body := get(t, MetricsHandler(prometheus.NewRegistry()), "/healthz")
	if code != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", code, body)
	}
}

func TestSessionStoresAreIsolated(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := &Server{cfg: config.Defaults(), reg: reg, log: slog.New(slog.DiscardHandler)}

	a, releaseA := s.newSessionStore("a")
	b, releaseB := s.newSessionStore("b")
	a.MustOpen(stub)
	a.MustOpen(stub)
	b.MustOpen(stub)

	if a.Len() != 2 || b.Len() != 1 {
		t.Fatalf("stores share entries: a=%d b=%d", a.Len(), b.Len())
	}

	_, body := get(t, MetricsHandler(reg), "/metrics")
	for _, want := range []string{
		`dialogstack_entries{session="a",state="open"} 2`,
		`dialogstack_entries{session="b",state="open"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}

	releaseA()
	releaseB()
	_, body = get(t, MetricsHandler(reg), "/metrics")
	if strings.Contains(body, "dialogstack_entries") {
		t.Error("session metrics should be gone after release")
	}
}

func TestSessionStoreUsesBaseZIndex(t *testing.T) {
	cfg := config.Defaults()
	cfg.Stack.BaseZIndex = 10
	s := &Server{cfg: cfg, log: slog.New(slog.DiscardHandler)}

	st, release := s.newSessionStore("x")
	defer release()
	if h := st.MustOpen(stub); h.ZIndex() != 10 {
		t.Errorf("ZIndex = %d, want 10", h.ZIndex())
	}
}
