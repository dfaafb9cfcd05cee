package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFrame(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewFrameCollector(reg)
	if err != nil {
		t.Fatalf("NewFrameCollector: %v", err)
	}

	c.ObserveFrame(0.016, false)
	c.ObserveFrame(0.016, true)

	if got := testutil.ToFloat64(c.Frames); got != 2 {
		t.Errorf("orrery_frames_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Paused); got != 1 {
		t.Errorf("orrery_paused = %v, want 1", got)
	}
}

func TestObserveLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewFrameCollector(reg)
	if err != nil {
		t.Fatalf("NewFrameCollector: %v", err)
	}
	c.ObserveHover("enter", "Earth")
	c.ObserveHover("enter", "Earth")
	c.ObserveCommand("reset")
	c.ObserveSpeed("Mars")

	if got := testutil.ToFloat64(c.Hover.WithLabelValues("enter", "Earth")); got != 2 {
		t.Errorf("hover enter Earth = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Commands.WithLabelValues("reset")); got != 1 {
		t.Errorf("commands reset = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.SpeedChanges.WithLabelValues("Mars")); got != 1 {
		t.Errorf("speed changes Mars = %v, want 1", got)
	}
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewFrameCollector(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewFrameCollector(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	a.ObserveFrame(0.01, false)
	if got := testutil.ToFloat64(b.Frames); got != 1 {
		t.Errorf("expected shared counter, got %v", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *FrameCollector
	c.ObserveFrame(0.1, true)
	c.ObserveHover("exit", "Venus")
	c.ObserveCommand("pause")
	c.ObserveSpeed("Venus")
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewFrameCollector(reg)
	if err != nil {
		t.Fatalf("NewFrameCollector: %v", err)
	}
	c.ObserveFrame(0.02, false)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "orrery_frames_total 1") {
		t.Errorf("expected frames counter in output:\n%s", rr.Body.String())
	}
}
