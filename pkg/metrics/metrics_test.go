package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSessionLifecycle(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordSessionStart()
	if got := testutil.ToFloat64(m.ActiveSessions); got != 1 {
		t.Errorf("expected 1 active session, got %v", got)
	}
	m.RecordSessionStop(2)
	if got := testutil.ToFloat64(m.ActiveSessions); got != 0 {
		t.Errorf("expected 0 active sessions, got %v", got)
	}
	if got := testutil.ToFloat64(m.SessionsStarted); got != 1 {
		t.Errorf("expected 1 started session, got %v", got)
	}
}

func TestFrameCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordFrame("left")
	m.RecordFrame("left")
	m.RecordEncoded("left")
	m.RecordDrop("right", "read")

	if got := testutil.ToFloat64(m.FramesCaptured.WithLabelValues("left")); got != 2 {
		t.Errorf("expected 2 captured, got %v", got)
	}
	if got := testutil.ToFloat64(m.FramesEncoded.WithLabelValues("left")); got != 1 {
		t.Errorf("expected 1 encoded, got %v", got)
	}
	if got := testutil.ToFloat64(m.FramesDropped.WithLabelValues("right", "read")); got != 1 {
		t.Errorf("expected 1 dropped, got %v", got)
	}
}

func TestFinalizeErrors(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordFinalize(0.1, nil)
	m.RecordFinalize(5, errors.New("timeout"))
	if got := testutil.ToFloat64(m.FinalizeErrors); got != 1 {
		t.Errorf("expected 1 finalize error, got %v", got)
	}
}

func TestNew_Unregistered(t *testing.T) {
	a := New(nil)
	b := New(nil)
	a.RecordFrame("left")
	if testutil.ToFloat64(b.FramesCaptured.WithLabelValues("left")) != 0 {
		t.Error("expected independent metric sets")
	}
}
