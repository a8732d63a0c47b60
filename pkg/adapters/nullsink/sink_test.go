package nullsink

import (
	"image"
	"testing"
)

func TestSink(t *testing.T) {
	sink := New()
	if sink.Enabled() {
		t.Error("expected Enabled to return false")
	}
	if err := sink.SaveSnapshot("left", image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
