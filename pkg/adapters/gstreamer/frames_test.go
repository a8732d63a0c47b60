package gstreamer

import (
	"bytes"
	"testing"
)

func TestPackRows_Tight(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	frame, err := PackRows(data, 2, 1)
	if err != nil {
		t.Fatalf("PackRows failed: %v", err)
	}
	if !bytes.Equal(frame, data) {
		t.Errorf("expected %v, got %v", data, frame)
	}
	data[0] = 99
	if frame[0] == 99 {
		t.Error("expected a copy, got an alias of the input")
	}
}

func TestPackRows_StridePadding(t *testing.T) {
	// width 1 -> 3 bytes per row, padded to a 4-byte stride
	data := []byte{
		1, 2, 3, 0,
		4, 5, 6, 0,
	}
	frame, err := PackRows(data, 1, 2)
	if err != nil {
		t.Fatalf("PackRows failed: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(frame, want) {
		t.Errorf("expected %v, got %v", want, frame)
	}
}

func TestPackRows_TooSmall(t *testing.T) {
	if _, err := PackRows(make([]byte, 5), 2, 1); err == nil {
		t.Error("expected error for undersized buffer")
	}
}
