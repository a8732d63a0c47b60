package juxtapose

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/camrecord/pkg/adapters/ggrenderer"
	"github.com/user/camrecord/pkg/mocks"
	"github.com/user/camrecord/pkg/ports"
)

func solidFrame(size ports.Dimension, r, g, b byte) []byte {
	frame := make([]byte, size.FrameBytes())
	for i := 0; i < len(frame); i += 3 {
		frame[i], frame[i+1], frame[i+2] = r, g, b
	}
	return frame
}

func TestLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Gap = 10
	opts.LabelHeight = 20
	opts.Scale = 0.5
	c := New(&mocks.Renderer{}, opts)

	out, rects := c.Layout(ports.Dimension{Width: 640, Height: 480}, ports.Dimension{Width: 320, Height: 240})

	if out.Width != 320+10+160 {
		t.Errorf("expected width 490, got %d", out.Width)
	}
	if out.Height != 20+240 {
		t.Errorf("expected height 260, got %d", out.Height)
	}
	if rects[0] != image.Rect(0, 20, 320, 260) {
		t.Errorf("unexpected left rect %v", rects[0])
	}
	// Smaller right panel is vertically centered.
	if rects[1] != image.Rect(330, 80, 490, 200) {
		t.Errorf("unexpected right rect %v", rects[1])
	}
}

func TestCompose_DrawsPanelsAndLabels(t *testing.T) {
	canvas := &mocks.Canvas{}
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			return canvas
		},
	}
	c := New(renderer, DefaultOptions())
	size := ports.Dimension{Width: 4, Height: 2}

	_, err := c.Compose(
		Panel{Frame: solidFrame(size, 255, 0, 0), Size: size, Label: "camera 0"},
		Panel{Frame: solidFrame(size, 0, 0, 255), Size: size, Label: "camera 1"},
	)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	out, rects := c.Layout(size, size)
	if len(canvas.Panels) != 2 || canvas.Panels[0] != rects[0] || canvas.Panels[1] != rects[1] {
		t.Errorf("expected panels at %v, got %v", rects, canvas.Panels)
	}
	if out.Width != 18 {
		t.Errorf("unexpected output width %d", out.Width)
	}
	if len(canvas.Texts) != 2 || canvas.Texts[0] != "camera 0" || canvas.Texts[1] != "camera 1" {
		t.Errorf("unexpected labels %v", canvas.Texts)
	}
}

func TestCompose_MissingFrameUsesPlaceholder(t *testing.T) {
	canvas := &mocks.Canvas{}
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			return canvas
		},
	}
	c := New(renderer, DefaultOptions())
	size := ports.Dimension{Width: 4, Height: 2}

	if _, err := c.Compose(Panel{Size: size}, Panel{Frame: solidFrame(size, 1, 2, 3), Size: size}); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(canvas.Panels) != 1 {
		t.Errorf("expected only the right panel to be drawn, got %d", len(canvas.Panels))
	}
}

func TestCompose_FrameError(t *testing.T) {
	c := New(ggrenderer.New(), DefaultOptions())
	size := ports.Dimension{Width: 4, Height: 2}

	_, err := c.Compose(Panel{Frame: []byte{1, 2, 3}, Size: size}, Panel{Size: size})
	if !errors.Is(err, ports.ErrFrame) {
		t.Errorf("expected ErrFrame, got %v", err)
	}
}

func TestCompose_Pixels(t *testing.T) {
	opts := DefaultOptions()
	opts.Gap = 2
	opts.LabelHeight = 0
	c := New(ggrenderer.New(), opts)
	size := ports.Dimension{Width: 8, Height: 8}

	img, err := c.Compose(
		Panel{Frame: solidFrame(size, 255, 0, 0), Size: size},
		Panel{Frame: solidFrame(size, 0, 0, 255), Size: size},
	)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if img.Bounds().Dx() != 18 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	r, _, b, _ := img.At(4, 4).RGBA()
	if r < 0xf000 || b > 0x1000 {
		t.Errorf("expected red on the left, got r=%x b=%x", r, b)
	}
	r, _, b, _ = img.At(14, 4).RGBA()
	if b < 0xf000 || r > 0x1000 {
		t.Errorf("expected blue on the right, got r=%x b=%x", r, b)
	}
}

func TestSnapshotter(t *testing.T) {
	sink := mocks.NewSnapshotSink(true)
	snap := NewSnapshotter(New(&mocks.Renderer{}, DefaultOptions()), sink, nil)
	size := ports.Dimension{Width: 4, Height: 2}

	for i := 0; i < 2; i++ {
		if err := snap.Save("stereo", Panel{Size: size}, Panel{Size: size}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	names := sink.Names()
	if len(names) != 2 || names[0] != "stereo-0000" || names[1] != "stereo-0001" {
		t.Errorf("unexpected names %v", names)
	}
	if snap.Count() != 2 {
		t.Errorf("expected count 2, got %d", snap.Count())
	}
}

func TestSnapshotter_DisabledSink(t *testing.T) {
	called := false
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			called = true
			return &mocks.Canvas{}
		},
	}
	snap := NewSnapshotter(New(renderer, DefaultOptions()), mocks.NewSnapshotSink(false), nil)
	size := ports.Dimension{Width: 4, Height: 2}

	if err := snap.Save("stereo", Panel{Size: size}, Panel{Size: size}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if called {
		t.Error("expected no rendering for a disabled sink")
	}
}

func TestCompose_ScalesFramesToPanels(t *testing.T) {
	var panels []ports.Dimension
	renderer := &mocks.Renderer{
		PanelImageFunc: func(frame []byte, size, panel ports.Dimension) (image.Image, error) {
			panels = append(panels, panel)
			return image.NewRGBA(image.Rect(0, 0, panel.Width, panel.Height)), nil
		},
	}
	opts := DefaultOptions()
	opts.Scale = 0.5
	c := New(renderer, opts)
	size := ports.Dimension{Width: 640, Height: 480}

	if _, err := c.Compose(Panel{Frame: solidFrame(size, 1, 1, 1), Size: size}, Panel{Frame: solidFrame(size, 2, 2, 2), Size: size}); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	want := ports.Dimension{Width: 320, Height: 240}
	if len(panels) != 2 || panels[0] != want || panels[1] != want {
		t.Errorf("expected both panels at %v, got %v", want, panels)
	}
}
