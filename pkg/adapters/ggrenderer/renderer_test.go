package ggrenderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/camrecord/pkg/ports"
)

func TestRenderer_FrameToImage(t *testing.T) {
	r := New()
	size := ports.Dimension{Width: 2, Height: 1}
	frame := []byte{255, 0, 0, 0, 0, 255}

	img, err := r.FrameToImage(frame, size)
	if err != nil {
		t.Fatalf("FrameToImage failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red at 0,0, got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(1, 0)).(color.RGBA); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected blue at 1,0, got %v", got)
	}
}

func TestRenderer_FrameToImageWrongSize(t *testing.T) {
	r := New()
	_, err := r.FrameToImage(make([]byte, 5), ports.Dimension{Width: 2, Height: 1})
	if !errors.Is(err, ports.ErrFrame) {
		t.Errorf("expected ErrFrame, got %v", err)
	}
}

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 100, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()

	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeJPEG(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 50, 40))

	data, err := r.EncodeImage(img, ports.FormatJPEG, 85)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if format != "jpeg" || cfg.Width != 50 || cfg.Height != 40 {
		t.Errorf("unexpected %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))

	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if format != "png" || cfg.Width != 30 || cfg.Height != 30 {
		t.Errorf("unexpected %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestRenderer_EncodeUnknownFormat(t *testing.T) {
	if _, err := New().EncodeImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), ports.ImageFormat(9), 0); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderer_PanelImage(t *testing.T) {
	r := New()
	size := ports.Dimension{Width: 4, Height: 2}
	frame := bytes.Repeat([]byte{0, 200, 0}, 4*2)

	img, err := r.PanelImage(frame, size, ports.Dimension{Width: 8, Height: 4})
	if err != nil {
		t.Fatalf("PanelImage failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("expected 8x4, got %v", img.Bounds())
	}
	if got := color.RGBAModel.Convert(img.At(5, 3)).(color.RGBA); got.G < 190 || got.R > 10 {
		t.Errorf("expected green after scaling, got %v", got)
	}

	same, err := r.PanelImage(frame, size, size)
	if err != nil || same.Bounds().Dx() != 4 {
		t.Errorf("expected unscaled image, got %v, %v", same.Bounds(), err)
	}
}

func TestRenderer_PanelImageWrongSize(t *testing.T) {
	_, err := New().PanelImage([]byte{1, 2, 3}, ports.Dimension{Width: 4, Height: 2}, ports.Dimension{Width: 2, Height: 1})
	if !errors.Is(err, ports.ErrFrame) {
		t.Errorf("expected ErrFrame, got %v", err)
	}
}

func TestCanvas_DrawRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	canvas.DrawRect(10, 10, 30, 30, color.RGBA{R: 255, A: 255})

	img := canvas.ToImage()

	c := img.At(20, 20)
	red, green, _, _ := c.RGBA()
	if red == 0 || green != 0 {
		t.Error("expected red pixel inside rectangle")
	}
}

func TestCanvas_DrawPanel(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	panel := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			panel.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	canvas.DrawPanel(panel, 50, 0)
	img := canvas.ToImage()

	_, _, b, _ := img.At(75, 25).RGBA()
	if b == 0 {
		t.Error("expected blue pixel inside the panel")
	}
	red, _, _, _ := img.At(25, 25).RGBA()
	if red != 0xffff {
		t.Error("expected white outside the panel")
	}
}

func TestCanvas_DrawText(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(200, 50, color.White)

	style := ports.TextStyle{
		FontSize: 14,
		Color:    color.Black,
		FontPath: "/nonexistent/font.ttf",
	}

	// Should not panic
	canvas.DrawText("camera 0", 10, 10, style)

	img := canvas.ToImage()
	if img == nil {
		t.Error("expected image to be created")
	}
}
