package mocks

import (
	"image"
	"image/color"

	"github.com/user/camrecord/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	PanelImageFunc   func(frame []byte, size, panel ports.Dimension) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) PanelImage(frame []byte, size, panel ports.Dimension) (image.Image, error) {
	if m.PanelImageFunc != nil {
		return m.PanelImageFunc(frame, size, panel)
	}
	if err := ports.ValidateFrame(frame, size); err != nil {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, panel.Width, panel.Height)), nil
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	width  int
	height int

	// Panels records where each panel image landed.
	Panels []image.Rectangle
	Texts  []string
}

func (m *Canvas) DrawPanel(img image.Image, x, y int) {
	b := img.Bounds()
	m.Panels = append(m.Panels, image.Rect(x, y, x+b.Dx(), y+b.Dy()))
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
