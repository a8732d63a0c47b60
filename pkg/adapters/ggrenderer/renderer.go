// Package ggrenderer turns raw frames into preview images using gg.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/camrecord/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// FrameToImage copies a packed RGB frame into an RGBA image.
func (r *Renderer) FrameToImage(frame []byte, size ports.Dimension) (image.Image, error) {
	if err := ports.ValidateFrame(frame, size); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	pix := img.Pix
	for i, j := 0, 0; i < len(frame); i, j = i+3, j+4 {
		pix[j] = frame[i]
		pix[j+1] = frame[i+1]
		pix[j+2] = frame[i+2]
		pix[j+3] = 0xff
	}
	return img, nil
}

// PanelImage converts a frame and scales it to the panel size. Equal
// sizes skip the scaler.
func (r *Renderer) PanelImage(frame []byte, size, panel ports.Dimension) (image.Image, error) {
	img, err := r.FrameToImage(frame, size)
	if err != nil {
		return nil, err
	}
	if panel == size || panel.Width <= 0 || panel.Height <= 0 {
		return img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, panel.Width, panel.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// CreateCanvas creates a canvas filled with bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// EncodeImage encodes a snapshot as JPEG at quality or as PNG.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case ports.FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case ports.FormatPNG:
		err = png.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("ggrenderer: unsupported format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("ggrenderer: encode %s: %w", format.Extension(), err)
	}
	return buf.Bytes(), nil
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// DrawPanel draws img unscaled at x, y.
func (c *Canvas) DrawPanel(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text with its top-left corner at x, y. An unreadable
// font file leaves the built-in face in place.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.dc.SetColor(style.Color)
	if style.FontPath != "" {
		_ = c.dc.LoadFontFace(style.FontPath, style.FontSize)
	}
	c.dc.DrawStringAnchored(text, float64(x), float64(y), 0, 1)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
