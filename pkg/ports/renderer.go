package ports

import (
	"image"
	"image/color"
)

// Renderer turns raw frames into preview images.
type Renderer interface {
	// PanelImage converts a raw RGB frame into an image of the panel size.
	PanelImage(frame []byte, size, panel Dimension) (image.Image, error)

	// CreateCanvas creates a blank preview canvas.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes a preview for a snapshot file.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// Canvas provides drawing operations for compositing previews.
type Canvas interface {
	// DrawPanel draws an image with its top-left corner at x, y.
	DrawPanel(img image.Image, x, y int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws a label with its top-left corner at x, y.
	DrawText(text string, x, y int, style TextStyle)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)

// Extension returns the file extension for the format, including the dot.
func (f ImageFormat) Extension() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}
