// Package juxtapose composes the two sides of a stereo source into one
// side-by-side preview image.
package juxtapose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/camrecord/pkg/ports"
)

// Options configures the composition.
type Options struct {
	// Gap is the horizontal gap between the two panels in pixels.
	Gap int
	// Scale is applied to both panels (1.0 = native size).
	Scale float64
	// LabelHeight is the band above the panels reserved for labels.
	LabelHeight int
	// FontSize of the labels.
	FontSize float64
	// FontPath is an optional TrueType font for labels.
	FontPath string

	Background color.Color
	LabelColor color.Color
	// Placeholder fills a panel that has no frame yet.
	Placeholder color.Color
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Gap:         10,
		Scale:       1.0,
		LabelHeight: 24,
		FontSize:    14,
		Background:  color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff},
		LabelColor:  color.White,
		Placeholder: color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff},
	}
}

// Panel is one side of the composition.
type Panel struct {
	// Frame is a raw RGB frame; nil draws the placeholder.
	Frame []byte
	Size  ports.Dimension
	Label string
}

// Composer builds side-by-side previews.
type Composer struct {
	renderer ports.Renderer
	opts     Options
}

// New creates a Composer.
func New(renderer ports.Renderer, opts Options) *Composer {
	if opts.Scale <= 0 {
		opts.Scale = 1.0
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	if opts.LabelColor == nil {
		opts.LabelColor = color.White
	}
	if opts.Placeholder == nil {
		opts.Placeholder = color.Black
	}
	return &Composer{renderer: renderer, opts: opts}
}

// Layout returns the output size and the rectangles of both panels.
func (c *Composer) Layout(left, right ports.Dimension) (ports.Dimension, [2]image.Rectangle) {
	lw, lh := c.scaled(left)
	rw, rh := c.scaled(right)

	height := lh
	if rh > height {
		height = rh
	}
	out := ports.Dimension{
		Width:  lw + c.opts.Gap + rw,
		Height: c.opts.LabelHeight + height,
	}

	// Panels sit below the label band, vertically centered.
	ly := c.opts.LabelHeight + (height-lh)/2
	ry := c.opts.LabelHeight + (height-rh)/2
	rx := lw + c.opts.Gap
	return out, [2]image.Rectangle{
		image.Rect(0, ly, lw, ly+lh),
		image.Rect(rx, ry, rx+rw, ry+rh),
	}
}

func (c *Composer) scaled(d ports.Dimension) (int, int) {
	w := int(float64(d.Width) * c.opts.Scale)
	h := int(float64(d.Height) * c.opts.Scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Compose renders both panels side by side with their labels.
func (c *Composer) Compose(left, right Panel) (image.Image, error) {
	out, rects := c.Layout(left.Size, right.Size)
	canvas := c.renderer.CreateCanvas(out.Width, out.Height, c.opts.Background)

	style := ports.TextStyle{
		FontSize: c.opts.FontSize,
		FontPath: c.opts.FontPath,
		Color:    c.opts.LabelColor,
	}

	for i, p := range [2]Panel{left, right} {
		r := rects[i]
		if p.Label != "" {
			canvas.DrawText(p.Label, r.Min.X+4, 4, style)
		}
		if p.Frame == nil {
			canvas.DrawRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c.opts.Placeholder)
			continue
		}
		img, err := c.renderer.PanelImage(p.Frame, p.Size, ports.Dimension{Width: r.Dx(), Height: r.Dy()})
		if err != nil {
			return nil, fmt.Errorf("%s panel: %w", sideName(i), err)
		}
		canvas.DrawPanel(img, r.Min.X, r.Min.Y)
	}

	return canvas.ToImage(), nil
}

func sideName(i int) string {
	if i == 0 {
		return "left"
	}
	return "right"
}
