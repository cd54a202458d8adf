// Package canvas - A headless drawing surface for hand-drawn digits: white
// background, thick black brush strokes, and an RGBA snapshot handed to the
// classifier once per finished stroke. Windowing and input capture stay with
// the embedding application.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/draw-ml/go-digit/images"
)

// brushHalfWidth gives the stroke its 5-pixel width. Thick strokes survive
// the 28x28 downsample; a 1-pixel line mostly vanishes.
const brushHalfWidth = 2

var (
	ink        = color.RGBA{0, 0, 0, 255}
	background = color.RGBA{255, 255, 255, 255}
)

// Canvas is an in-memory RGBA8 drawing surface.
type Canvas struct {
	img *image.RGBA
}

// New creates a canvas of the given dimensions, cleared to white.
func New(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Clear()
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Clear resets the whole surface to the white background.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Rect, &image.Uniform{background}, image.Point{}, draw.Src)
}

// Stroke draws a thick line segment from a to b, clamping endpoints to the
// surface. Callers feed consecutive pointer positions while a stroke is in
// progress, one segment per motion event.
func (c *Canvas) Stroke(a, b image.Point) {
	a = c.clamp(a)
	b = c.clamp(b)
	c.line(a, b)
	// Widen the stroke with horizontal offsets of the same segment.
	for i := -brushHalfWidth; i <= brushHalfWidth; i++ {
		if i == 0 {
			continue
		}
		c.line(image.Pt(a.X+i, a.Y), image.Pt(b.X+i, b.Y))
	}
}

// Snapshot copies the current surface into a frame the classifier can
// consume. The copy keeps the canvas free to change while the pipeline runs.
func (c *Canvas) Snapshot() images.Frame {
	pix := make([]byte, len(c.img.Pix))
	copy(pix, c.img.Pix)
	return images.Frame{Pix: pix, Width: c.Width(), Height: c.Height()}
}

func (c *Canvas) clamp(p image.Point) image.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > c.Width()-1 {
		p.X = c.Width() - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > c.Height()-1 {
		p.Y = c.Height() - 1
	}
	return p
}

// line rasterizes one segment with Bresenham's algorithm. Points outside the
// surface (from brush widening) are dropped by SetRGBA's bounds check.
func (c *Canvas) line(a, b image.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	x, y := a.X, a.Y
	for {
		c.img.SetRGBA(x, y, ink)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
