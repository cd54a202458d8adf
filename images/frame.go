// Package images - Raw canvas frames exchanged with the classifier.
package images

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// BytesPerPixel is the stride of a single RGBA8 pixel.
const BytesPerPixel = 4

// Frame is a read-only view of a raw RGBA8 canvas buffer, row-major, four
// bytes per pixel. The buffer is owned by the rendering collaborator; the
// pipeline never mutates it.
type Frame struct {
	// Pix holds the raw bytes, R,G,B,A per pixel.
	Pix []byte
	// Width is the buffer width in pixels.
	Width int
	// Height is the buffer height in pixels.
	Height int
}

// NewFrame wraps a raw buffer after checking it is consistent with the
// declared dimensions.
//
// Arguments:
// - pix: Raw RGBA8 bytes, row-major.
// - width: Buffer width in pixels.
// - height: Buffer height in pixels.
//
// Returns:
// - Frame: The wrapped frame.
// - error: An error if the buffer length disagrees with width*height*4.
func NewFrame(pix []byte, width, height int) (Frame, error) {
	f := Frame{Pix: pix, Width: width, Height: height}
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// Validate checks the buffer length against the declared dimensions.
func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return errors.Errorf("invalid frame dimensions: %dx%d", f.Width, f.Height)
	}
	if want := f.Width * f.Height * BytesPerPixel; len(f.Pix) != want {
		return errors.Errorf("frame buffer holds %d bytes, %dx%d RGBA needs %d",
			len(f.Pix), f.Width, f.Height, want)
	}
	return nil
}

// Luminance returns the unweighted RGB average of the pixel at (x, y) in
// [0, 255]. The flat average is deliberate: the digit models downstream were
// trained against this convention, not a perceptual luma.
func (f Frame) Luminance(x, y int) float32 {
	idx := (y*f.Width + x) * BytesPerPixel
	r := f.Pix[idx]
	g := f.Pix[idx+1]
	b := f.Pix[idx+2]
	return float32(uint32(r)+uint32(g)+uint32(b)) / 3.0
}

// FromImage converts a decoded image into an RGBA frame of the given
// dimensions, resizing with Lanczos3 when the source does not already match.
//
// Arguments:
// - img: The decoded source image.
// - width: Target frame width in pixels.
// - height: Target frame height in pixels.
//
// Returns:
// - Frame: An RGBA frame backed by a freshly allocated buffer.
func FromImage(img image.Image, width, height int) Frame {
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	return Frame{Pix: rgba.Pix, Width: width, Height: height}
}
