package inference

import (
	"github.com/pkg/errors"

	"github.com/draw-ml/go-digit/images"
)

// Fixed model contract: one 28x28 grayscale plane in, ten class scores out.
const (
	// InputWidth is the width of the model input plane.
	InputWidth = 28
	// InputHeight is the height of the model input plane.
	InputHeight = 28
	// InputSize is the flattened length of the input tensor (1x1x28x28).
	InputSize = InputWidth * InputHeight
	// NumClasses is the number of digit classes in the output tensor (1x10).
	NumClasses = 10
)

// PrepareInput downsamples a raw RGBA canvas frame into the engine-owned
// 28x28 input tensor, typically called right before Run.
//
// Sampling is nearest-neighbor: each destination cell reads the single source
// pixel at (col*Width/28, row*Height/28) using floor division. The pixel's
// unweighted RGB average is inverted and scaled so that 1.0 means fully inked
// and 0.0 means blank background. No interpolation: cheap, deterministic, and
// the digit models tolerate the aliasing. Sources smaller than 28x28 simply
// duplicate-sample pixels.
//
// The destination is zero-filled before writing so no residue from a prior
// drawing survives. On error the destination is left untouched.
//
// Arguments:
// - frame: The raw canvas buffer with its dimensions.
// - dst: The destination tensor data, at least InputSize floats.
//
// Returns:
// - error: ErrInvalidInput if the frame is inconsistent with its dimensions.
func PrepareInput(frame images.Frame, dst []float32) error {
	if err := frame.Validate(); err != nil {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	if len(dst) < InputSize {
		return errors.Errorf("destination tensor only holds %d floats, needs %d (make sure it's the right shape!)",
			len(dst), InputSize)
	}

	for i := 0; i < InputSize; i++ {
		dst[i] = 0
	}

	for row := 0; row < InputHeight; row++ {
		srcY := row * frame.Height / InputHeight
		for col := 0; col < InputWidth; col++ {
			srcX := col * frame.Width / InputWidth
			val := frame.Luminance(srcX, srcY)
			dst[row*InputWidth+col] = (255.0 - val) / 255.0
		}
	}
	return nil
}
