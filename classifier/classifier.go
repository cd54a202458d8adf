// Package classifier - The single synchronous entry point the drawing
// collaborator calls: hand over a finished canvas, get back a digit and its
// probability distribution.
package classifier

import (
	"image"

	"github.com/draw-ml/go-digit/images"
	"github.com/draw-ml/go-digit/inference"
	"github.com/draw-ml/go-digit/inference/providers"
)

// Config represents the configuration for the digit classifier.
type Config struct {
	// ModelPath is the path to the serialized ONNX model file.
	ModelPath string
	// InputName is the model's input tensor name (configuration, not
	// discovered); providers.DefaultInputName when empty.
	InputName string
	// OutputName is the model's output tensor name;
	// providers.DefaultOutputName when empty.
	OutputName string
	// LibraryPath overrides the ONNX Runtime shared library location.
	LibraryPath string
	// Provider selects the execution provider; CPU when nil.
	Provider providers.ExecutionProvider
}

// Classifier glues the canvas-to-tensor converter to the inference engine.
// One classifier per drawing session; the whole pipeline runs on the calling
// goroutine in strict sequence, so a classifier must not be shared.
type Classifier struct {
	engine *inference.Engine
}

// New creates a classifier backed by an ONNX Runtime session for the model
// at cfg.ModelPath. A load failure satisfies errors.Is(err,
// inference.ErrModelLoad) and the caller must not proceed without handling it.
func New(cfg Config) (*Classifier, error) {
	session, err := providers.NewSession(providers.NewSessionArgs{
		ModelPath:   cfg.ModelPath,
		InputName:   cfg.InputName,
		OutputName:  cfg.OutputName,
		LibraryPath: cfg.LibraryPath,
		Provider:    cfg.Provider,
	})
	if err != nil {
		return nil, err
	}
	return NewWithForward(session), nil
}

// NewWithForward creates a classifier around an arbitrary forward-pass
// runner. Used by tests and by callers embedding their own execution engine.
func NewWithForward(runner inference.Forward) *Classifier {
	return &Classifier{engine: inference.NewEngine(runner)}
}

// Classify runs the full pipeline over one raw canvas buffer: convert into
// the engine's input tensor, one forward pass, softmax, argmax.
//
// Arguments:
// - pix: Raw RGBA8 bytes, row-major, four bytes per pixel.
// - width: Canvas width in pixels.
// - height: Canvas height in pixels.
//
// Returns:
// - inference.Result: The predicted digit and probability distribution.
// - error: inference.ErrInvalidInput if the buffer disagrees with its
//   dimensions, inference.ErrInference if the forward pass fails.
func (c *Classifier) Classify(pix []byte, width, height int) (inference.Result, error) {
	frame := images.Frame{Pix: pix, Width: width, Height: height}
	if err := inference.PrepareInput(frame, c.engine.Input()); err != nil {
		return inference.Result{}, err
	}
	return c.engine.Run()
}

// ClassifyImage classifies a decoded image file. The image is fitted onto
// the model's 28x28 plane with Lanczos3 before the fixed conversion stage,
// so arbitrary photo resolutions keep their stroke detail.
func (c *Classifier) ClassifyImage(img image.Image) (inference.Result, error) {
	frame := images.FromImage(img, inference.InputWidth, inference.InputHeight)
	return c.Classify(frame.Pix, frame.Width, frame.Height)
}

// Close releases the model handle.
func (c *Classifier) Close() error {
	return c.engine.Close()
}
