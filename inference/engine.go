// Package inference - The digit classification core: canvas-to-tensor
// conversion, one forward pass through a pre-trained model, softmax, argmax.
package inference

import "github.com/pkg/errors"

// Forward is the narrow contract with the model-execution engine: one
// complete, synchronous forward pass over fixed-shape buffers. The ONNX
// Runtime session in inference/providers implements it; tests substitute
// stubs.
type Forward interface {
	// Run executes one forward pass, reading the 1x1x28x28 input and
	// writing the 1x10 output. Blocking; returns only when the pass has
	// completed or failed.
	Run(input, output []float32) error
	// Close releases the underlying model handle.
	Close() error
}

// Result is the outcome of one classification request.
type Result struct {
	// Class is the predicted digit, the index of the largest probability.
	Class int
	// Probabilities is the post-softmax distribution over the ten digits.
	Probabilities [NumClasses]float32
}

// Engine owns the fixed input and output tensor buffers and drives the
// forward pass. The buffers are allocated once and reused across calls:
// PrepareInput is the only writer of the input tensor, the execution engine
// the only writer of the output tensor. One engine per drawing session;
// engines must not be shared across goroutines.
type Engine struct {
	runner Forward
	input  []float32
	output []float32
}

// NewEngine creates an engine around a forward-pass runner.
func NewEngine(runner Forward) *Engine {
	return &Engine{
		runner: runner,
		input:  make([]float32, InputSize),
		output: make([]float32, NumClasses),
	}
}

// Input exposes the engine-owned input tensor for PrepareInput to fill.
// Contents persist between calls; PrepareInput overwrites them fully.
func (e *Engine) Input() []float32 {
	return e.input
}

// Run executes one forward pass over the current input tensor contents,
// normalizes the raw scores into probabilities, and picks the class.
//
// The engine does not validate that the input tensor was freshly populated;
// it blindly consumes the current buffer. A failed pass leaves the output
// tensor indeterminate and the engine usable for the next call.
//
// Returns:
// - Result: The predicted class and full probability distribution.
// - error: ErrInference if the forward pass fails; no Result is produced.
func (e *Engine) Run() (Result, error) {
	if err := e.runner.Run(e.input, e.output); err != nil {
		return Result{}, errors.Wrap(ErrInference, err.Error())
	}

	Softmax(e.output)

	result := Result{Class: Argmax(e.output)}
	copy(result.Probabilities[:], e.output)
	return result, nil
}

// Close releases the model handle. The engine must not be used afterwards.
func (e *Engine) Close() error {
	return e.runner.Close()
}
