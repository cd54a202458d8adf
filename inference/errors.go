package inference

import "github.com/pkg/errors"

// Error taxonomy for the classification pipeline. Callers branch with
// errors.Is; every failure is surfaced, never folded into a default
// class-0 prediction.
var (
	// ErrModelLoad reports that the model file is absent, unreadable, or
	// its declared tensor shapes/names do not match the fixed contract.
	// Fatal to the engine instance.
	ErrModelLoad = errors.New("model load failed")

	// ErrInvalidInput reports a canvas buffer whose length is inconsistent
	// with its declared width and height. Recoverable: re-capture the
	// canvas or skip the request.
	ErrInvalidInput = errors.New("invalid input buffer")

	// ErrInference reports a forward-pass failure at the execution-engine
	// level. Recoverable per call: the engine remains usable, only the
	// current request's result is discarded.
	ErrInference = errors.New("inference failed")
)
