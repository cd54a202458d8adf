// Package providers - Inference sessions.
package providers

import (
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/draw-ml/go-digit/inference"
)

// The tensor names a trained model exports are part of its interface; they
// are configuration, never discovered at runtime. These defaults match the
// canonical exported MNIST classifier.
const (
	// DefaultInputName is the input tensor name of the reference model.
	DefaultInputName = "Input3"
	// DefaultOutputName is the output tensor name of the reference model.
	DefaultOutputName = "Plus214_Output_0"
)

// NewSessionArgs represents the arguments for creating a new digit
// classification session.
type NewSessionArgs struct {
	// ModelPath is the path to the serialized ONNX model file.
	ModelPath string
	// InputName is the model's input tensor name; DefaultInputName when empty.
	InputName string
	// OutputName is the model's output tensor name; DefaultOutputName when empty.
	OutputName string
	// LibraryPath overrides the ONNX Runtime shared library location;
	// GetSharedLibPath() when empty.
	LibraryPath string
	// Provider selects the execution provider; CPU when nil.
	Provider ExecutionProvider
}

// Session is the ONNX Runtime side of the forward-pass contract. It owns the
// preallocated 1x1x28x28 input and 1x10 output tensors bound to the model's
// exported node names and reuses them across calls.
type Session struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// Session implements the engine's forward-pass contract.
var _ inference.Forward = (*Session)(nil)

// NewSession creates a new ONNX Runtime session for the digit model.
//
// Order of operations:
//  1. Library path check: ensures the native runtime is accessible.
//  2. Environment setup: prepares ONNX Runtime internals, once per process.
//  3. Tensor allocation: fixed-shape input/output buffers, reused per call.
//  4. Session options: threading and graph optimization level.
//  5. Execution provider: CoreML when requested, CPU otherwise.
//  6. Session creation: loads the model and binds tensors by node name.
//
// Any failure here, including a model whose declared shapes or names reject
// the fixed contract, surfaces as inference.ErrModelLoad: the session is
// unusable and the caller must not proceed.
//
// Arguments:
//   - args: The arguments for the session.
//
// Returns:
//   - *Session: Wrapped session holding the native session and tensors.
//   - error: An error if the session creation fails.
func NewSession(args NewSessionArgs) (*Session, error) {
	libPath := args.LibraryPath
	if libPath == "" {
		libPath = GetSharedLibPath()
	}
	if _, err := os.Stat(libPath); err != nil {
		return nil, errors.Wrapf(inference.ErrModelLoad,
			"ONNX Runtime library not found at %q: %v", libPath, err)
	}

	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrapf(inference.ErrModelLoad,
				"error initializing ORT environment: %v", err)
		}
	}

	inputShape := ort.NewShape(1, 1, inference.InputHeight, inference.InputWidth)
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, errors.Wrapf(inference.ErrModelLoad, "error creating input tensor: %v", err)
	}

	outputShape := ort.NewShape(1, inference.NumClasses)
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrapf(inference.ErrModelLoad, "error creating output tensor: %v", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(inference.ErrModelLoad, "error creating ORT session options: %v", err)
	}
	defer options.Destroy()

	// A value of 0 uses the default number of threads; the model is small
	// enough that tuning buys nothing.
	options.SetIntraOpNumThreads(0)
	options.SetInterOpNumThreads(0)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	if args.Provider != nil && args.Provider.Backend() == CoreMLProviderBackend {
		flags := uint32(0)
		if coreml, ok := args.Provider.(CoreMLProvider); ok {
			flags = coreml.Flags
		}
		if err := options.AppendExecutionProviderCoreML(flags); err != nil {
			inputTensor.Destroy()
			outputTensor.Destroy()
			return nil, errors.Wrapf(inference.ErrModelLoad, "error enabling CoreML: %v", err)
		}
	}

	inputName := args.InputName
	if inputName == "" {
		inputName = DefaultInputName
	}
	outputName := args.OutputName
	if outputName == "" {
		outputName = DefaultOutputName
	}

	session, err := ort.NewAdvancedSession(
		args.ModelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(inference.ErrModelLoad, "error creating ORT session: %v", err)
	}

	return &Session{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
	}, nil
}

// Run executes one blocking forward pass: the input slice is copied into the
// bound input tensor, the session runs, and the raw scores are copied back
// into the output slice. On failure the output contents are indeterminate.
//
// Arguments:
//   - input: The 1x1x28x28 tensor data to consume.
//   - output: The destination for the ten raw class scores.
//
// Returns:
//   - error: An error if the forward pass fails.
func (s *Session) Run(input, output []float32) error {
	copy(s.input.GetData(), input)
	if err := s.session.Run(); err != nil {
		return errors.Wrap(err, "error running ORT session")
	}
	copy(output, s.output.GetData())
	return nil
}

// Close releases the tensors and the native session.
//
// Returns:
//   - error: An error if destroying the native session fails.
func (s *Session) Close() error {
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		if err := s.session.Destroy(); err != nil {
			return errors.Wrap(err, "error destroying ORT session")
		}
		s.session = nil
	}
	return nil
}
