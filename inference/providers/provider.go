// Package providers - ONNX Runtime session construction and execution
// provider selection for the digit classifier.
package providers

// ProviderBackend identifies an ONNX Runtime execution provider.
type ProviderBackend string

const (
	// CPUProviderBackend is the default CPU execution provider.
	CPUProviderBackend ProviderBackend = "cpu"
	// CoreMLProviderBackend uses Apple CoreML for macOS/iOS acceleration.
	CoreMLProviderBackend ProviderBackend = "coreml"
)

// ExecutionProvider selects the hardware path a session runs on. The model
// handle may be shared read-only across sessions, so provider values carry no
// mutable state.
type ExecutionProvider interface {
	Backend() ProviderBackend
}

// CPUProvider runs the model on the default CPU execution provider.
type CPUProvider struct{}

// Backend returns the provider backend identifier.
func (CPUProvider) Backend() ProviderBackend { return CPUProviderBackend }

// CoreMLProvider runs the model through Apple CoreML where available.
type CoreMLProvider struct {
	// Flags are passed straight to the CoreML execution provider; zero
	// selects the defaults.
	Flags uint32
}

// Backend returns the provider backend identifier.
func (CoreMLProvider) Backend() ProviderBackend { return CoreMLProviderBackend }
