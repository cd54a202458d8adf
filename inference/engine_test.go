package inference

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubForward is a forward-pass runner that writes fixed logits, standing in
// for the model-execution engine.
type stubForward struct {
	logits [NumClasses]float32
	err    error
	runs   int
	closed bool
}

func (s *stubForward) Run(input, output []float32) error {
	s.runs++
	if s.err != nil {
		return s.err
	}
	copy(output, s.logits[:])
	return nil
}

func (s *stubForward) Close() error {
	s.closed = true
	return nil
}

func TestEngineRun(t *testing.T) {
	stub := &stubForward{logits: [NumClasses]float32{0, 0, 0, 10, 0, 0, 0, 0, 0, 0}}
	engine := NewEngine(stub)

	// End-to-end: a solid black 280x224 canvas converts to an all-ones
	// tensor, then the stub model votes for class 3.
	frame := solidFrame(280, 224, 0, 0, 0)
	require.NoError(t, PrepareInput(frame, engine.Input()))
	for i, v := range engine.Input() {
		require.Equal(t, float32(1.0), v, "input cell %d should be fully inked", i)
	}

	result, err := engine.Run()
	require.NoError(t, err, "forward pass over valid input should succeed")
	assert.Equal(t, 3, result.Class, "logit 10 at index 3 should win")
	assert.Greater(t, result.Probabilities[3], float32(0.999), "winning class should take nearly all mass")

	var sum float32
	for i, p := range result.Probabilities {
		sum += p
		if i != 3 {
			assert.Less(t, p, float32(1e-4), "losing class %d should be near zero", i)
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-6, "probabilities should sum to 1")
}

// TestEngineRunFailure checks that a failed forward pass surfaces as
// ErrInference without poisoning the engine.
func TestEngineRunFailure(t *testing.T) {
	stub := &stubForward{
		logits: [NumClasses]float32{0, 0, 0, 0, 0, 0, 0, 7, 0, 0},
		err:    errors.New("execution engine fault"),
	}
	engine := NewEngine(stub)

	_, err := engine.Run()
	require.Error(t, err, "a forward-pass fault must not go unreported")
	assert.ErrorIs(t, err, ErrInference, "failure should carry the inference error class")

	// The engine stays Ready: the next call runs normally.
	stub.err = nil
	result, err := engine.Run()
	require.NoError(t, err, "engine should remain usable after a failed run")
	assert.Equal(t, 7, result.Class)
	assert.Equal(t, 2, stub.runs, "both calls should have reached the runner")
}

func TestEngineBuffersReused(t *testing.T) {
	engine := NewEngine(&stubForward{})

	first := engine.Input()
	require.Len(t, first, InputSize, "input tensor should be 1x1x28x28")

	_, err := engine.Run()
	require.NoError(t, err)

	second := engine.Input()
	assert.Same(t, &first[0], &second[0], "input tensor should be reused, not reallocated")
}

func TestEngineTieBreak(t *testing.T) {
	stub := &stubForward{logits: [NumClasses]float32{0, 0, 0, 4, 0, 0, 0, 4, 0, 0}}
	engine := NewEngine(stub)

	result, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, result.Class, "exact tie between 3 and 7 should resolve to 3")
}

func TestEngineClose(t *testing.T) {
	stub := &stubForward{}
	engine := NewEngine(stub)

	require.NoError(t, engine.Close())
	assert.True(t, stub.closed, "closing the engine should release the model handle")
}
