package inference

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSoftmaxDistribution validates the basic probability invariants.
func TestSoftmaxDistribution(t *testing.T) {
	tests := []struct {
		name   string
		scores []float32
	}{
		{"typical logits", []float32{1.3, -0.2, 4.7, 0.0, 2.1, -3.8, 0.6, 1.1, -1.5, 3.3}},
		{"all zero", []float32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"all negative", []float32{-5, -4, -3, -2, -1, -6, -7, -8, -9, -10}},
		{"single entry", []float32{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]float32, len(tt.scores))
			copy(in, tt.scores)
			Softmax(in)

			var sum float32
			for i, p := range in {
				assert.GreaterOrEqual(t, p, float32(0), "probability %d should be non-negative", i)
				assert.LessOrEqual(t, p, float32(1), "probability %d should not exceed 1", i)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-6, "probabilities should sum to 1")

			// Softmax is monotonic: output ordering matches input ordering.
			for i := range tt.scores {
				for j := range tt.scores {
					if tt.scores[i] < tt.scores[j] {
						assert.Less(t, in[i], in[j], "ordering of entries %d and %d should be preserved", i, j)
					}
				}
			}
		})
	}
}

// TestSoftmaxStability feeds logits far beyond float32 exp range; the
// max-subtraction form must keep every exponent <= 0.
func TestSoftmaxStability(t *testing.T) {
	tests := []struct {
		name   string
		scores []float32
	}{
		{"huge positive", []float32{1e6, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"huge negative", []float32{-1e6, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"huge spread", []float32{-1e6, 1e6, -5e5, 5e5, 0, 1, -1, 2, -2, 3}},
		{"all huge", []float32{1e6, 1e6, 1e6, 1e6, 1e6, 1e6, 1e6, 1e6, 1e6, 1e6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Softmax(tt.scores)

			var sum float32
			for i, p := range tt.scores {
				require.False(t, math32.IsNaN(p), "entry %d should not be NaN", i)
				require.False(t, math32.IsInf(p, 0), "entry %d should not be Inf", i)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-6, "probabilities should sum to 1 even for extreme logits")
		})
	}
}

func TestSoftmaxEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Softmax(nil) }, "empty input should be a no-op")
}

// TestArgmaxTieBreak checks the first-maximum rule: exact ties resolve to the
// lowest index.
func TestArgmaxTieBreak(t *testing.T) {
	scores := []float32{0, 0, 0, 0.7, 0, 0, 0, 0.7, 0, 0}
	assert.Equal(t, 3, Argmax(scores), "tied maxima at 3 and 7 should resolve to 3")
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		want   int
	}{
		{"max at end", []float32{0.1, 0.2, 0.3, 0.4}, 3},
		{"max at start", []float32{5, 1, 2, 3}, 0},
		{"all negative", []float32{-3, -1, -2}, 1},
		{"all equal", []float32{0.1, 0.1, 0.1}, 0},
		{"empty", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Argmax(tt.values))
		})
	}
}
