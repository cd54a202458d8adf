package inference

import "github.com/chewxy/math32"

// Softmax converts raw class scores into a probability distribution in place.
//
// The maximum score is subtracted from every entry before exponentiating so
// that every exponent is <= 0; without this, logits in the 1e2+ range
// overflow float32 and the division degenerates to NaN.
func Softmax(scores []float32) {
	if len(scores) == 0 {
		return
	}

	rowmax := scores[0]
	for _, s := range scores[1:] {
		if s > rowmax {
			rowmax = s
		}
	}

	var sum float32
	for i, s := range scores {
		e := math32.Exp(s - rowmax)
		scores[i] = e
		sum += e
	}
	// The max-subtracted entry contributes exp(0) == 1, so sum >= 1.
	for i := range scores {
		scores[i] /= sum
	}
}

// Argmax returns the index of the largest entry, first maximum winning on
// exact ties.
func Argmax(values []float32) int {
	if len(values) == 0 {
		return -1
	}
	index := 0
	for i, v := range values[1:] {
		if v > values[index] {
			index = i + 1
		}
	}
	return index
}
