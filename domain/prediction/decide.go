package prediction

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// sumTolerance is how far from 1 a vector may sum and still count as a
// probability distribution.
const sumTolerance = 1e-3

// Outcome is a decided prediction plus the distribution it came from.
type Outcome struct {
	Record        Record
	Probabilities []float64
}

// Decide picks the most probable class from probs.
// probs must hold exactly NumClasses finite values. Vectors that are not a
// probability distribution (negative entries, or a sum away from 1) are
// treated as logits and softmax-normalised first. Ties resolve to the lowest
// digit.
func Decide(probs []float64, at time.Time) (Outcome, error) {
	if len(probs) != NumClasses {
		return Outcome{}, fmt.Errorf("%w: got %d values, want %d", ErrInvalidProbabilities, len(probs), NumClasses)
	}
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Outcome{}, fmt.Errorf("%w: value %d is %v", ErrInvalidProbabilities, i, p)
		}
	}

	dist := make([]float64, len(probs))
	copy(dist, probs)
	if !IsDistribution(dist) {
		Softmax(dist)
	}

	digit := floats.MaxIdx(dist)
	confidence := clamp(dist[digit]*100, 0, 100)

	rec, err := NewRecord(at, digit, confidence)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Record: rec, Probabilities: dist}, nil
}

// IsDistribution reports whether v is non-negative and sums to 1.
func IsDistribution(v []float64) bool {
	if len(v) == 0 || floats.Min(v) < 0 {
		return false
	}
	return math.Abs(floats.Sum(v)-1) <= sumTolerance
}

// Softmax normalises v in place.
func Softmax(v []float64) {
	if len(v) == 0 {
		return
	}
	floats.AddConst(-floats.Max(v), v)
	for i := range v {
		v[i] = math.Exp(v[i])
	}
	floats.Scale(1/floats.Sum(v), v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
