package tracer

import (
	"math"
	"math/rand"
)

// Extinction decides when a light path stops propagating
type Extinction interface {
	// Terminate reports whether a path at the given depth should stop
	Terminate(depth int, random *rand.Rand) bool
}

// Fix terminates every path past a fixed depth
type Fix struct {
	MaxDepth int
}

// Terminate implements the hard depth cutoff
func (f Fix) Terminate(depth int, random *rand.Rand) bool {
	return depth > f.MaxDepth
}

// HalfLife terminates paths stochastically so that, in expectation, half
// of them survive every Lambda bounces
type HalfLife struct {
	Lambda float64

	propagationProbability float64
}

// NewHalfLife creates a stochastic extinction policy with the given
// half-life. A non-positive half-life extinguishes immediately.
func NewHalfLife(lambda float64) HalfLife {
	if lambda <= 0 {
		return HalfLife{Lambda: lambda, propagationProbability: 0}
	}
	return HalfLife{
		Lambda:                 lambda,
		propagationProbability: math.Exp(-math.Ln2 / lambda),
	}
}

// Terminate implements the stochastic cutoff
func (h HalfLife) Terminate(depth int, random *rand.Rand) bool {
	return h.propagationProbability < random.Float64()
}
