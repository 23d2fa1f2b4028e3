package balancer

import "math/rand/v2"

// Source supplies the random decisions of the engine: pair swaps, goalkeeper
// order and the tie-break winner. Float64 must return values in [0, 1).
//
// *math/rand/v2.Rand satisfies Source but is not safe for concurrent use.
type Source interface {
	Float64() float64
}

// processSource draws from the top-level math/rand/v2 generator.
type processSource struct{}

func (processSource) Float64() float64 {
	return rand.Float64()
}
