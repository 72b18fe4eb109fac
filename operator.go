package qbench

import (
	"context"
	"math/rand/v2"
)

/*
Operator is an element of the gate algebra the benchmark samples from.

The core never looks inside an Operator. Compose follows application order:
a.Compose(b) is the operator that applies a first and b second, which in
matrix form is B·A. Every sequence, accumulator and circuit in this package
relies on that single convention.
*/
type Operator interface {
	Compose(next Operator) (Operator, error)
	Inverse() (Operator, error)
}

/*
Algebra is the Gate Algebra Provider. Sample must be deterministic for an
rng in the same state, so a seeded Generator replays the same sequence.
*/
type Algebra interface {
	Identity(qubits int) (Operator, error)
	Sample(qubits int, rng *rand.Rand) (Operator, error)
}

// NoiseModel is passed through to the simulator untouched. nil means ideal.
type NoiseModel any

// Circuit is the ordered gate list handed to a Simulator.
type Circuit struct {
	Qubits int
	Gates  []Operator
	// Measured[i] is the qubit read into classical bit i.
	Measured []int
}

/*
Simulator is the Noisy Circuit Simulator. The counts of the returned
Histogram sum to shots unless an error is returned.
*/
type Simulator interface {
	Simulate(ctx context.Context, circuit Circuit, noise NoiseModel, shots int) (Histogram, error)
}

// Sequence is an ordered list of sampled operators, in application order.
type Sequence []Operator

// Histogram maps fixed-width bitstrings to shot counts.
type Histogram map[string]int

// Total returns the number of recorded trials.
func (h Histogram) Total() int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}
