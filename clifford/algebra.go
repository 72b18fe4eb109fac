/*
Package clifford is a reference gate algebra for the benchmark: the one- and
two-qubit Clifford groups held as dense unitary tables. Sampling is uniform
over the group, and composition and inversion are exact group lookups.
*/
package clifford

import (
	"math/rand/v2"

	"github.com/theapemachine/qbench"
)

// Algebra samples uniformly from the Clifford group.
type Algebra struct{}

func New() *Algebra {
	return &Algebra{}
}

func (a *Algebra) Identity(qubits int) (qbench.Operator, error) {
	group, err := GroupFor(qubits)
	if err != nil {
		return nil, err
	}
	return group.Identity(), nil
}

// Sample draws one element with a single rng.IntN call.
func (a *Algebra) Sample(qubits int, rng *rand.Rand) (qbench.Operator, error) {
	group, err := GroupFor(qubits)
	if err != nil {
		return nil, err
	}
	return Element{group: group, index: rng.IntN(group.Size())}, nil
}
