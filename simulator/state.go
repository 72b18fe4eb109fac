package simulator

import (
	"math/cmplx"
	"math/rand/v2"
)

// Pauli labels used for depolarizing kicks.
const (
	pauliX = iota + 1
	pauliY
	pauliZ
)

// state is a dense state vector over qubits; basis index bit k is qubit k.
type state struct {
	qubits  int
	vector  []complex128
	scratch []complex128
}

func newState(qubits int) *state {
	dim := 1 << qubits
	s := &state{
		qubits:  qubits,
		vector:  make([]complex128, dim),
		scratch: make([]complex128, dim),
	}
	s.vector[0] = 1
	return s
}

func (s *state) reset() {
	clear(s.vector)
	s.vector[0] = 1
}

// apply replaces the vector with u·vector.
func (s *state) apply(u []complex128) {
	dim := len(s.vector)

	for r := 0; r < dim; r++ {
		var sum complex128
		row := u[r*dim : (r+1)*dim]
		for c, amplitude := range s.vector {
			sum += row[c] * amplitude
		}
		s.scratch[r] = sum
	}

	s.vector, s.scratch = s.scratch, s.vector
}

func (s *state) applyPauli(q, pauli int) {
	bit := 1 << q

	for i := range s.vector {
		if i&bit != 0 {
			continue
		}

		a0, a1 := s.vector[i], s.vector[i|bit]

		switch pauli {
		case pauliX:
			s.vector[i], s.vector[i|bit] = a1, a0
		case pauliY:
			s.vector[i], s.vector[i|bit] = -1i*a1, 1i*a0
		case pauliZ:
			s.vector[i|bit] = -a1
		}
	}
}

// depolarize hits every qubit with a uniformly random Pauli with probability p.
func (s *state) depolarize(p float64, rng *rand.Rand) {
	for q := 0; q < s.qubits; q++ {
		if rng.Float64() < p {
			s.applyPauli(q, pauliX+rng.IntN(3))
		}
	}
}

// probabilities returns the normalised Born weights of the basis states.
func (s *state) probabilities() []float64 {
	probs := make([]float64, len(s.vector))
	total := 0.0

	for i, amplitude := range s.vector {
		prob := cmplx.Abs(amplitude)
		prob *= prob
		probs[i] = prob
		total += prob
	}

	if total == 0 {
		return probs
	}

	for i := range probs {
		probs[i] /= total
	}

	return probs
}

// sample draws one basis index from probs.
func sample(probs []float64, rng *rand.Rand) int {
	r := rng.Float64()
	cumulative := 0.0
	last := 0

	for i, prob := range probs {
		if prob == 0 {
			continue
		}
		last = i
		cumulative += prob
		if r < cumulative {
			return i
		}
	}

	return last
}
