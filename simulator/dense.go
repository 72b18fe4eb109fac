package simulator

import (
	"math/cmplx"

	"github.com/pkg/errors"
	"github.com/theapemachine/qbench"
)

// Unitary is what the simulator needs from a gate: its row-major matrix.
type Unitary interface {
	Matrix() []complex128
}

/*
Dense is a plain matrix-backed operator. The remote server rebuilds circuits
from it, and anything that only has matrices can benchmark through it.
*/
type Dense struct {
	qubits int
	m      []complex128
}

func NewDense(qubits int, m []complex128) (*Dense, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, errors.Errorf("simulator: cannot build a %d-qubit operator", qubits)
	}

	dim := 1 << qubits
	if len(m) != dim*dim {
		return nil, errors.Errorf(
			"simulator: %d-qubit operator needs %d entries, got %d", qubits, dim*dim, len(m),
		)
	}

	out := make([]complex128, len(m))
	copy(out, m)

	return &Dense{qubits: qubits, m: out}, nil
}

func (dense *Dense) Qubits() int {
	return dense.qubits
}

func (dense *Dense) Matrix() []complex128 {
	out := make([]complex128, len(dense.m))
	copy(out, dense.m)
	return out
}

// Compose applies dense and then next, which must expose a matrix of the same size.
func (dense *Dense) Compose(next qbench.Operator) (qbench.Operator, error) {
	unitary, ok := next.(Unitary)
	if !ok {
		return nil, errors.Errorf("simulator: cannot compose with %T", next)
	}

	other := unitary.Matrix()
	if len(other) != len(dense.m) {
		return nil, errors.Errorf("simulator: cannot compose operators of different sizes")
	}

	dim := 1 << dense.qubits
	out := make([]complex128, len(dense.m))

	for r := 0; r < dim; r++ {
		for k := 0; k < dim; k++ {
			a := other[r*dim+k]
			if a == 0 {
				continue
			}
			for c := 0; c < dim; c++ {
				out[r*dim+c] += a * dense.m[k*dim+c]
			}
		}
	}

	return &Dense{qubits: dense.qubits, m: out}, nil
}

func (dense *Dense) Inverse() (qbench.Operator, error) {
	dim := 1 << dense.qubits
	out := make([]complex128, len(dense.m))

	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			out[c*dim+r] = cmplx.Conj(dense.m[r*dim+c])
		}
	}

	return &Dense{qubits: dense.qubits, m: out}, nil
}
