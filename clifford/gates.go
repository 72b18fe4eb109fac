package clifford

import (
	"fmt"
	"math"
)

var (
	// H = 1/√2 * [1  1]
	//           [1 -1]
	hadamard = [4]complex128{
		complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0),
		complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0),
	}

	// S = [1 0]
	//     [0 i]
	phase = [4]complex128{1, 0, 0, 1i}
)

// generator is one of the gates the group is closed over.
type generator struct {
	name string
	m    matrix
}

/*
generators returns H and S on every qubit plus a CX chain between
neighbouring qubits, which together generate the whole Clifford group.
Basis index bit k is qubit k.
*/
func generators(qubits int) []generator {
	gens := make([]generator, 0, 3*qubits)

	for q := 0; q < qubits; q++ {
		gens = append(gens,
			generator{name: fmt.Sprintf("h(%d)", q), m: single(hadamard, q, qubits)},
			generator{name: fmt.Sprintf("s(%d)", q), m: single(phase, q, qubits)},
		)
	}

	for q := 0; q+1 < qubits; q++ {
		gens = append(gens, generator{
			name: fmt.Sprintf("cx(%d,%d)", q, q+1),
			m:    controlledX(q, q+1, qubits),
		})
	}

	return gens
}

// single lifts the 2×2 gate g onto qubit target of a qubits-wide register.
func single(g [4]complex128, target, qubits int) matrix {
	dim := 1 << qubits
	bit := 1 << target
	m := make(matrix, dim*dim)

	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if r&^bit != c&^bit {
				continue
			}
			m[r*dim+c] = g[((r>>target)&1)*2+(c>>target)&1]
		}
	}

	return m
}

func controlledX(control, target, qubits int) matrix {
	dim := 1 << qubits
	m := make(matrix, dim*dim)

	for c := 0; c < dim; c++ {
		r := c
		if c&(1<<control) != 0 {
			r ^= 1 << target
		}
		m[r*dim+c] = 1
	}

	return m
}
