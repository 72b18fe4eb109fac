package clifford

import (
	"math"
	"math/cmplx"
	"strconv"
)

// Entries smaller than this are treated as zero when fixing the global phase.
const epsilon = 1e-9

// Keys round every component to this many steps per unit.
const keyScale = 1e6

// matrix is a dense row-major dim×dim complex matrix.
type matrix []complex128

func identity(dim int) matrix {
	m := make(matrix, dim*dim)
	for i := 0; i < dim; i++ {
		m[i*dim+i] = 1
	}
	return m
}

// mul returns m·other.
func (m matrix) mul(other matrix, dim int) matrix {
	out := make(matrix, dim*dim)

	for r := 0; r < dim; r++ {
		for k := 0; k < dim; k++ {
			a := m[r*dim+k]
			if a == 0 {
				continue
			}
			for c := 0; c < dim; c++ {
				out[r*dim+c] += a * other[k*dim+c]
			}
		}
	}

	return out
}

func (m matrix) adjoint(dim int) matrix {
	out := make(matrix, dim*dim)

	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			out[c*dim+r] = cmplx.Conj(m[r*dim+c])
		}
	}

	return out
}

/*
canonical removes the global phase from m, rotating its first non-zero entry
onto the positive real axis, and returns the result with a lookup key. Two
unitaries that differ only by a global phase get the same key.
*/
func canonical(m matrix) (matrix, string) {
	phase := complex(1, 0)

	for _, entry := range m {
		if cmplx.Abs(entry) > epsilon {
			phase = cmplx.Conj(entry / complex(cmplx.Abs(entry), 0))
			break
		}
	}

	out := make(matrix, len(m))
	key := make([]byte, 0, len(m)*16)

	for i, entry := range m {
		out[i] = entry * phase
		key = strconv.AppendInt(key, int64(math.Round(real(out[i])*keyScale)), 10)
		key = append(key, ',')
		key = strconv.AppendInt(key, int64(math.Round(imag(out[i])*keyScale)), 10)
		key = append(key, ';')
	}

	return out, string(key)
}
