package clifford

import (
	"fmt"
	"strings"

	"github.com/theapemachine/qbench"
)

// Element is one Clifford operator. The zero value is not usable.
type Element struct {
	group *Group
	index int
}

// Qubits returns the register width the element acts on.
func (e Element) Qubits() int {
	return e.group.qubits
}

// Index identifies the element within its group.
func (e Element) Index() int {
	return e.index
}

// IsIdentity reports whether e is the identity up to global phase.
func (e Element) IsIdentity() bool {
	return e.index == 0
}

// Matrix returns a copy of the phase-normalised unitary, row-major.
func (e Element) Matrix() []complex128 {
	m := e.group.elements[e.index].m
	out := make([]complex128, len(m))
	copy(out, m)
	return out
}

// Gates returns a generator word that builds e, first gate first.
func (e Element) Gates() []string {
	return e.group.word(e.index)
}

func (e Element) String() string {
	gates := e.Gates()
	if len(gates) == 0 {
		return "id"
	}
	return strings.Join(gates, " ")
}

// Compose returns the operator that applies e and then next.
func (e Element) Compose(next qbench.Operator) (qbench.Operator, error) {
	other, err := e.sibling(next)
	if err != nil {
		return nil, err
	}

	dim := e.group.dim
	return e.found(e.group.lookup(other.group.elements[other.index].m.mul(e.group.elements[e.index].m, dim)))
}

// Inverse returns the element that undoes e.
func (e Element) Inverse() (qbench.Operator, error) {
	return e.found(e.group.lookup(e.group.elements[e.index].m.adjoint(e.group.dim)))
}

func (e Element) found(result Element, err error) (qbench.Operator, error) {
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e Element) sibling(op qbench.Operator) (Element, error) {
	var other Element

	switch v := op.(type) {
	case Element:
		other = v
	case *Element:
		if v == nil {
			return Element{}, fmt.Errorf("clifford: cannot compose with a nil element")
		}
		other = *v
	default:
		return Element{}, fmt.Errorf("clifford: cannot compose with %T", op)
	}

	if other.group != e.group {
		return Element{}, fmt.Errorf(
			"clifford: cannot compose a %d-qubit element with a %d-qubit element",
			e.group.qubits, other.group.qubits,
		)
	}

	return other, nil
}
