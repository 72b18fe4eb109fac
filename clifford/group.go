package clifford

import (
	"fmt"
	"sync"

	"github.com/theapemachine/errnie"
)

// MaxQubits is the widest register the dense group tables are built for.
const MaxQubits = 2

/*
Group is the n-qubit Clifford group modulo global phase, enumerated once by
breadth-first closure from the generators. Element 0 is the identity.
Every element remembers the element it was reached from and the generator
that was applied, which gives its gate word.
*/
type Group struct {
	qubits     int
	dim        int
	generators []generator
	elements   []entry
	index      map[string]int
}

type entry struct {
	m      matrix
	parent int
	via    int
}

var (
	groupsMu sync.Mutex
	groups   = make(map[int]*Group)
)

// GroupFor returns the cached group for qubits, building it on first use.
func GroupFor(qubits int) (*Group, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, fmt.Errorf(
			"clifford: reference group supports 1 to %d qubits, got %d", MaxQubits, qubits,
		)
	}

	groupsMu.Lock()
	defer groupsMu.Unlock()

	if group, ok := groups[qubits]; ok {
		return group, nil
	}

	group := buildGroup(qubits)
	groups[qubits] = group

	errnie.Info("built %d-qubit clifford group with %d elements", qubits, group.Size())
	return group, nil
}

func buildGroup(qubits int) *Group {
	dim := 1 << qubits
	group := &Group{
		qubits:     qubits,
		dim:        dim,
		generators: generators(qubits),
		index:      make(map[string]int),
	}

	root, key := canonical(identity(dim))
	group.add(root, key, -1, -1)

	for head := 0; head < len(group.elements); head++ {
		current := group.elements[head].m

		for via, gen := range group.generators {
			// current first, then gen.
			next, key := canonical(gen.m.mul(current, dim))
			if _, seen := group.index[key]; seen {
				continue
			}
			group.add(next, key, head, via)
		}
	}

	return group
}

func (group *Group) add(m matrix, key string, parent, via int) {
	group.index[key] = len(group.elements)
	group.elements = append(group.elements, entry{m: m, parent: parent, via: via})
}

// Qubits returns the register width of the group.
func (group *Group) Qubits() int {
	return group.qubits
}

// Size returns the number of elements, 24 for one qubit and 11520 for two.
func (group *Group) Size() int {
	return len(group.elements)
}

// Element returns the element at index i.
func (group *Group) Element(i int) (Element, error) {
	if i < 0 || i >= len(group.elements) {
		return Element{}, fmt.Errorf("clifford: element %d out of range [0,%d)", i, len(group.elements))
	}
	return Element{group: group, index: i}, nil
}

// Identity returns the identity element.
func (group *Group) Identity() Element {
	return Element{group: group, index: 0}
}

func (group *Group) lookup(m matrix) (Element, error) {
	_, key := canonical(m)

	i, ok := group.index[key]
	if !ok {
		return Element{}, fmt.Errorf("clifford: product is not a %d-qubit clifford", group.qubits)
	}

	return Element{group: group, index: i}, nil
}

func (group *Group) word(i int) []string {
	var word []string

	for i > 0 {
		e := group.elements[i]
		word = append(word, group.generators[e.via].name)
		i = e.parent
	}

	for l, r := 0, len(word)-1; l < r; l, r = l+1, r-1 {
		word[l], word[r] = word[r], word[l]
	}

	return word
}
