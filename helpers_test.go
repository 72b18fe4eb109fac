package qbench

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const (
	testTimeout    = 5 * time.Second
	cleanupTimeout = 10 * time.Millisecond
	timeoutMsg     = "Test timed out waiting for an outcome"
)

var errBoom = errors.New("boom")

// step is an element of the cyclic group of order modulus.
type step struct {
	value   int
	modulus int
}

func (s step) Compose(next Operator) (Operator, error) {
	other, ok := next.(step)
	if !ok {
		return nil, errors.New("not a step")
	}
	return step{value: (s.value + other.value) % s.modulus, modulus: s.modulus}, nil
}

func (s step) Inverse() (Operator, error) {
	return step{value: (s.modulus - s.value) % s.modulus, modulus: s.modulus}, nil
}

// cyclic is an algebra over step that counts how it is used.
type cyclic struct {
	mu         sync.Mutex
	modulus    int
	samples    int
	identities int
	sampleErr  error
}

func newCyclic() *cyclic {
	return &cyclic{modulus: 24}
}

func (c *cyclic) Identity(qubits int) (Operator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identities++
	return step{modulus: c.modulus}, nil
}

func (c *cyclic) Sample(qubits int, rng *rand.Rand) (Operator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples++
	if c.sampleErr != nil {
		return nil, c.sampleErr
	}
	return step{value: rng.IntN(c.modulus), modulus: c.modulus}, nil
}

func (c *cyclic) sampleCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples
}

/*
recorder is a simulator over step circuits: every shot reads all zeros when
the gates compose to the identity, and all ones otherwise. Set counts or err
to override the result.
*/
type recorder struct {
	mu       sync.Mutex
	calls    int
	circuits []Circuit
	noises   []NoiseModel
	shots    []int
	depths   []int
	counts   Histogram
	err      error
	failAt   int
}

func (r *recorder) Simulate(ctx context.Context, circuit Circuit, noise NoiseModel, shots int) (Histogram, error) {
	r.mu.Lock()
	r.calls++
	r.circuits = append(r.circuits, circuit)
	r.noises = append(r.noises, noise)
	r.shots = append(r.shots, shots)
	r.depths = append(r.depths, len(circuit.Gates))
	call := r.calls
	r.mu.Unlock()

	if r.err != nil && (r.failAt == 0 || r.failAt == call) {
		return nil, r.err
	}

	if r.counts != nil {
		return r.counts, nil
	}

	var acc Operator = step{modulus: 24}
	for _, gate := range circuit.Gates {
		var err error
		if acc, err = acc.Compose(gate); err != nil {
			return nil, err
		}
	}

	bit := "1"
	if acc.(step).value == 0 {
		bit = "0"
	}

	return Histogram{strings.Repeat(bit, circuit.Qubits): shots}, nil
}

func (r *recorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
