package qbench

import (
	"math/rand/v2"

	"github.com/theapemachine/errnie"
)

/*
Generator samples random operator sequences and the recovery operator that
undoes them. It owns one random stream for its whole lifetime; every call to
SampleOne advances it, and nothing ever rewinds it.
*/
type Generator struct {
	qubits  int
	algebra Algebra
	rng     *rand.Rand
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed makes the generator replay the same stream for the same seed.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rng = newRand(seed, 0)
	}
}

// WithRand injects the random stream directly.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = rng
	}
}

/*
NewGenerator creates a generator over qubits qubits. A non-positive qubit
count is coerced to 1. Without WithSeed or WithRand the stream is seeded
from the runtime's entropy source.
*/
func NewGenerator(qubits int, algebra Algebra, opts ...GeneratorOption) *Generator {
	g := &Generator{
		qubits:  coerceQubits(qubits),
		algebra: algebra,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = newRand(rand.Uint64(), rand.Uint64())
	}

	return g
}

// Qubits returns the register width the generator samples for.
func (g *Generator) Qubits() int {
	return g.qubits
}

// SampleOne draws a single operator from the algebra.
func (g *Generator) SampleOne() (Operator, error) {
	return g.algebra.Sample(g.qubits, g.rng)
}

/*
Generate samples m operators and returns them together with their recovery.

The accumulator starts at the identity and absorbs each new operator with
acc.Compose(op), so it always equals "apply the sequence so far". The
recovery is its inverse: running the sequence and then the recovery leaves
the register where it started.
*/
func (g *Generator) Generate(m int) (Sequence, Operator, error) {
	if m <= 0 {
		return nil, nil, invalidArgument("sequence length must be positive, got %d", m)
	}

	acc, err := g.algebra.Identity(g.qubits)
	if err != nil {
		return nil, nil, err
	}

	seq := make(Sequence, 0, m)

	for i := 0; i < m; i++ {
		op, err := g.SampleOne()
		if err != nil {
			return nil, nil, err
		}

		seq = append(seq, op)

		if acc, err = acc.Compose(op); err != nil {
			return nil, nil, err
		}
	}

	recovery, err := acc.Inverse()
	if err != nil {
		return nil, nil, err
	}

	return seq, recovery, nil
}

func coerceQubits(qubits int) int {
	if qubits > 0 {
		return qubits
	}

	errnie.Info("qubit count %d is not positive, falling back to 1", qubits)
	return 1
}
