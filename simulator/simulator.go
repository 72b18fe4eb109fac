/*
Package simulator is a small dense state-vector simulator with depolarizing
and readout noise. It exists so benchmarks have something concrete to run
against, and is not meant for wide registers.
*/
package simulator

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qbench"
)

// MaxQubits bounds the register so the dense vector stays small.
const MaxQubits = 12

/*
Simulator samples measurement histograms from circuits of Unitary gates.
It is safe for concurrent use. Calls whose context carries a stream key
(qbench.WithStream) draw from their own stream derived from the seed, so
they are reproducible regardless of call order; other calls share one
stream under a mutex.
*/
type Simulator struct {
	mu   sync.Mutex
	seed uint64
	rng  *rand.Rand
}

type Option func(*Simulator)

// WithSeed makes every histogram reproducible for the given seed.
func WithSeed(seed uint64) Option {
	return func(sim *Simulator) {
		sim.seed = seed
	}
}

func New(opts ...Option) *Simulator {
	sim := &Simulator{seed: rand.Uint64()}

	for _, opt := range opts {
		opt(sim)
	}

	sim.rng = rand.New(rand.NewPCG(sim.seed, 0))
	return sim
}

// Seed returns the seed the simulator streams are derived from.
func (sim *Simulator) Seed() uint64 {
	return sim.seed
}

/*
Simulate runs circuit from |0…0⟩ shots times and counts the measured
bitstrings, classical bit 0 right-most. Noise may be nil, a NoiseModel or a
*NoiseModel.
*/
func (sim *Simulator) Simulate(
	ctx context.Context, circuit qbench.Circuit, noise qbench.NoiseModel, shots int,
) (qbench.Histogram, error) {
	model, err := modelFrom(noise)
	if err != nil {
		return nil, err
	}

	if shots <= 0 {
		return nil, errors.Errorf("simulator: shots must be positive, got %d", shots)
	}

	gates, err := unitaries(circuit)
	if err != nil {
		return nil, err
	}

	if stream, ok := qbench.StreamFrom(ctx); ok {
		return run(ctx, circuit, gates, model, shots, rand.New(rand.NewPCG(sim.seed, stream)))
	}

	sim.mu.Lock()
	defer sim.mu.Unlock()

	return run(ctx, circuit, gates, model, shots, sim.rng)
}

func run(
	ctx context.Context,
	circuit qbench.Circuit,
	gates [][]complex128,
	model *NoiseModel,
	shots int,
	rng *rand.Rand,
) (qbench.Histogram, error) {
	p01, p10 := model.readoutTable(circuit.Qubits)
	s := newState(circuit.Qubits)
	counts := make(qbench.Histogram)

	var probs []float64
	if model.Depolarizing == 0 {
		for _, gate := range gates {
			s.apply(gate)
		}
		probs = s.probabilities()
	}

	for shot := 0; shot < shots; shot++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if model.Depolarizing > 0 {
			s.reset()
			for _, gate := range gates {
				s.apply(gate)
				s.depolarize(model.Depolarizing, rng)
			}
			probs = s.probabilities()
		}

		outcome := sample(probs, rng)
		counts[bitstring(outcome, circuit.Measured, p01, p10, rng)]++
	}

	return counts, nil
}

// bitstring reads the measured qubits of outcome, applying readout flips.
func bitstring(outcome int, measured []int, p01, p10 []float64, rng *rand.Rand) string {
	var builder strings.Builder
	builder.Grow(len(measured))

	for i := len(measured) - 1; i >= 0; i-- {
		q := measured[i]
		bit := (outcome >> q) & 1

		if bit == 0 && p01[q] > 0 && rng.Float64() < p01[q] {
			bit = 1
		} else if bit == 1 && p10[q] > 0 && rng.Float64() < p10[q] {
			bit = 0
		}

		builder.WriteByte(byte('0' + bit))
	}

	return builder.String()
}

func modelFrom(noise qbench.NoiseModel) (*NoiseModel, error) {
	var model *NoiseModel

	switch v := noise.(type) {
	case nil:
		return &NoiseModel{}, nil
	case NoiseModel:
		model = &v
	case *NoiseModel:
		if v == nil {
			return &NoiseModel{}, nil
		}
		model = v
	default:
		return nil, errors.Errorf("simulator: unsupported noise model %T", noise)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	return model, nil
}

func unitaries(circuit qbench.Circuit) ([][]complex128, error) {
	if circuit.Qubits < 1 || circuit.Qubits > MaxQubits {
		return nil, errors.Errorf(
			"simulator: register of %d qubits outside [1,%d]", circuit.Qubits, MaxQubits,
		)
	}

	for _, q := range circuit.Measured {
		if q < 0 || q >= circuit.Qubits {
			return nil, errors.Errorf("simulator: measured qubit %d outside register", q)
		}
	}

	dim := 1 << circuit.Qubits
	gates := make([][]complex128, len(circuit.Gates))

	for i, gate := range circuit.Gates {
		unitary, ok := gate.(Unitary)
		if !ok {
			return nil, errors.Errorf("simulator: gate %d (%T) has no matrix", i, gate)
		}

		m := unitary.Matrix()
		if len(m) != dim*dim {
			errnie.Info("gate %d has %d entries for a %d-qubit register", i, len(m), circuit.Qubits)
			return nil, errors.Errorf("simulator: gate %d is not %dx%d", i, dim, dim)
		}

		gates[i] = m
	}

	return gates, nil
}
