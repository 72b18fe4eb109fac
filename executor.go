package qbench

import (
	"context"

	"github.com/theapemachine/errnie"
)

/*
Executor turns a sequence and its recovery into a measured circuit and hands
it to the simulator. It keeps no state between calls besides the register
width, the simulator and the noise model.
*/
type Executor struct {
	qubits int
	sim    Simulator
	noise  NoiseModel
}

// NewExecutor creates an executor. A non-positive qubit count is coerced to 1.
func NewExecutor(qubits int, sim Simulator, noise NoiseModel) *Executor {
	return &Executor{
		qubits: coerceQubits(qubits),
		sim:    sim,
		noise:  noise,
	}
}

// Noise returns the model every execution is run under.
func (e *Executor) Noise() NoiseModel {
	return e.noise
}

/*
BuildCircuit lays out every sequence element in order, then the recovery,
each acting on the full register, followed by a measurement of every qubit
into the classical bit with the same index.
*/
func (e *Executor) BuildCircuit(seq Sequence, recovery Operator) Circuit {
	gates := make([]Operator, 0, len(seq)+1)
	gates = append(gates, seq...)
	gates = append(gates, recovery)

	measured := make([]int, e.qubits)
	for i := range measured {
		measured[i] = i
	}

	return Circuit{
		Qubits:   e.qubits,
		Gates:    gates,
		Measured: measured,
	}
}

/*
Execute runs the circuit for seq and recovery. Non-positive shot counts are
coerced to 1. Whatever the simulator returns, histogram or error, is passed
back as is.
*/
func (e *Executor) Execute(ctx context.Context, seq Sequence, recovery Operator, shots int) (Histogram, error) {
	if shots <= 0 {
		errnie.Info("shot count %d is not positive, falling back to 1", shots)
		shots = 1
	}

	return e.sim.Simulate(ctx, e.BuildCircuit(seq, recovery), e.noise, shots)
}
