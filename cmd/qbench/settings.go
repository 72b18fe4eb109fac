package main

import (
	"math/rand/v2"

	"github.com/theapemachine/qbench"
	"github.com/theapemachine/qbench/clifford"
	"github.com/theapemachine/qbench/remote"
	"github.com/theapemachine/qbench/simulator"
)

// config reads the layered settings into a benchmark configuration.
func config() (*qbench.Config, error) {
	cfg := qbench.NewConfig()
	cfg.Qubits = v.GetInt("qubits")
	cfg.Shots = v.GetInt("shots")

	if v.IsSet("seed") {
		cfg.Seed = qbench.SeedOf(v.GetUint64("seed"))
	} else {
		cfg.Seed = qbench.SeedOf(rand.Uint64())
	}

	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}

	noise, err := noiseModel(cfg.Qubits)
	if err != nil {
		return nil, err
	}
	if noise != nil {
		cfg.Noise = noise
	}

	return cfg, nil
}

/*
noiseModel starts from --noise-file when given, then lets --depolarizing
and --readout override it. It returns nil when the result adds no noise.
*/
func noiseModel(qubits int) (*simulator.NoiseModel, error) {
	model := &simulator.NoiseModel{}

	if path := v.GetString("noise-file"); path != "" {
		loaded, err := simulator.LoadNoiseModel(path)
		if err != nil {
			return nil, err
		}
		model = loaded
	}

	if v.IsSet("depolarizing") {
		model.Depolarizing = v.GetFloat64("depolarizing")
	}

	if v.IsSet("readout") {
		p := v.GetFloat64("readout")
		all := make([]int, max(qubits, 1))
		for q := range all {
			all[q] = q
		}
		model.Readout = append(model.Readout, simulator.ReadoutError{Qubits: all, P01: p, P10: p})
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	if model.IsIdeal() {
		return nil, nil
	}

	return model, nil
}

// simulatorFor returns the remote client when --remote is set, else a local simulator.
func simulatorFor(seed uint64) qbench.Simulator {
	if endpoint := v.GetString("remote"); endpoint != "" {
		logger.Debug("simulating remotely", "endpoint", endpoint)
		return remote.NewClient(endpoint)
	}

	return simulator.New(simulator.WithSeed(seed))
}

func newBenchmark() (*qbench.Benchmark, error) {
	cfg, err := config()
	if err != nil {
		return nil, err
	}

	logger.Debug(
		"benchmark configured",
		"qubits", cfg.Qubits, "shots", cfg.Shots, "seed", *cfg.Seed, "noisy", cfg.Noise != nil,
	)

	return qbench.New(cfg, clifford.New(), simulatorFor(*cfg.Seed)), nil
}
