package qbench

import "time"

// Config holds everything a benchmark run is parameterised by.
type Config struct {
	Qubits int
	// Seed is optional; nil draws a fresh seed for the run.
	Seed  *uint64
	Shots int
	Noise NoiseModel
	// Workers above 1 lets SweepParallel run depths concurrently.
	Workers           int
	SchedulingTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Qubits:            1,
		Shots:             1024,
		Workers:           1,
		SchedulingTimeout: 10 * time.Second,
	}
}

// SeedOf is a small helper for filling Config.Seed from a literal.
func SeedOf(seed uint64) *uint64 {
	return &seed
}
