package qbench

import (
	"context"
	"math/rand/v2"

	"github.com/theapemachine/errnie"
)

/*
Benchmark wires a Generator, an Executor and an Evaluator together for one
run. The generator is built once, so every depth benchmarked through the
same Benchmark draws from one continuous random stream.
*/
type Benchmark struct {
	config    Config
	seed      uint64
	algebra   Algebra
	sim       Simulator
	generator *Generator
	executor  *Executor
	evaluator *Evaluator
}

/*
New creates a benchmark from config. Qubit and shot counts that are not
positive are coerced to 1. A nil config means NewConfig().
*/
func New(config *Config, algebra Algebra, sim Simulator) *Benchmark {
	if config == nil {
		config = NewConfig()
	}

	cfg := *config
	cfg.Qubits = coerceQubits(cfg.Qubits)

	if cfg.Shots <= 0 {
		errnie.Info("shot count %d is not positive, falling back to 1", cfg.Shots)
		cfg.Shots = 1
	}

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	return &Benchmark{
		config:    cfg,
		seed:      seed,
		algebra:   algebra,
		sim:       sim,
		generator: NewGenerator(cfg.Qubits, algebra, WithRand(newRand(seed, 0))),
		executor:  NewExecutor(cfg.Qubits, sim, cfg.Noise),
		evaluator: NewEvaluator(cfg.Qubits),
	}
}

// Config returns the coerced configuration the benchmark runs with.
func (b *Benchmark) Config() Config {
	return b.config
}

// Seed returns the seed of the run, whether configured or drawn.
func (b *Benchmark) Seed() uint64 {
	return b.seed
}

// Generator exposes the run's generator, for inspecting sequences.
func (b *Benchmark) Generator() *Generator {
	return b.generator
}

// Executor exposes the run's executor.
func (b *Benchmark) Executor() *Executor {
	return b.executor
}

/*
RunOne benchmarks a single depth: depth-1 random operators plus the recovery.
The generator, executor and evaluator are each invoked exactly once.
*/
func (b *Benchmark) RunOne(ctx context.Context, depth int) (float64, error) {
	return b.run(ctx, b.generator, depth)
}

func (b *Benchmark) run(ctx context.Context, generator *Generator, depth int) (float64, error) {
	if depth < 2 {
		return 0, invalidArgument("depth must be at least 2 to fit a sequence and its recovery, got %d", depth)
	}

	seq, recovery, err := generator.Generate(depth - 1)
	if err != nil {
		return 0, err
	}

	histogram, err := b.executor.Execute(ctx, seq, recovery, b.config.Shots)
	if err != nil {
		return 0, err
	}

	return b.evaluator.Evaluate(histogram), nil
}
