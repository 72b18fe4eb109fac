package qbench

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// Result is one depth of a sweep.
type Result struct {
	Depth       int
	Probability float64
	Err         error
}

/*
Sweep benchmarks depths in ascending order, reusing the benchmark's single
generator so the random stream runs on from one depth into the next.

Results are produced lazily on an unbuffered channel. The first error is
delivered as a Result and ends the sweep. Cancel ctx to abandon a sweep
before it is drained.
*/
func (b *Benchmark) Sweep(ctx context.Context, depths []int) <-chan Result {
	ordered := sortedDepths(depths)
	out := make(chan Result)

	go func() {
		defer close(out)

		errnie.Info("sweeping %d depths on %d qubits, seed %d", len(ordered), b.config.Qubits, b.seed)

		for _, depth := range ordered {
			if ctx.Err() != nil {
				return
			}

			probability, err := b.RunOne(ctx, depth)

			select {
			case out <- Result{Depth: depth, Probability: probability, Err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return out
}

/*
SweepParallel benchmarks depths on a pool of workers. Each depth draws from
its own stream, derived from the run's seed and the depth, and tags its
simulator call with the same stream key, so results do not depend on how
the workers happen to be scheduled. Results are still delivered in
ascending depth order, and the first error ends the sweep.

The per-depth streams differ from the single stream Sweep uses, so the two
modes give different, individually reproducible, numbers.
*/
func (b *Benchmark) SweepParallel(ctx context.Context, depths []int, workers int) <-chan Result {
	ordered := sortedDepths(depths)
	out := make(chan Result)

	if workers <= 0 {
		workers = 1
	}

	go func() {
		defer close(out)

		pool := NewPool(ctx, workers, len(ordered), &b.config)
		defer pool.Close()

		errnie.Info("sweeping %d depths on %d workers, seed %d", len(ordered), workers, b.seed)

		pending := make([]chan Outcome, len(ordered))
		for i, depth := range ordered {
			pending[i] = pool.Schedule(b.depthJob(depth))
		}

		for i, depth := range ordered {
			var outcome Outcome

			select {
			case outcome = <-pending[i]:
			case <-ctx.Done():
				return
			}

			select {
			case out <- Result{Depth: depth, Probability: outcome.Probability, Err: outcome.Err}:
			case <-ctx.Done():
				return
			}

			if outcome.Err != nil {
				return
			}
		}

		errnie.Info("parallel sweep finished: %v", pool.Metrics().Export())
	}()

	return out
}

func (b *Benchmark) depthJob(depth int) Job {
	return Job{
		ID:    uuid.NewString(),
		Depth: depth,
		Run: func(ctx context.Context) (float64, error) {
			generator := NewGenerator(
				b.config.Qubits, b.algebra, WithRand(newRand(b.seed, uint64(depth))),
			)
			return b.run(WithStream(ctx, uint64(depth)), generator, depth)
		},
	}
}

/*
DepthRange lists the depths min, min+step, … up to and including max.
min must leave room for a sequence and its recovery.
*/
func DepthRange(min, max, step int) ([]int, error) {
	if min < 2 {
		return nil, invalidArgument("minimum depth must be at least 2, got %d", min)
	}

	if step < 1 {
		return nil, invalidArgument("depth step must be positive, got %d", step)
	}

	if max < min {
		return nil, invalidArgument("maximum depth %d is below minimum depth %d", max, min)
	}

	depths := make([]int, 0, (max-min)/step+1)
	for depth := min; depth <= max; depth += step {
		depths = append(depths, depth)
	}

	return depths, nil
}

func sortedDepths(depths []int) []int {
	ordered := slices.Clone(depths)
	slices.Sort(ordered)
	return ordered
}
