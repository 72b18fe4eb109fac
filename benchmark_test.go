package qbench

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func collect(results <-chan Result) []Result {
	var out []Result
	for result := range results {
		out = append(out, result)
	}
	return out
}

func TestBenchmark(t *testing.T) {
	Convey("Given a seeded benchmark", t, func() {
		ctx := context.Background()
		sim := &recorder{}
		config := NewConfig()
		config.Seed = SeedOf(42)
		config.Shots = 100
		bench := New(config, newCyclic(), sim)

		Convey("It should keep the configured seed", func() {
			So(bench.Seed(), ShouldEqual, uint64(42))
			So(bench.Config().Shots, ShouldEqual, 100)
		})

		Convey("RunOne should run depth-1 operators plus the recovery", func() {
			probability, err := bench.RunOne(ctx, 5)

			So(err, ShouldBeNil)
			So(probability, ShouldEqual, 1.0)
			So(sim.callCount(), ShouldEqual, 1)
			So(sim.depths, ShouldResemble, []int{5})
			So(sim.shots, ShouldResemble, []int{100})
		})

		Convey("Depths below two should be rejected before any work", func() {
			for _, depth := range []int{1, 0, -2} {
				_, err := bench.RunOne(ctx, depth)
				So(err, ShouldWrap, ErrInvalidArgument)
			}

			So(sim.callCount(), ShouldEqual, 0)
		})

		Convey("Simulator errors should be returned unchanged", func() {
			sim.err = errBoom

			_, err := bench.RunOne(ctx, 3)
			So(err, ShouldEqual, errBoom)
		})

		Convey("A sweep should run ascending depths on one stream", func() {
			results := collect(bench.Sweep(ctx, []int{6, 2, 4}))

			So(results, ShouldHaveLength, 3)
			So([]int{results[0].Depth, results[1].Depth, results[2].Depth}, ShouldResemble, []int{2, 4, 6})
			So(sim.depths, ShouldResemble, []int{2, 4, 6})

			for _, result := range results {
				So(result.Err, ShouldBeNil)
				So(result.Probability, ShouldEqual, 1.0)
			}

			// One generator for the whole sweep: a fresh generator with the same seed
			// replays the concatenation of all three sequences.
			replay := NewGenerator(1, newCyclic(), WithSeed(42))
			expected, _, _ := replay.Generate(1 + 3 + 5)

			var swept []Operator
			for _, circuit := range sim.circuits {
				swept = append(swept, circuit.Gates[:len(circuit.Gates)-1]...)
			}
			So(swept, ShouldResemble, []Operator(expected))
		})

		Convey("A sweep should leave its input alone", func() {
			depths := []int{3, 2}
			collect(bench.Sweep(ctx, depths))
			So(depths, ShouldResemble, []int{3, 2})
		})

		Convey("A sweep should stop at the first error", func() {
			sim.err = errBoom
			sim.failAt = 2

			results := collect(bench.Sweep(ctx, []int{2, 3, 4, 5}))

			So(results, ShouldHaveLength, 2)
			So(results[0].Err, ShouldBeNil)
			So(results[1].Depth, ShouldEqual, 3)
			So(results[1].Err, ShouldEqual, errBoom)
			So(sim.callCount(), ShouldEqual, 2)
		})

		Convey("An invalid depth should end the sweep with an error", func() {
			results := collect(bench.Sweep(ctx, []int{1, 4}))

			So(results, ShouldHaveLength, 1)
			So(results[0].Err, ShouldWrap, ErrInvalidArgument)
			So(sim.callCount(), ShouldEqual, 0)
		})

		Convey("An empty sweep should close straight away", func() {
			So(collect(bench.Sweep(ctx, nil)), ShouldBeEmpty)
		})

		Convey("A cancelled sweep should stop producing", func() {
			cancelled, cancel := context.WithCancel(ctx)
			results := bench.Sweep(cancelled, []int{2, 3, 4, 5, 6})

			first := <-results
			So(first.Depth, ShouldEqual, 2)
			cancel()

			select {
			case <-time.After(testTimeout):
				t.Fatal(timeoutMsg)
			case <-drain(results):
			}

			So(sim.callCount(), ShouldBeLessThan, 5)
		})
	})

	Convey("Given a benchmark without a config", t, func() {
		bench := New(nil, newCyclic(), &recorder{})

		Convey("It should use the defaults", func() {
			So(bench.Config().Qubits, ShouldEqual, 1)
			So(bench.Config().Shots, ShouldEqual, 1024)
			So(bench.Generator(), ShouldNotBeNil)
			So(bench.Executor(), ShouldNotBeNil)
		})
	})

	Convey("Given a config with bad counts", t, func() {
		bench := New(&Config{Qubits: -1, Shots: 0}, newCyclic(), &recorder{})

		Convey("They should be coerced to one", func() {
			So(bench.Config().Qubits, ShouldEqual, 1)
			So(bench.Config().Shots, ShouldEqual, 1)
		})
	})
}

func drain(results <-chan Result) chan struct{} {
	done := make(chan struct{})
	go func() {
		for range results {
		}
		close(done)
	}()
	return done
}

func TestDepthRange(t *testing.T) {
	Convey("Given depth ranges", t, func() {
		Convey("The default range should be two to nine", func() {
			depths, err := DepthRange(2, 9, 1)
			So(err, ShouldBeNil)
			So(depths, ShouldResemble, []int{2, 3, 4, 5, 6, 7, 8, 9})
		})

		Convey("Steps should include the maximum only when reached", func() {
			depths, err := DepthRange(2, 9, 3)
			So(err, ShouldBeNil)
			So(depths, ShouldResemble, []int{2, 5, 8})
		})

		Convey("Invalid bounds should be rejected", func() {
			_, err := DepthRange(1, 9, 1)
			So(err, ShouldWrap, ErrInvalidArgument)

			_, err = DepthRange(2, 9, 0)
			So(err, ShouldWrap, ErrInvalidArgument)

			_, err = DepthRange(5, 4, 1)
			So(err, ShouldWrap, ErrInvalidArgument)
		})
	})
}
