package qbench_test

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qbench"
	"github.com/theapemachine/qbench/clifford"
	"github.com/theapemachine/qbench/simulator"
)

func TestRoundTrip(t *testing.T) {
	Convey("Given the clifford algebra and the reference simulator", t, func() {
		ctx := context.Background()
		algebra := clifford.New()
		sim := simulator.New(simulator.WithSeed(1))

		Convey("Every noiseless sequence should come back to zero", func() {
			for _, qubits := range []int{1, 2} {
				for _, seed := range []uint64{1, 42, 1234} {
					generator := qbench.NewGenerator(qubits, algebra, qbench.WithSeed(seed))
					executor := qbench.NewExecutor(qubits, sim, nil)
					evaluator := qbench.NewEvaluator(qubits)

					for _, m := range []int{1, 3, 10} {
						seq, recovery, err := generator.Generate(m)
						So(err, ShouldBeNil)

						counts, err := executor.Execute(ctx, seq, recovery, 64)
						So(err, ShouldBeNil)
						So(counts.Total(), ShouldEqual, 64)

						if evaluator.Evaluate(counts) != 1.0 {
							t.Log(spew.Sdump(counts))
						}
						So(evaluator.Evaluate(counts), ShouldEqual, 1.0)
					}
				}
			}
		})

		Convey("One qubit at depth two with seed 42 should survive every shot", func() {
			config := qbench.NewConfig()
			config.Seed = qbench.SeedOf(42)
			config.Shots = 2048

			probability, err := qbench.New(config, algebra, sim).RunOne(ctx, 2)
			So(err, ShouldBeNil)
			So(probability, ShouldEqual, 1.0)
		})

		Convey("Readout noise should pull survival below one", func() {
			config := qbench.NewConfig()
			config.Seed = qbench.SeedOf(42)
			config.Shots = 2048
			config.Noise = &simulator.NoiseModel{
				Readout: []simulator.ReadoutError{{Qubits: []int{0, 1}, P01: 0.02, P10: 0.02}},
			}

			var probabilities []float64
			for result := range qbench.New(config, algebra, sim).Sweep(ctx, []int{2, 3, 4, 5}) {
				So(result.Err, ShouldBeNil)
				probabilities = append(probabilities, result.Probability)
			}

			So(probabilities, ShouldHaveLength, 4)
			for _, p := range probabilities {
				So(p, ShouldBeBetween, 0.95, 1.0)
			}
		})

		Convey("Parallel sweeps should be reproducible", func() {
			config := qbench.NewConfig()
			config.Seed = qbench.SeedOf(9)
			config.Qubits = 2
			config.Shots = 256
			config.Noise = simulator.NoiseModel{Depolarizing: 0.02}

			run := func() []qbench.Result {
				var results []qbench.Result
				bench := qbench.New(config, algebra, simulator.New(simulator.WithSeed(9)))
				for result := range bench.SweepParallel(ctx, []int{2, 4, 6, 8}, 4) {
					results = append(results, result)
				}
				return results
			}

			first := run()
			So(first, ShouldHaveLength, 4)
			So(run(), ShouldResemble, first)
		})

		Convey("Three qubits should surface the algebra's error", func() {
			config := qbench.NewConfig()
			config.Qubits = 3

			_, err := qbench.New(config, algebra, sim).RunOne(ctx, 2)
			So(err, ShouldNotBeNil)
		})
	})
}
