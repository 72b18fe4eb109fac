package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/theapemachine/qbench"
	"github.com/theapemachine/qbench/remote"
	"github.com/theapemachine/qbench/simulator"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark a single depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bench, err := newBenchmark()
			if err != nil {
				return err
			}

			depth := v.GetInt("depth")

			probability, err := bench.RunOne(cmd.Context(), depth)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), depth, probability)
			return nil
		},
	}

	cmd.Flags().Int("depth", 2, "sequence length including the recovery")
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Benchmark a range of depths, printing one line per depth",
		Long: `sweep benchmarks every requested depth in ascending order.

Depths come from --depths when given, otherwise from --min, --max and --step.
With --workers above 1 depths run concurrently, each on its own random
stream, so results are reproducible but differ from a sequential sweep.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			depths := v.GetIntSlice("depths")
			if cmd.Flags().Changed("depths") {
				depths, _ = cmd.Flags().GetIntSlice("depths")
			}

			if len(depths) == 0 {
				var err error
				if depths, err = qbench.DepthRange(v.GetInt("min"), v.GetInt("max"), v.GetInt("step")); err != nil {
					return err
				}
			}

			bench, err := newBenchmark()
			if err != nil {
				return err
			}

			logger.Info("sweeping", "depths", depths, "seed", bench.Seed())

			var results <-chan qbench.Result
			if workers := bench.Config().Workers; workers > 1 {
				results = bench.SweepParallel(cmd.Context(), depths, workers)
			} else {
				results = bench.Sweep(cmd.Context(), depths)
			}

			for result := range results {
				if result.Err != nil {
					return result.Err
				}
				printResult(cmd.OutOrStdout(), result.Depth, result.Probability)
			}

			return cmd.Context().Err()
		},
	}

	cmd.Flags().IntSlice("depths", nil, "explicit depths, e.g. 2,4,8")
	cmd.Flags().Int("min", 2, "smallest depth")
	cmd.Flags().Int("max", 9, "largest depth")
	cmd.Flags().Int("step", 1, "depth increment")
	cmd.Flags().Int("workers", 1, "depths benchmarked concurrently")
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the sequence and recovery a depth would run, without simulating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bench, err := newBenchmark()
			if err != nil {
				return err
			}

			depth := v.GetInt("depth")
			if depth < 2 {
				return fmt.Errorf("depth must be at least 2, got %d", depth)
			}

			seq, recovery, err := bench.Generator().Generate(depth - 1)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

			for i, op := range seq {
				fmt.Fprintf(out, "gate %d: %v\n", i, op)
				dumpMatrix(out, &dumper, op)
			}

			fmt.Fprintf(out, "recovery: %v\n", recovery)
			dumpMatrix(out, &dumper, recovery)

			return nil
		},
	}

	cmd.Flags().Int("depth", 2, "sequence length including the recovery")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the reference simulator for --remote clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []simulator.Option{}
			if v.IsSet("seed") {
				opts = append(opts, simulator.WithSeed(v.GetUint64("seed")))
			}

			return remote.NewServer(simulator.New(opts...)).ListenAndServe(cmd.Context(), v.GetString("addr"))
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

func printResult(w io.Writer, depth int, probability float64) {
	fmt.Fprintf(w, "%d\t%g\n", depth, probability)
}

func dumpMatrix(w io.Writer, dumper *spew.ConfigState, op qbench.Operator) {
	if unitary, ok := op.(simulator.Unitary); ok {
		dumper.Fdump(w, unitary.Matrix())
	}
}
