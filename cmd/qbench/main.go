package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	v      = viper.New()
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "qbench",
	})
)

// newRootCmd builds the command tree with fresh settings.
func newRootCmd() *cobra.Command {
	v = viper.New()

	root := &cobra.Command{
		Use:   "qbench",
		Short: "Randomized benchmarking of noisy quantum circuits",
		Long: `qbench estimates how well a noisy device preserves quantum information.

It runs random Clifford sequences followed by the gate that undoes them and
reports how often the register comes back as all zeros, one line per depth.
Settings come from flags, QBENCH_* environment variables and an optional
config file, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.Int("qubits", 1, "register width, 1 or 2")
	flags.Uint64("seed", 0, "seed for sequences and simulation; random when unset")
	flags.Int("shots", 2048, "shots per circuit")
	flags.Float64("readout", 0, "symmetric readout flip probability on every qubit")
	flags.Float64("depolarizing", 0, "depolarizing probability after every gate")
	flags.String("noise-file", "", "yaml noise model")
	flags.String("remote", "", "url of a qbench serve instance to simulate on")
	flags.String("log-level", "info", "debug, info, warn or error")

	root.AddCommand(newRunCmd(), newSweepCmd(), newInspectCmd(), newServeCmd())
	return root
}

// setup layers flags over the environment over the config file, then configures logging.
func setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd.Flags(), cmd.InheritedFlags()); err != nil {
		return err
	}

	v.SetEnvPrefix("QBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}

	logger.SetLevel(level)
	log.SetDefault(logger)

	return nil
}

func bindFlags(sets ...*pflag.FlagSet) error {
	for _, set := range sets {
		if err := v.BindPFlags(set); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.Error("qbench failed", "err", err)
		os.Exit(1)
	}
}
