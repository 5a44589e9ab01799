package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/crillab/gophermachine/config"
	"github.com/crillab/gophermachine/factory"
	"github.com/crillab/gophermachine/ilp"
	"github.com/crillab/gophermachine/machine"
)

// errFailed is returned by the solve command when at least one machine could not be solved.
var errFailed = errors.New("some machines could not be solved")

type solveFlags struct {
	configPath  string
	strategy    string
	workers     int
	maxStates   int
	metricsFile string
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gophermachine",
		Short:         "Finds the fewest button presses needed to configure machines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd(), newCheckCmd())
	return root
}

func newSolveCmd() *cobra.Command {
	var flags solveFlags
	cmd := &cobra.Command{
		Use:   "solve file",
		Short: "Solves every machine described in file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, flags, args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "solving strategy: lights, counters, integer or joint")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "number of machines solved in parallel")
	cmd.Flags().IntVar(&flags.maxStates, "max-states", 0, "maximum number of states visited by a search (0: no limit)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "writes prometheus metrics to this file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "sets verbose mode on")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check file",
		Short: "Parses and validates the machines described in file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machines, err := parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d machines OK\n", len(machines))
			return nil
		},
	}
}

// loadConfig reads the configuration file, if any, then applies the flags that were explicitly set.
func loadConfig(cmd *cobra.Command, flags solveFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.Load(flags.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("strategy") {
		strategy, err := machine.ParseStrategy(flags.strategy)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Strategy = strategy
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if cmd.Flags().Changed("max-states") {
		cfg.MaxStates = flags.maxStates
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	return cfg, cfg.Validate()
}

func runSolve(cmd *cobra.Command, flags solveFlags, path string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	machines, err := parse(path)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	s, err := factory.New(cfg.Strategy,
		factory.WithWorkers(cfg.Workers),
		factory.WithMaxStates(cfg.MaxStates),
		factory.WithILPSolver(ilp.PBSolver{Verbose: cfg.Verbose && cfg.Workers == 1}),
		factory.WithLogger(logger),
		factory.WithMetrics(factory.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}
	logger.Debug("solving machines", "file", path, "machines", len(machines), "strategy", cfg.Strategy, "workers", cfg.Workers)
	report := s.SolveAll(cmd.Context(), machines)
	printReport(cmd.OutOrStdout(), report)
	if flags.metricsFile != "" {
		if err := prometheus.WriteToTextfile(flags.metricsFile, reg); err != nil {
			return fmt.Errorf("could not write metrics: %w", err)
		}
	}
	if len(report.Failed()) != 0 {
		return errFailed
	}
	return nil
}

func printReport(w io.Writer, report factory.Report) {
	for _, o := range report.Outcomes {
		if o.OK() {
			fmt.Fprintf(w, "machine %d: %d\n", o.Index, o.Presses)
		} else {
			fmt.Fprintf(w, "machine %d: %s: %v\n", o.Index, factory.Classify(o.Err), o.Err)
		}
	}
	fmt.Fprintf(w, "total: %d\n", report.Total)
	if failed := report.Failed(); len(failed) != 0 {
		fmt.Fprintf(w, "failed: %d/%d\n", len(failed), len(report.Outcomes))
	}
}

func parse(path string) ([]*machine.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %v", path, err)
	}
	defer f.Close()
	machines, err := machine.ParseAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}
	return machines, nil
}
