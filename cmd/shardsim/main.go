package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/shardsim/internal/logging"
	"github.com/leengari/shardsim/internal/report"
	"github.com/leengari/shardsim/internal/storage"
)

func main() {
	logger, closeFn := logging.SetupLogger()
	defer closeFn()
	slog.SetDefault(logger)

	rootCmd := newRootCommand(logger, os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		closeFn()
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger, stdout io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shardsim",
		Short: "Cost simulator for distributed-database physical design",
		Long: `
shardsim estimates storage footprints and the resource cost (time, energy,
carbon, price) of filter, join and aggregate operations over a candidate
sharded deployment. It works from schema metadata and statistics only; no
data is read or moved.
`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newSizesCommand(logger, stdout))
	rootCmd.AddCommand(newRunCommand(logger, stdout))
	rootCmd.AddCommand(newShardStatsCommand(logger, stdout))
	return rootCmd
}

func buildRuntime(path string, logger *slog.Logger) (*storage.Runtime, error) {
	scenario, err := storage.LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return scenario.Build(logger)
}

func newSizesCommand(logger *slog.Logger, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "sizes <scenario>",
		Short: "Report per-collection and database storage footprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			rt, err := buildRuntime(args[0], logger)
			if err != nil {
				return err
			}
			report.NewWriter(stdout).WriteSizes(rt.DB)
			return nil
		},
	}
}

func newRunCommand(logger *slog.Logger, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Price every query in the scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			rt, err := buildRuntime(args[0], logger)
			if err != nil {
				return err
			}
			runs, err := rt.RunQueries()
			if err != nil {
				return err
			}
			w := report.NewWriter(stdout)
			for _, run := range runs {
				w.WriteQueryRun(run)
			}
			return nil
		},
	}
}

func newShardStatsCommand(logger *slog.Logger, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "shard-stats <scenario>",
		Short: "Report sharding distribution statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			rt, err := buildRuntime(args[0], logger)
			if err != nil {
				return err
			}
			stats, err := rt.ShardStats()
			if err != nil {
				return err
			}
			report.NewWriter(stdout).WriteShardStats(stats)
			return nil
		},
	}
}
