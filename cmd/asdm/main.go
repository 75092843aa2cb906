// Command asdm runs the AI self-disruption macroeconomic simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/asdm/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asdm",
		Short: "Agent-based AI self-disruption economy simulation",
		Long: `asdm simulates the feedback loop between job automation and aggregate
demand: an automating AI firm cuts jobs each step, which erodes the consumer
demand its own profits depend on, partially offset by government stimulus.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable per-step debug logging")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Override random seed")
	rootCmd.PersistentFlags().Int("steps", 0, "Override step count")
	rootCmd.PersistentFlags().Int("workers", 0, "Override population size")

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newEnsembleCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the run configuration: defaults, then the config file,
// then flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
