package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/asdm/internal/engine"
)

func newEnsembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "Run a Monte Carlo ensemble of independent simulations",
		Long: `Runs N independent simulations in parallel, each seeded deterministically
from the base seed, and reports final-step statistics across the ensemble.
Runs share no state, so this is the only parallelism the model permits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runs, _ := cmd.Flags().GetInt("runs")
			parallel, _ := cmd.Flags().GetInt("parallel")

			results, err := engine.RunEnsemble(cmd.Context(), cfg, runs, parallel)
			if err != nil {
				return err
			}

			s := engine.Summarize(results)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ensemble of %d runs (%d steps, %s workers each)\n",
				s.Runs, cfg.Steps, humanize.Comma(int64(cfg.Workers)))
			fmt.Fprintf(out, "  Final employment: mean %.1f, min %d, max %d\n",
				s.MeanEmployment, s.MinEmployment, s.MaxEmployment)
			fmt.Fprintf(out, "  Final AI profit:  mean %s\n", humanize.CommafWithDigits(s.MeanProfit, 1))
			fmt.Fprintf(out, "  Final tax revenue: mean %s\n", humanize.CommafWithDigits(s.MeanTaxRevenue, 1))
			return nil
		},
	}

	cmd.Flags().Int("runs", 100, "Number of ensemble members")
	cmd.Flags().Int("parallel", 0, "Max concurrent runs (0 = NumCPU)")
	return cmd
}
