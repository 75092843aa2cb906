package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/asdm/internal/engine"
	"github.com/talgya/asdm/internal/persistence"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			format, _ := cmd.Flags().GetString("format")
			dbPath, _ := cmd.Flags().GetString("db")

			eco, err := engine.New(cfg)
			if err != nil {
				return err
			}

			runner := engine.NewRunner()
			runner.Run(eco)

			hist := eco.History()
			printSummary(cmd, hist)

			if dbPath != "" {
				db, err := persistence.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()

				id, err := db.SaveRun(cfg, hist)
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Run saved as %s\n", id)
			}

			if outPath != "" {
				if err := exportHistory(hist, outPath, format); err != nil {
					return fmt.Errorf("export history: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "History written to %s\n", outPath)
			}

			return nil
		},
	}

	cmd.Flags().String("out", "", "Export history to this file")
	cmd.Flags().String("format", "csv", "Export format: csv or json")
	cmd.Flags().String("db", "", "Persist the run to this SQLite database")
	return cmd
}

// printSummary reports first/last-step aggregates after a completed run.
func printSummary(cmd *cobra.Command, hist engine.History) {
	first := hist[0]
	last := hist.Final()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Simulation complete: %d steps\n", last.Step)
	fmt.Fprintf(out, "  Employment:     %s → %s\n",
		humanize.Comma(int64(first.Employment)), humanize.Comma(int64(last.Employment)))
	fmt.Fprintf(out, "  Consumption:    %s → %s\n",
		humanize.CommafWithDigits(first.Consumption, 1), humanize.CommafWithDigits(last.Consumption, 1))
	fmt.Fprintf(out, "  Tax revenue:    %s\n", humanize.CommafWithDigits(last.TaxRevenue, 1))
	fmt.Fprintf(out, "  AI profit:      %s\n", humanize.CommafWithDigits(last.AIProfit, 1))
	fmt.Fprintf(out, "  Demand revenue: %s\n", humanize.CommafWithDigits(last.DemandRevenue, 1))
}
