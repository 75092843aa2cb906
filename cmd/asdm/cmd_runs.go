package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/asdm/internal/persistence"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs stored in a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}

			db, err := persistence.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs stored.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  seed=%d workers=%d steps=%d  %s\n",
					r.ID, r.Seed, r.Workers, r.Steps, r.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().String("db", "", "SQLite database path")
	return cmd
}
