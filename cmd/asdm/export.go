package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/talgya/asdm/internal/engine"
)

// exportHistory writes the snapshot series as CSV or JSON for downstream
// plotting tools. Per-worker vectors are included only in JSON output.
func exportHistory(hist engine.History, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(hist)
	case "csv":
		w := csv.NewWriter(f)

		header := []string{"step", "employment", "consumption", "tax_revenue", "ai_profit", "demand_revenue"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, snap := range hist {
			row := []string{
				strconv.Itoa(snap.Step),
				strconv.Itoa(snap.Employment),
				strconv.FormatFloat(snap.Consumption, 'f', -1, 64),
				strconv.FormatFloat(snap.TaxRevenue, 'f', -1, 64),
				strconv.FormatFloat(snap.AIProfit, 'f', -1, 64),
				strconv.FormatFloat(snap.DemandRevenue, 'f', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}
}
