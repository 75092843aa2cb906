package engine

// Snapshot records the aggregate state at the end of one step. Step 0 is the
// pre-simulation baseline: full employment, baseline consumption, and zeroed
// flow metrics.
type Snapshot struct {
	Step          int     `json:"step"`
	Employment    int     `json:"employment"`
	Consumption   float64 `json:"consumption"`
	TaxRevenue    float64 `json:"tax_revenue"`
	AIProfit      float64 `json:"ai_profit"`      // Cumulative across the run
	DemandRevenue float64 `json:"demand_revenue"` // Summed over demand firms

	// Per-worker detail for grid consumers; nil unless worker recording is
	// enabled. WorkerWages carries the wage for employed workers and 0 for
	// automated ones, matching what the heatmap colors on.
	WorkerEmployment []bool    `json:"worker_employment,omitempty"`
	WorkerWages      []float64 `json:"worker_wages,omitempty"`
}

// History is the append-only sequence of snapshots, one per step in
// simulation order. It is never reordered or truncated.
type History []Snapshot

// Final returns the most recent snapshot.
func (h History) Final() Snapshot {
	return h[len(h)-1]
}
