package economy

import (
	"github.com/talgya/asdm/internal/agents"
)

// Half of collected tax is returned as demand stimulus; the other half is
// retained and not modeled further.
const stimulusShare = 0.5

// Government taxes employed wages plus firm revenue and returns a stimulus.
// TaxRevenue is recomputed each step from current inputs, never accumulated.
type Government struct {
	TaxRate    float64
	TaxRevenue float64
}

// Update collects tax on the wages of currently-employed workers and on all
// demand-firm revenue, and returns the stimulus to add back into aggregate
// consumption.
func (g *Government) Update(workers []*agents.Worker, firms []*DemandFirm) float64 {
	g.TaxRevenue = g.TaxRate * (agents.EmployedWages(workers) + TotalRevenue(firms))
	return stimulusShare * g.TaxRevenue
}
