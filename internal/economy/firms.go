// Package economy provides the firm and government update rules.
package economy

import (
	"math"

	"github.com/talgya/asdm/internal/entropy"
)

// RatePolicy produces the per-step job automation rate α.
type RatePolicy interface {
	Next() float64
}

// FixedRate always returns the same automation rate.
type FixedRate struct {
	Alpha float64
}

func (p FixedRate) Next() float64 {
	return p.Alpha
}

// NormalRate samples the automation rate from N(Mean, Std), floored at zero.
// Negative draws are clamped rather than resampled, so the realized rate
// distribution has a point mass at 0.
type NormalRate struct {
	Mean float64
	Std  float64
	Src  *entropy.Source
}

func (p NormalRate) Next() float64 {
	alpha := p.Src.Normal(p.Mean, p.Std)
	if alpha < 0 {
		alpha = 0
	}
	return alpha
}

// AutomationFirm automates jobs and accrues profit from them, discounted by
// how far aggregate demand has fallen below its original baseline — the
// firm's own profitability depends on the economy it is hollowing out.
type AutomationFirm struct {
	ProfitPerJob     float64
	Dependency       float64 // Market-dependency coefficient ε
	Rate             RatePolicy
	CumulativeProfit float64
}

// Decide draws an automation rate, converts it into a whole number of jobs
// to cut this step, and accrues the demand-adjusted profit for those cuts.
// Fractional jobs truncate toward zero, so small populations can see many
// consecutive zero-cut steps under a low rate.
func (f *AutomationFirm) Decide(numEmployed int, totalConsumption, initialConsumption float64) int {
	alpha := f.Rate.Next()
	jobs := int(alpha * float64(numEmployed))

	rawProfit := float64(jobs) * f.ProfitPerJob

	ratio := 0.0
	if initialConsumption > 0 {
		ratio = totalConsumption / initialConsumption
	}
	// Profit shrinks as demand falls below the baseline, floored at zero so
	// cumulative profit never decreases.
	f.CumulativeProfit += rawProfit * math.Max(0, 1-f.Dependency*(1-ratio))

	return jobs
}

// DemandFirm earns revenue proportional to current aggregate consumption.
// Revenue is overwritten each step, not accumulated.
type DemandFirm struct {
	Elasticity float64
	Revenue    float64
}

// Update recomputes revenue from this step's aggregate demand.
func (f *DemandFirm) Update(totalConsumption float64) {
	f.Revenue = f.Elasticity * totalConsumption
}

// TotalRevenue sums current revenue across demand firms.
func TotalRevenue(firms []*DemandFirm) float64 {
	total := 0.0
	for _, f := range firms {
		total += f.Revenue
	}
	return total
}
