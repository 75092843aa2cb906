package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/asdm/internal/entropy"
)

func TestDecideTruncatesTowardZero(t *testing.T) {
	f := &AutomationFirm{ProfitPerJob: 50, Dependency: 0.5, Rate: FixedRate{Alpha: 0.05}}

	// 0.05 × 19 = 0.95 → 0 jobs: small populations can see many zero-cut steps.
	assert.Equal(t, 0, f.Decide(19, 1000, 1000))
	assert.Equal(t, 0.0, f.CumulativeProfit)

	// 0.05 × 1000 = 50 jobs, full profit at baseline demand.
	assert.Equal(t, 50, f.Decide(1000, 1000, 1000))
	assert.Equal(t, 2500.0, f.CumulativeProfit)
}

func TestDecideDemandPenalty(t *testing.T) {
	f := &AutomationFirm{ProfitPerJob: 50, Dependency: 0.5, Rate: FixedRate{Alpha: 0.1}}

	// Demand at half the baseline: penalty factor 1 − 0.5×(1−0.5) = 0.75.
	jobs := f.Decide(100, 500, 1000)
	assert.Equal(t, 10, jobs)
	assert.InDelta(t, 10*50*0.75, f.CumulativeProfit, 1e-9)
}

func TestDecidePenaltyFloorsAtZero(t *testing.T) {
	// Dependency large enough to push adjusted profit negative without the
	// floor; cumulative profit must not decrease.
	f := &AutomationFirm{ProfitPerJob: 50, Dependency: 3, Rate: FixedRate{Alpha: 0.1}}
	f.Decide(100, 0, 1000) // ratio 0 → 1 − 3×1 = −2, floored to 0
	assert.Equal(t, 0.0, f.CumulativeProfit)
}

func TestDecideZeroBaseline(t *testing.T) {
	// Zero initial consumption uses ratio 0 instead of dividing by zero.
	f := &AutomationFirm{ProfitPerJob: 50, Dependency: 0.5, Rate: FixedRate{Alpha: 0.1}}
	jobs := f.Decide(100, 0, 0)
	assert.Equal(t, 10, jobs)
	assert.InDelta(t, 10*50*0.5, f.CumulativeProfit, 1e-9)
}

func TestCumulativeProfitMonotonic(t *testing.T) {
	f := &AutomationFirm{
		ProfitPerJob: 50,
		Dependency:   0.5,
		Rate:         NormalRate{Mean: 0.05, Std: 0.05, Src: entropy.NewSource(3)},
	}

	prev := 0.0
	for i := 0; i < 500; i++ {
		f.Decide(1000, 400, 1000)
		assert.GreaterOrEqual(t, f.CumulativeProfit, prev)
		prev = f.CumulativeProfit
	}
}

func TestNormalRateFloorsAtZero(t *testing.T) {
	p := NormalRate{Mean: -1, Std: 0.1, Src: entropy.NewSource(1)}
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0.0, p.Next())
	}
}

func TestDemandFirmOverwritesRevenue(t *testing.T) {
	f := &DemandFirm{Elasticity: 0.7}

	f.Update(1000)
	assert.InDelta(t, 700, f.Revenue, 1e-9)

	// Recomputed, not accumulated.
	f.Update(100)
	assert.InDelta(t, 70, f.Revenue, 1e-9)
}

func TestTotalRevenue(t *testing.T) {
	firms := []*DemandFirm{
		{Elasticity: 0.7},
		{Elasticity: 0.7},
	}
	for _, f := range firms {
		f.Update(100)
	}
	assert.InDelta(t, 140, TotalRevenue(firms), 1e-9)
	assert.Equal(t, 0.0, TotalRevenue(nil))
}
