package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/asdm/internal/agents"
)

func TestGovernmentTaxesWagesAndRevenue(t *testing.T) {
	workers := []*agents.Worker{
		agents.NewWorker(100, 0.8),
		agents.NewWorker(100, 0.8),
		agents.NewWorker(100, 0.8),
	}
	workers[2].Employed = false

	firms := []*DemandFirm{{Elasticity: 0.7}}
	firms[0].Update(1000)

	g := &Government{TaxRate: 0.3}
	stimulus := g.Update(workers, firms)

	// Tax base: 200 in employed wages + 700 in firm revenue.
	assert.InDelta(t, 0.3*900, g.TaxRevenue, 1e-9)
	assert.InDelta(t, 0.5*g.TaxRevenue, stimulus, 1e-9)
}

func TestGovernmentWithNoFirms(t *testing.T) {
	workers := []*agents.Worker{agents.NewWorker(100, 0.8)}

	g := &Government{TaxRate: 0.3}
	stimulus := g.Update(workers, nil)

	// With zero demand firms the tax base reduces to employed wages alone.
	assert.InDelta(t, 0.3*100, g.TaxRevenue, 1e-9)
	assert.InDelta(t, 0.5*0.3*100, stimulus, 1e-9)
}

func TestGovernmentRecomputesEachStep(t *testing.T) {
	workers := []*agents.Worker{agents.NewWorker(100, 0.8)}
	g := &Government{TaxRate: 0.3}

	g.Update(workers, nil)
	first := g.TaxRevenue
	g.Update(workers, nil)

	// TaxRevenue is a flow, not a stock.
	assert.Equal(t, first, g.TaxRevenue)
}
