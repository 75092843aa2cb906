// Package engine provides the Economy simulation: the per-step update rule
// that couples worker consumption, stochastic job automation, demand-driven
// firm revenue, and government tax/stimulus, and records the resulting
// time series.
package engine

import (
	"log/slog"

	"github.com/talgya/asdm/internal/agents"
	"github.com/talgya/asdm/internal/config"
	"github.com/talgya/asdm/internal/economy"
	"github.com/talgya/asdm/internal/entropy"
)

// Economy owns the full agent population and orchestrates the step order.
// It is single-threaded: Step must not be called concurrently with itself or
// with the read accessors.
type Economy struct {
	cfg config.Config

	workers     []*agents.Worker
	firm        *economy.AutomationFirm
	demandFirms []*economy.DemandFirm
	government  *economy.Government
	selector    Selector
	src         *entropy.Source

	totalConsumption float64
	// Demand baseline captured once at construction; the denominator of the
	// automation firm's market-dependency ratio for the whole run.
	initialConsumption float64

	step    int
	history History
}

// New constructs a fully-initialized economy at step 0: every worker
// employed, the consumption baseline frozen, and the baseline snapshot
// already appended to history.
func New(cfg config.Config) (*Economy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := entropy.NewSource(cfg.Seed)

	var gen agents.WageGenerator
	switch cfg.WagePolicy {
	case config.WageFixed:
		gen = agents.FixedWages{Wage: cfg.WageMean}
	case config.WageNormal:
		gen = agents.NormalWages{Mean: cfg.WageMean, Std: cfg.WageStd, Floor: cfg.WageFloor, Src: src}
	case config.WageField:
		gen = agents.NewFieldWages(cfg.WageMean, cfg.WageSpread, cfg.WageFloor, cfg.GridCols, int64(cfg.Seed))
	}

	var rate economy.RatePolicy
	switch cfg.RatePolicy {
	case config.RateFixed:
		rate = economy.FixedRate{Alpha: cfg.AlphaMean}
	case config.RateNormal:
		rate = economy.NormalRate{Mean: cfg.AlphaMean, Std: cfg.AlphaStd, Src: src}
	}

	var selector Selector
	switch cfg.Selection {
	case config.SelectInOrder:
		selector = InOrder{}
	case config.SelectShuffled:
		selector = Shuffled{}
	}

	spawner := agents.NewSpawner(gen, cfg.Beta)
	workers := spawner.SpawnPopulation(cfg.Workers)

	demandFirms := make([]*economy.DemandFirm, cfg.DemandFirms)
	for i := range demandFirms {
		demandFirms[i] = &economy.DemandFirm{Elasticity: cfg.Gamma}
	}

	e := &Economy{
		cfg:     cfg,
		workers: workers,
		firm: &economy.AutomationFirm{
			ProfitPerJob: cfg.ProfitPerJob,
			Dependency:   cfg.Epsilon,
			Rate:         rate,
		},
		demandFirms: demandFirms,
		government:  &economy.Government{TaxRate: cfg.Tau},
		selector:    selector,
		src:         src,
	}

	e.totalConsumption = agents.TotalConsumption(workers)
	e.initialConsumption = e.totalConsumption
	e.record()

	slog.Debug("economy initialized",
		"workers", len(workers),
		"demand_firms", len(demandFirms),
		"initial_consumption", e.initialConsumption,
		"seed", cfg.Seed,
	)
	return e, nil
}

// Step advances the simulation one time unit. Stage order matters: each
// stage consumes the previous stage's output.
func (e *Economy) Step() {
	e.step++

	// Workers derive consumption from current employment, then aggregate
	// pre-stimulus demand.
	for _, w := range e.workers {
		w.Update(e.cfg.Beta)
	}
	e.totalConsumption = agents.TotalConsumption(e.workers)

	// The automation firm decides how many jobs to cut from the
	// pre-automation headcount.
	numEmployed := agents.CountEmployed(e.workers)
	jobsToAutomate := e.firm.Decide(numEmployed, e.totalConsumption, e.initialConsumption)

	// Flip the selected workers to unemployed. One-directional: nothing in
	// the model rehires.
	employed := make([]int, 0, numEmployed)
	for i, w := range e.workers {
		if w.Employed {
			employed = append(employed, i)
		}
	}
	for _, idx := range e.selector.Select(employed, jobsToAutomate, e.src) {
		e.workers[idx].Employed = false
	}

	// Demand firms earn from the pre-stimulus consumption figure.
	for _, f := range e.demandFirms {
		f.Update(e.totalConsumption)
	}

	// Government taxes the post-automation wage base plus firm revenue; the
	// stimulus inflates the recorded demand aggregate but is never
	// redistributed to individual workers.
	stimulus := e.government.Update(e.workers, e.demandFirms)
	e.totalConsumption += stimulus

	e.record()
}

// record appends the current state to history.
func (e *Economy) record() {
	snap := Snapshot{
		Step:          e.step,
		Employment:    agents.CountEmployed(e.workers),
		Consumption:   e.totalConsumption,
		TaxRevenue:    e.government.TaxRevenue,
		AIProfit:      e.firm.CumulativeProfit,
		DemandRevenue: economy.TotalRevenue(e.demandFirms),
	}
	if e.cfg.RecordWorkers {
		snap.WorkerEmployment = make([]bool, len(e.workers))
		snap.WorkerWages = make([]float64, len(e.workers))
		for i, w := range e.workers {
			snap.WorkerEmployment[i] = w.Employed
			if w.Employed {
				snap.WorkerWages[i] = w.Wage
			}
		}
	}
	e.history = append(e.history, snap)
}

// Run advances the economy by the configured number of steps.
func (e *Economy) Run() {
	for i := 0; i < e.cfg.Steps; i++ {
		e.Step()
	}
}

// CurrentStep returns the number of completed steps.
func (e *Economy) CurrentStep() int {
	return e.step
}

// History returns the recorded snapshot sequence, including the step-0
// baseline. The returned slice is the engine's own log; callers must treat
// it as read-only.
func (e *Economy) History() History {
	return e.history
}

// Config returns the configuration snapshot this run was built from.
func (e *Economy) Config() config.Config {
	return e.cfg
}

// InitialConsumption returns the frozen demand baseline.
func (e *Economy) InitialConsumption() float64 {
	return e.initialConsumption
}
