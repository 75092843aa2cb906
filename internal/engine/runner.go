package engine

import (
	"log/slog"
	"time"
)

// Runner drives an Economy for its configured step count. With a zero
// Interval it runs flat out; with a positive Interval it paces steps in wall
// time so an observer (the HTTP API) can watch the run unfold. Speed is a
// multiplier on the pace: 2 runs twice as fast, 0 pauses.
type Runner struct {
	Interval time.Duration
	Speed    float64
	Running  bool

	// OnStep fires after every completed step with the step's snapshot.
	OnStep func(snap Snapshot)
}

// NewRunner creates a runner that executes steps as fast as possible.
func NewRunner() *Runner {
	return &Runner{Speed: 1}
}

// Run executes the economy's remaining steps. Blocks until the configured
// step count is reached or Stop is called.
func (r *Runner) Run(e *Economy) {
	r.Running = true
	slog.Info("simulation started",
		"steps", e.Config().Steps,
		"workers", e.Config().Workers,
		"seed", e.Config().Seed,
	)

	for r.Running && e.CurrentStep() < e.Config().Steps {
		if r.Interval > 0 && r.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Step()
		snap := e.History().Final()
		if r.OnStep != nil {
			r.OnStep(snap)
		}

		slog.Debug("step",
			"step", snap.Step,
			"employment", snap.Employment,
			"consumption", snap.Consumption,
			"tax_revenue", snap.TaxRevenue,
			"ai_profit", snap.AIProfit,
			"demand_revenue", snap.DemandRevenue,
		)

		// Sleep for the remainder of the step interval, adjusted for speed.
		if r.Interval > 0 {
			elapsed := time.Since(start)
			target := time.Duration(float64(r.Interval) / r.Speed)
			if elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}

	r.Running = false
	final := e.History().Final()
	slog.Info("simulation finished",
		"steps", e.CurrentStep(),
		"employment", final.Employment,
		"consumption", final.Consumption,
		"ai_profit", final.AIProfit,
	)
}

// Stop halts the run loop after the current step.
func (r *Runner) Stop() {
	r.Running = false
}
