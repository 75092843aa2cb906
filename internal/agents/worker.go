// Package agents provides the worker data model and population spawning.
package agents

// Worker is a wage earner. Employment flips true→false at most once over a
// run (automation never rehires); consumption is derived, never set directly.
type Worker struct {
	Wage        float64 `json:"wage"`
	Employed    bool    `json:"employed"`
	Consumption float64 `json:"consumption"`
}

// NewWorker creates an employed worker with consumption already derived,
// so populations have a valid aggregate before the first step.
func NewWorker(wage, propensity float64) *Worker {
	w := &Worker{Wage: wage, Employed: true}
	w.Update(propensity)
	return w
}

// Update recomputes consumption from the current employment state:
// wage × propensity while employed, zero after automation.
func (w *Worker) Update(propensity float64) {
	if w.Employed {
		w.Consumption = w.Wage * propensity
	} else {
		w.Consumption = 0
	}
}

// TotalConsumption sums consumption across a population.
func TotalConsumption(workers []*Worker) float64 {
	total := 0.0
	for _, w := range workers {
		total += w.Consumption
	}
	return total
}

// CountEmployed returns how many workers still hold a job.
func CountEmployed(workers []*Worker) int {
	n := 0
	for _, w := range workers {
		if w.Employed {
			n++
		}
	}
	return n
}

// EmployedWages sums the wages of currently-employed workers (the tax base).
func EmployedWages(workers []*Worker) float64 {
	total := 0.0
	for _, w := range workers {
		if w.Employed {
			total += w.Wage
		}
	}
	return total
}
