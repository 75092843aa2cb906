package agents

// Spawner creates the initial worker population from a wage policy.
type Spawner struct {
	gen        WageGenerator
	propensity float64
}

// NewSpawner creates a spawner that derives each worker's starting
// consumption with the given marginal propensity to consume.
func NewSpawner(gen WageGenerator, propensity float64) *Spawner {
	return &Spawner{gen: gen, propensity: propensity}
}

// SpawnPopulation creates count employed workers in population order.
// Population order is stable for the lifetime of the run; the in-order
// selection policy depends on it.
func (s *Spawner) SpawnPopulation(count int) []*Worker {
	workers := make([]*Worker, 0, count)
	for i := 0; i < count; i++ {
		workers = append(workers, NewWorker(s.gen.Draw(i), s.propensity))
	}
	return workers
}
