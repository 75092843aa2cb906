// Wage generation policies — fixed, normally-distributed, and noise-field.
package agents

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/asdm/internal/entropy"
)

// WageGenerator draws the wage for the i-th worker in the population.
// Implementations must clamp their own output; the spawner does not.
type WageGenerator interface {
	Draw(i int) float64
}

// FixedWages gives every worker the same wage (the homogeneous economy).
type FixedWages struct {
	Wage float64
}

func (g FixedWages) Draw(i int) float64 {
	return g.Wage
}

// NormalWages draws wages from N(Mean, Std) floored at Floor. Negative and
// near-zero draws are clamped, not resampled.
type NormalWages struct {
	Mean  float64
	Std   float64
	Floor float64
	Src   *entropy.Source
}

func (g NormalWages) Draw(i int) float64 {
	wage := g.Src.Normal(g.Mean, g.Std)
	if wage < g.Floor {
		wage = g.Floor
	}
	return wage
}

// FieldWages draws wages from a normalized simplex-noise field over the
// worker grid, so neighboring cells in the heatmap consumer get correlated
// wages (regional wage structure rather than pure jitter). Worker i sits at
// grid cell (i/Cols, i%Cols).
type FieldWages struct {
	Mean   float64
	Spread float64 // Half-width: wages span Mean±Spread before flooring
	Floor  float64
	Cols   int
	noise  opensimplex.Noise
}

// NewFieldWages creates a field generator seeded independently of the
// engine's draw sequence, so switching wage policy does not perturb the
// automation-rate stream.
func NewFieldWages(mean, spread, floor float64, cols int, seed int64) FieldWages {
	return FieldWages{
		Mean:   mean,
		Spread: spread,
		Floor:  floor,
		Cols:   cols,
		noise:  opensimplex.NewNormalized(seed),
	}
}

func (g FieldWages) Draw(i int) float64 {
	row := i / g.Cols
	col := i % g.Cols
	// Normalized noise is in [0, 1]; stretch to Mean±Spread.
	n := g.noise.Eval2(float64(col)*0.15, float64(row)*0.15)
	wage := g.Mean + (n*2-1)*g.Spread
	if wage < g.Floor {
		wage = g.Floor
	}
	return wage
}
