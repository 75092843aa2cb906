package engine

import (
	"github.com/talgya/asdm/internal/entropy"
)

// Selector picks which employed workers lose their jobs this step. Input is
// the employed worker indices in population order; output length is always
// min(n, len(employed)).
type Selector interface {
	Select(employed []int, n int, src *entropy.Source) []int
}

// InOrder takes the first n employed workers in population order. Stable and
// reproducible without random draws; biases cuts toward low-index workers.
type InOrder struct{}

func (InOrder) Select(employed []int, n int, src *entropy.Source) []int {
	if n > len(employed) {
		n = len(employed)
	}
	return employed[:n]
}

// Shuffled picks a uniform random subset of the employed workers, removing
// the positional bias of InOrder.
type Shuffled struct{}

func (Shuffled) Select(employed []int, n int, src *entropy.Source) []int {
	if n > len(employed) {
		n = len(employed)
	}
	src.Shuffle(len(employed), func(i, j int) {
		employed[i], employed[j] = employed[j], employed[i]
	})
	return employed[:n]
}
