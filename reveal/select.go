package reveal

import "math/rand"

// SelectMode chooses how the next cell to fill is picked
type SelectMode int

const (
	Sequential SelectMode = iota
	Random
)

func (m SelectMode) String() string {
	if m == Random {
		return "random"
	}
	return "sequential"
}

// ParseSelectMode accepts "sequential" or "random"
func ParseSelectMode(s string) (SelectMode, bool) {
	switch s {
	case "sequential":
		return Sequential, true
	case "random":
		return Random, true
	}
	return Sequential, false
}

// Selector picks the next cell to assign
type Selector struct {
	mode   SelectMode
	cursor int
	rng    *rand.Rand
}

func NewSelector(mode SelectMode, rng *rand.Rand) *Selector {
	return &Selector{mode: mode, rng: rng}
}

func (s *Selector) Mode() SelectMode { return s.mode }

// Rewind restarts the sequential order at the first cell
func (s *Selector) Rewind() { s.cursor = 0 }

// Next returns the index into cells of the next cell to fill
// ok is false when every cell is blocked
func (s *Selector) Next(cells []*Cell, blocked func(index int) bool) (int, bool) {
	if len(cells) == 0 {
		return -1, false
	}
	if blocked == nil {
		blocked = func(int) bool { return false }
	}
	if s.mode == Random {
		return s.random(cells, blocked)
	}
	return s.sequential(cells, blocked)
}

// sequential walks round-robin from the cursor, at most one full pass
func (s *Selector) sequential(cells []*Cell, blocked func(int) bool) (int, bool) {
	n := len(cells)
	for i := 0; i < n; i++ {
		idx := (s.cursor + i) % n
		if blocked(cells[idx].Index) {
			continue
		}
		s.cursor = (idx + 1) % n
		return idx, true
	}
	return -1, false
}

// random prefers empty unblocked cells, then any unblocked cell
func (s *Selector) random(cells []*Cell, blocked func(int) bool) (int, bool) {
	var empty, open []int
	for i, c := range cells {
		if blocked(c.Index) {
			continue
		}
		open = append(open, i)
		if c.State() == Empty {
			empty = append(empty, i)
		}
	}

	pool := empty
	if len(pool) == 0 {
		pool = open
	}
	if len(pool) == 0 {
		return -1, false
	}
	return pool[s.intn(len(pool))], true
}

func (s *Selector) intn(n int) int {
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}

// PickDrawing draws from recognized with probability p, otherwise from
// unrecognized; an empty chosen subset falls back to both combined
func PickDrawing[T any](rng *rand.Rand, p float64, recognized, unrecognized []T) (T, bool) {
	var zero T
	float := rand.Float64
	intn := rand.Intn
	if rng != nil {
		float = rng.Float64
		intn = rng.Intn
	}

	pool := unrecognized
	if float() < p {
		pool = recognized
	}
	if len(pool) > 0 {
		return pool[intn(len(pool))], true
	}

	total := len(recognized) + len(unrecognized)
	if total == 0 {
		return zero, false
	}
	i := intn(total)
	if i < len(recognized) {
		return recognized[i], true
	}
	return unrecognized[i-len(recognized)], true
}
