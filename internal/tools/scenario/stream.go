package scenario

import "github.com/eloibahuet/egypt-adventures/internal/random"

// queuedStream serves scripted values first and falls back to the seeded
// stream once a queue is empty.
type queuedStream struct {
	base   random.Source
	floats []float64
	ints   []int
}

func (s *queuedStream) Float64() float64 {
	if len(s.floats) == 0 {
		return s.base.Float64()
	}
	value := s.floats[0]
	s.floats = s.floats[1:]
	return value
}

// Intn reduces a queued value into [0, n).
func (s *queuedStream) Intn(n int) int {
	if len(s.ints) == 0 {
		return s.base.Intn(n)
	}
	value := s.ints[0]
	s.ints = s.ints[1:]
	return ((value % n) + n) % n
}

func (s *queuedStream) pending() (floats, ints int) {
	return len(s.floats), len(s.ints)
}
