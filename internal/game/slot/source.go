package slot

import "github.com/eloibahuet/egypt-adventures/internal/random"

// Source draws symbols from a seeded random stream.
type Source struct {
	rng   random.Source
	order []Symbol
	total int
}

// NewSource returns a symbol source bound to rng.
func NewSource(rng random.Source) *Source {
	order := All()
	total := 0
	for _, symbol := range order {
		total += symbol.Weight()
	}
	return &Source{rng: rng, order: order, total: total}
}

// Draw returns one symbol with probability weight/total.
func (s *Source) Draw() Symbol {
	roll := s.rng.Intn(s.total)
	for _, symbol := range s.order {
		if roll < symbol.Weight() {
			return symbol
		}
		roll -= symbol.Weight()
	}
	return Gold
}

// Spin returns SpinSize independent draws.
func (s *Source) Spin() []Symbol {
	out := make([]Symbol, SpinSize)
	for i := range out {
		out[i] = s.Draw()
	}
	return out
}
