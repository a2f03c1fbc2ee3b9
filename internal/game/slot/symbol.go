// Package slot defines the seven-symbol alphabet and the weighted draw that
// produces each turn's three-symbol spin.
package slot

import (
	"fmt"
	"strings"
)

// Symbol is one face of the slot reel.
type Symbol int

const (
	Attack Symbol = iota
	Skill
	Shield
	EnemyDamage
	Potion
	LuckStar
	Gold
)

// variationSelector requests emoji presentation; glyphs match with or without it.
const variationSelector = "\ufe0f"

// SpinSize is the number of symbols resolved per turn.
const SpinSize = 3

type symbolInfo struct {
	name   string
	glyph  string
	weight int
}

// symbols is ordered; Draw walks cumulative weights in this order.
var symbols = [...]symbolInfo{
	Attack:      {name: "attack", glyph: "⚔️", weight: 6},
	Skill:       {name: "skill", glyph: "⚡️", weight: 3},
	Shield:      {name: "shield", glyph: "🛡️", weight: 3},
	EnemyDamage: {name: "enemy_damage", glyph: "💀", weight: 2},
	Potion:      {name: "potion", glyph: "🧪", weight: 2},
	LuckStar:    {name: "luck_star", glyph: "⭐", weight: 4},
	Gold:        {name: "gold", glyph: "💰", weight: 2},
}

// All returns every symbol in draw order.
func All() []Symbol {
	out := make([]Symbol, len(symbols))
	for i := range symbols {
		out[i] = Symbol(i)
	}
	return out
}

// Valid reports whether s is one of the seven symbols.
func (s Symbol) Valid() bool {
	return s >= Attack && s <= Gold
}

// Weight returns the relative draw weight of s.
func (s Symbol) Weight() int {
	if !s.Valid() {
		return 0
	}
	return symbols[s].weight
}

// Glyph returns the display glyph of s.
func (s Symbol) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return symbols[s].glyph
}

// String returns the symbol name.
func (s Symbol) String() string {
	if !s.Valid() {
		return fmt.Sprintf("symbol(%d)", int(s))
	}
	return symbols[s].name
}

// ParseSymbol accepts a symbol name or its glyph. Names are case-insensitive
// and may use '-' or ' ' in place of '_'.
func ParseSymbol(value string) (Symbol, error) {
	trimmed := strings.TrimSpace(value)
	normalized := strings.ToLower(trimmed)
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	bare := strings.TrimSuffix(trimmed, variationSelector)
	for i, info := range symbols {
		if normalized == info.name || trimmed == info.glyph || bare == strings.TrimSuffix(info.glyph, variationSelector) {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("unknown symbol %q", value)
}

// Format renders symbols as glyphs separated by " | ".
func Format(spin []Symbol) string {
	parts := make([]string, len(spin))
	for i, s := range spin {
		parts[i] = s.Glyph()
	}
	return strings.Join(parts, " | ")
}
