package combat

import (
	"fmt"
	"strings"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
)

// Archetype is an enemy category.
type Archetype string

const (
	ArchetypeNormal   Archetype = "normal"
	ArchetypeElite    Archetype = "elite"
	ArchetypeMiniBoss Archetype = "mini_boss"
)

// Archetypes lists every archetype in escalating order.
var Archetypes = []Archetype{ArchetypeNormal, ArchetypeElite, ArchetypeMiniBoss}

// ArchetypeStats is the per-difficulty stat line of an archetype:
// max hp = HPBase + HPPerLevel*difficulty, attack = AttackBase + AttackPerLevel*difficulty.
type ArchetypeStats struct {
	HPBase         int
	HPPerLevel     int
	AttackBase     int
	AttackPerLevel int
	Strength       float64
	// StrengthTenths is Strength scaled by ten for exact xp math.
	StrengthTenths int
}

var archetypeStats = map[Archetype]ArchetypeStats{
	ArchetypeNormal:   {HPBase: 100, HPPerLevel: 10, AttackBase: 10, AttackPerLevel: 2, Strength: 1.0, StrengthTenths: 10},
	ArchetypeElite:    {HPBase: 150, HPPerLevel: 20, AttackBase: 15, AttackPerLevel: 5, Strength: 1.6, StrengthTenths: 16},
	ArchetypeMiniBoss: {HPBase: 250, HPPerLevel: 40, AttackBase: 25, AttackPerLevel: 8, Strength: 2.4, StrengthTenths: 24},
}

// ParseArchetype validates and normalizes an archetype name.
// "monster" is accepted as an alias for normal.
func ParseArchetype(value string) (Archetype, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch normalized {
	case "monster", string(ArchetypeNormal):
		return ArchetypeNormal, nil
	case string(ArchetypeElite):
		return ArchetypeElite, nil
	case string(ArchetypeMiniBoss), "miniboss":
		return ArchetypeMiniBoss, nil
	default:
		return "", fmt.Errorf("archetype %q is not supported", value)
	}
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	_, ok := archetypeStats[a]
	return ok
}

// Stats returns the stat line of a.
func (a Archetype) Stats() (ArchetypeStats, bool) {
	stats, ok := archetypeStats[a]
	return stats, ok
}

// NewEnemy builds a full-health enemy of archetype a at difficulty.
// The caller supplies the generated name.
func (a Archetype) NewEnemy(name string, difficulty int) domain.Enemy {
	stats := archetypeStats[a]
	maxHP := stats.HPBase + stats.HPPerLevel*difficulty
	return domain.Enemy{
		Name:          name,
		HP:            maxHP,
		MaxHP:         maxHP,
		BaseAttack:    stats.AttackBase + stats.AttackPerLevel*difficulty,
		TurnsToAttack: domain.EnemyAttackInterval,
		Strength:      stats.Strength,
		Archetype:     string(a),
	}
}
