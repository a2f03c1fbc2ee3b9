// Package progression implements the experience curve and level-up cascade.
package progression

import (
	"math"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
)

const (
	// BaseRequirement is the xp needed to leave level 1.
	BaseRequirement = 100
	// GrowthRate compounds the requirement for each level after the first.
	GrowthRate = 1.06
	// HPGain is added to max hp and hp on each level-up.
	HPGain = 10
	// StaminaGain is added to max stamina and stamina on each level-up.
	StaminaGain = 5
)

// Unreachable is the requirement reported at the level cap.
const Unreachable = math.MaxInt

// XPRequired returns the xp needed to advance from level to level+1.
// At or above the level cap no further advancement is possible.
func XPRequired(level int) int {
	if level >= domain.MaxLevel {
		return Unreachable
	}
	if level < 1 {
		level = 1
	}
	return int(BaseRequirement * float64(level) * math.Pow(GrowthRate, float64(level-1)))
}

// AddXP adds gained xp to the player and applies every level-up it pays for.
// Each level raises max hp and max stamina and restores the same amounts.
// It returns the levels reached, in order.
func AddXP(p *domain.Player, gained int) []int {
	if gained <= 0 {
		return nil
	}
	p.XP += gained
	var reached []int
	for p.Level < domain.MaxLevel {
		required := XPRequired(p.Level)
		if p.XP < required {
			break
		}
		p.XP -= required
		p.Level++
		p.MaxHP += HPGain
		p.MaxStamina += StaminaGain
		p.HP = min(p.MaxHP, p.HP+HPGain)
		p.Stamina = min(p.MaxStamina, p.Stamina+StaminaGain)
		reached = append(reached, p.Level)
	}
	return reached
}
