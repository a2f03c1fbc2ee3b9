package combat

import "github.com/eloibahuet/egypt-adventures/internal/game/slot"

// Effect magnitudes per matching symbol.
const (
	AttackPerMatch      = 15
	SkillPerMatch       = 25
	ShieldPerMatch      = 10
	PotionHealPerMatch  = 30
	HazardPerMatch      = 10
	HazardStaminaDrain  = 6
	GoldPerMatch        = 20
	StrikeStaminaDrain  = 5
	VictoryGoldPerLevel = 20
	VictoryXPPerLevel   = 15
)

// Probability caps and base rates.
const (
	ChanceCap         = 0.5
	AttackCritBase    = 0.05
	SkillCritBase     = 0.04
	CritPerLuck       = 0.03
	DodgeBase         = 0.03
	DodgePerLuck      = 0.02
	comboBonusPercent = 12
	attackCritNum     = 3
	attackCritDen     = 2
	skillCritNum      = 16
	skillCritDen      = 10
)

// AttackCritChance returns the attack-symbol crit chance for luck.
func AttackCritChance(luck int) float64 {
	return min(ChanceCap, AttackCritBase+CritPerLuck*float64(luck))
}

// SkillCritChance returns the skill-symbol crit chance for luck.
func SkillCritChance(luck int) float64 {
	return min(ChanceCap, SkillCritBase+CritPerLuck*float64(luck))
}

// DodgeChance returns the chance of dodging enemy damage, from either the
// enemy-damage symbol or the auto attack.
func DodgeChance(luck int) float64 {
	return min(ChanceCap, DodgeBase+DodgePerLuck*float64(luck))
}

// CritDamage applies the crit multiplier of primary to base, rounding down.
// Attack crits deal 1.5x and skill crits 1.6x.
func CritDamage(primary slot.Symbol, base int) int {
	switch primary {
	case slot.Attack:
		return base * attackCritNum / attackCritDen
	case slot.Skill:
		return base * skillCritNum / skillCritDen
	default:
		return base
	}
}

// StrikeDamage is the enemy auto-attack damage for the player's current
// streak: base * (1 + 0.12*max(0, streak-1)), rounded down.
func StrikeDamage(baseAttack, streak int) int {
	bonus := comboBonusPercent * max(0, streak-1)
	return baseAttack * (100 + bonus) / 100
}

// VictoryXP returns floor(15 * difficulty * strength).
func VictoryXP(difficulty int, stats ArchetypeStats) int {
	return VictoryXPPerLevel * difficulty * stats.StrengthTenths / 10
}

// VictoryGold returns the gold granted for a win at difficulty.
func VictoryGold(difficulty int) int {
	return VictoryGoldPerLevel * difficulty
}

// Primary returns the first symbol of a spin and how many symbols equal it.
func Primary(symbols []slot.Symbol) (slot.Symbol, int) {
	primary := symbols[0]
	count := 0
	for _, s := range symbols {
		if s == primary {
			count++
		}
	}
	return primary, count
}
