package combat

import (
	"strconv"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/progression"
	"github.com/eloibahuet/egypt-adventures/internal/game/slot"
	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

// ResolveTurn applies one spin. The call is atomic: a rejected call changes
// nothing, an accepted one runs every step below before returning.
//
//  1. primary symbol effect
//  2. streak update
//  3. enemy timer and strike
//  4. victory rewards
//  5. death check with potion revival
//
// Draw order on the session stream is crit, hazard dodge, strike dodge, loot.
func (e *Engine) ResolveTurn(symbols []slot.Symbol) (TurnOutcome, error) {
	if !e.state.InBattle {
		return TurnOutcome{}, apperrors.New(apperrors.CodeBattleNotActive, "no battle in progress")
	}
	if err := validateSpin(symbols); err != nil {
		return TurnOutcome{}, err
	}

	events := &eventLog{localizer: e.localizer}
	report := TurnReport{}
	report.Primary, report.MatchCount = Primary(symbols)
	events.add("battle.primary", report.Primary.Glyph(), report.MatchCount)

	e.applyPrimary(events, &report)
	e.advanceStreak(events, &report)
	e.advanceTimer(events, &report)
	if e.enemy.Defeated() {
		e.enemy.HP = 0
		e.grantVictory(events, &report)
	}
	e.checkDeath(events, &report)
	e.enemy.HP = min(max(e.enemy.HP, 0), e.enemy.MaxHP)

	e.state.Turns++
	e.state.Log = append(e.state.Log, events.lines...)
	return TurnOutcome{
		LogEvents:    events.lines,
		BattleActive: e.state.InBattle,
		PlayerAlive:  e.player.Alive(),
		Report:       report,
	}, nil
}

func validateSpin(symbols []slot.Symbol) error {
	if len(symbols) != slot.SpinSize {
		return apperrors.WithMetadata(apperrors.CodeInvalidTurnInput, "a turn needs exactly three symbols", map[string]string{
			"Count": strconv.Itoa(len(symbols)),
		})
	}
	for _, s := range symbols {
		if !s.Valid() {
			return apperrors.WithMetadata(apperrors.CodeInvalidTurnInput, "unknown symbol", map[string]string{
				"Symbol": s.String(),
			})
		}
	}
	return nil
}

func (e *Engine) applyPrimary(events *eventLog, report *TurnReport) {
	p := e.player
	n := report.MatchCount
	switch report.Primary {
	case slot.Attack:
		base := AttackPerMatch*n + p.WeaponBonus()
		report.Crit = e.rng.Float64() < AttackCritChance(p.LuckCombat)
		report.DamageDealt = base
		key := "battle.attack"
		if report.Crit {
			report.DamageDealt = CritDamage(slot.Attack, base)
			key = "battle.attack.crit"
		}
		e.enemy.HP -= report.DamageDealt
		events.add(key, n, report.DamageDealt)
	case slot.Skill:
		base := SkillPerMatch*n + p.WeaponBonus()
		report.Crit = e.rng.Float64() < SkillCritChance(p.LuckCombat)
		report.DamageDealt = base
		key := "battle.skill"
		if report.Crit {
			report.DamageDealt = CritDamage(slot.Skill, base)
			key = "battle.skill.crit"
		}
		e.enemy.HP -= report.DamageDealt
		events.add(key, n, report.DamageDealt)
	case slot.Shield:
		gain := ShieldPerMatch * n
		p.Shield += gain
		events.add("battle.shield", n, gain)
	case slot.Potion:
		gain := PotionHealPerMatch * n
		p.Heal(gain)
		events.add("battle.potion", n, gain)
	case slot.LuckStar:
		p.LuckCombat += n
		events.add("battle.luck", n)
	case slot.EnemyDamage:
		if e.rng.Float64() < DodgeChance(p.LuckCombat) {
			report.HazardDodged = true
			events.add("battle.hazard.dodge", p.LuckCombat)
			return
		}
		raw := HazardPerMatch * n
		consumed, mitigated := p.AbsorbDamage(raw)
		drain := HazardStaminaDrain * n
		p.DrainStamina(drain)
		events.add("battle.hazard.hit", n, raw, consumed, mitigated, drain)
	case slot.Gold:
		gain := GoldPerMatch * n
		p.Gold += gain
		events.add("battle.gold", gain, n)
	}
}

func (e *Engine) advanceStreak(events *eventLog, report *TurnReport) {
	if e.state.ConsecCount > 0 && e.state.ConsecSymbol == report.Primary {
		e.state.ConsecCount++
	} else {
		e.state.ConsecSymbol = report.Primary
		e.state.ConsecCount = 1
	}
	report.Streak = e.state.ConsecCount
	events.add("battle.combo", e.state.ConsecSymbol.Glyph(), e.state.ConsecCount)
}

// advanceTimer counts the enemy down and strikes when it reaches zero.
// Strike damage scales with the player's streak.
func (e *Engine) advanceTimer(events *eventLog, report *TurnReport) {
	e.enemy.TurnsToAttack--
	if e.enemy.TurnsToAttack > 0 {
		return
	}
	p := e.player
	report.StrikeFired = true
	e.enemy.TurnsToAttack = domain.EnemyAttackInterval
	if e.rng.Float64() < DodgeChance(p.LuckCombat) {
		report.StrikeDodged = true
		events.add("battle.strike.dodge", p.LuckCombat)
		return
	}
	damage := StrikeDamage(e.enemy.BaseAttack, e.state.ConsecCount)
	consumed, mitigated := p.AbsorbDamage(damage)
	p.DrainStamina(StrikeStaminaDrain)
	report.StrikeDamage = damage
	events.add("battle.strike.hit", damage, consumed, mitigated, StrikeStaminaDrain)
}

func (e *Engine) grantVictory(events *eventLog, report *TurnReport) {
	stats, _ := e.state.Archetype.Stats()
	d := e.state.Difficulty

	e.state.InBattle = false
	e.state.Phase = PhaseVictory
	report.Victory = true
	events.add("battle.victory")

	report.GoldGained = VictoryGold(d)
	e.player.Gold += report.GoldGained
	events.add("battle.reward.gold", report.GoldGained)

	report.XPGained = VictoryXP(d, stats)
	report.LevelsGained = progression.AddXP(e.player, report.XPGained)
	events.add("battle.reward.xp", report.XPGained, e.player.XP)
	for _, level := range report.LevelsGained {
		events.add("battle.level_up", level)
	}

	drop := e.loot.Roll(e.rng)
	if !drop.Dropped {
		return
	}
	item := drop.Item
	e.player.AddItem(item)
	report.Drop = &item
	events.add("battle.drop",
		e.localizer.Lookup("item."+item.ID, item.Name),
		e.localizer.Lookup("rarity."+string(item.Rarity), string(item.Rarity)),
	)
}

func (e *Engine) checkDeath(events *eventLog, report *TurnReport) {
	p := e.player
	if p.HP > 0 {
		return
	}
	if p.Potions > 0 {
		p.Potions--
		p.HP = p.MaxHP
		p.Stamina = p.MaxStamina
		report.Revived = true
		events.add("battle.revive", p.Potions)
		return
	}
	p.HP = 0
	e.gameOver = true
	e.state.InBattle = false
	e.state.Phase = PhaseGameOver
	report.GameOver = true
	events.add("battle.game_over")
}
