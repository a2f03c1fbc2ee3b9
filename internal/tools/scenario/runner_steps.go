package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eloibahuet/egypt-adventures/internal/game/combat"
	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/slot"
	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
	"github.com/eloibahuet/egypt-adventures/internal/random"
)

func (r *Runner) runStep(state *scenarioState, step Step) error {
	switch step.Kind {
	case "seed":
		return r.runSeedStep(state, step)
	case "locale":
		return r.runLocaleStep(state, step)
	case "player":
		return r.runPlayerStep(state, step)
	case "give_item":
		return r.runGiveItemStep(state, step)
	case "equip":
		return r.runEquipStep(state, step)
	case "unequip":
		state.player.Unequip(domain.Slot(requiredString(step.Args, "slot")))
		return nil
	case "adjust":
		return r.runAdjustStep(state, step)
	case "rest":
		state.player.Rest()
		return nil
	case "battle":
		return r.runBattleStep(state, step)
	case "rolls":
		return r.runRollsStep(state, step)
	case "spin":
		return r.runSpinStep(state, step)
	case "simulate":
		return r.runSimulateStep(state, step)
	case "abort":
		return r.runAbortStep(state, step)
	case "expect_player":
		return r.runExpectPlayerStep(state, step)
	case "expect_enemy":
		return r.runExpectEnemyStep(state, step)
	case "expect_state":
		return r.runExpectStateStep(state, step)
	case "expect_log":
		return r.runExpectLogStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// ensureEngine builds the seeded stream and engine on first use.
func (r *Runner) ensureEngine(state *scenarioState) *combat.Engine {
	if state.engine != nil {
		return state.engine
	}
	state.stream = &queuedStream{base: random.NewStream(state.seed)}
	state.engine = combat.NewEngine(state.player, state.stream,
		combat.WithLocale(state.locale),
		combat.WithLootTable(r.table),
	)
	return state.engine
}

func (r *Runner) runSeedStep(state *scenarioState, step Step) error {
	if state.engine != nil {
		return r.failf("seed must come before rolls and battles")
	}
	value, ok := readInt(step.Args, "value")
	if !ok {
		return r.failf("seed value is required")
	}
	state.seed = int64(value)
	return nil
}

func (r *Runner) runLocaleStep(state *scenarioState, step Step) error {
	if state.engine != nil {
		return r.failf("locale must come before rolls and battles")
	}
	value := requiredString(step.Args, "value")
	if value == "" {
		return r.failf("locale value is required")
	}
	state.locale = value
	return nil
}

func (r *Runner) runPlayerStep(state *scenarioState, step Step) error {
	fields := map[string]*int{
		"hp":          &state.player.HP,
		"max_hp":      &state.player.MaxHP,
		"shield":      &state.player.Shield,
		"stamina":     &state.player.Stamina,
		"max_stamina": &state.player.MaxStamina,
		"potions":     &state.player.Potions,
		"gold":        &state.player.Gold,
		"luck_combat": &state.player.LuckCombat,
		"luck_gold":   &state.player.LuckGold,
		"level":       &state.player.Level,
		"xp":          &state.player.XP,
	}
	for key := range step.Args {
		target, ok := fields[key]
		if !ok {
			return r.failf("unknown player field %q", key)
		}
		value, ok := readInt(step.Args, key)
		if !ok {
			return r.failf("player field %q must be a number", key)
		}
		*target = value
	}
	if state.player.HP > state.player.MaxHP || state.player.Stamina > state.player.MaxStamina {
		return r.failf("player hp and stamina must not exceed their maximums")
	}
	return nil
}

func (r *Runner) runGiveItemStep(state *scenarioState, step Step) error {
	id := requiredString(step.Args, "id")
	if id == "" {
		return r.failf("give_item id is required")
	}
	item, known := r.table.Catalog().Item(id)
	if _, hasName := step.Args["name"]; hasName || !known {
		item = domain.Item{
			ID:       id,
			Name:     optionalString(step.Args, "name", id),
			Slot:     domain.Slot(optionalString(step.Args, "slot", "")),
			Modifier: optionalInt(step.Args, "modifier", 0),
			Rarity:   domain.Rarity(optionalString(step.Args, "rarity", string(domain.RarityCommon))),
		}
	}
	if err := item.Validate(); err != nil {
		return r.failf("give_item: %v", err)
	}
	state.player.AddItem(item)
	return nil
}

// runEquipStep uses 1-based inventory indexes, like Lua sequences.
func (r *Runner) runEquipStep(state *scenarioState, step Step) error {
	index, ok := readInt(step.Args, "index")
	if !ok {
		return r.failf("equip index is required")
	}
	slotName := requiredString(step.Args, "slot")
	if slotName == "" {
		return r.failf("equip slot is required")
	}
	err := state.player.Equip(index-1, domain.Slot(slotName))
	return r.checkExpectedError(step, err)
}

// runAdjustStep applies shop-style gold and potion deltas.
func (r *Runner) runAdjustStep(state *scenarioState, step Step) error {
	if delta, ok := readInt(step.Args, "gold"); ok {
		if err := state.player.AdjustGold(delta); err != nil {
			return r.checkExpectedError(step, err)
		}
	}
	if delta, ok := readInt(step.Args, "potions"); ok {
		if err := state.player.AdjustPotions(delta); err != nil {
			return r.checkExpectedError(step, err)
		}
	}
	return r.checkExpectedError(step, nil)
}

func (r *Runner) runBattleStep(state *scenarioState, step Step) error {
	engine := r.ensureEngine(state)
	archetype, err := combat.ParseArchetype(optionalString(step.Args, "archetype", string(combat.ArchetypeNormal)))
	if err != nil {
		archetype = combat.Archetype(requiredString(step.Args, "archetype"))
	}
	handle, err := engine.StartBattle(archetype, optionalInt(step.Args, "difficulty", 1))
	if err != nil || requiredString(step.Args, "expect_error") != "" {
		return r.checkExpectedError(step, err)
	}
	for _, line := range handle.LogEvents {
		r.logf("  %s", line)
	}
	if name := requiredString(step.Args, "expect_name"); name != "" && handle.Enemy.Name != name {
		return r.assertf("enemy name = %q, want %q", handle.Enemy.Name, name)
	}
	return nil
}

func (r *Runner) runRollsStep(state *scenarioState, step Step) error {
	r.ensureEngine(state)
	floats, err := readFloatList(step.Args, "floats")
	if err != nil {
		return r.failf("rolls: %v", err)
	}
	ints, err := readIntList(step.Args, "ints")
	if err != nil {
		return r.failf("rolls: %v", err)
	}
	state.stream.floats = append(state.stream.floats, floats...)
	state.stream.ints = append(state.stream.ints, ints...)
	return nil
}

func (r *Runner) runSpinStep(state *scenarioState, step Step) error {
	engine := r.ensureEngine(state)
	symbols, err := r.readSpin(engine, step.Args["symbols"])
	if err != nil {
		return err
	}
	r.logf("  spin: %s", slot.Format(symbols))

	outcome, err := engine.ResolveTurn(symbols)
	if err != nil || requiredString(step.Args, "expect_error") != "" {
		return r.checkExpectedError(step, err)
	}
	for _, line := range outcome.LogEvents {
		r.logf("  %s", line)
	}

	expect, ok := step.Args["expect"].(map[string]any)
	if !ok {
		return nil
	}
	return r.expectTurn(outcome, expect)
}

// readSpin parses a scripted triple. The string "random" draws from the
// session stream. Unknown names become invalid symbols so scripts can
// exercise turn validation.
func (r *Runner) readSpin(engine *combat.Engine, value any) ([]slot.Symbol, error) {
	switch typed := value.(type) {
	case string:
		if typed == "random" {
			return engine.Spin(), nil
		}
		return nil, r.failf("spin symbols must be a list or \"random\"")
	case []any:
		symbols := make([]slot.Symbol, 0, len(typed))
		for _, raw := range typed {
			name, _ := raw.(string)
			symbol, err := slot.ParseSymbol(name)
			if err != nil {
				symbol = slot.Symbol(-1)
			}
			symbols = append(symbols, symbol)
		}
		return symbols, nil
	case map[string]any:
		if len(typed) == 0 {
			return []slot.Symbol{}, nil
		}
	}
	return nil, r.failf("spin symbols must be a list")
}

func (r *Runner) expectTurn(outcome combat.TurnOutcome, expect map[string]any) error {
	report := outcome.Report
	var checks []error
	checks = append(checks,
		r.expectInt(expect, "damage", report.DamageDealt),
		r.expectInt(expect, "match_count", report.MatchCount),
		r.expectInt(expect, "streak", report.Streak),
		r.expectInt(expect, "strike_damage", report.StrikeDamage),
		r.expectInt(expect, "gold_gained", report.GoldGained),
		r.expectInt(expect, "xp_gained", report.XPGained),
		r.expectInt(expect, "levels_gained", len(report.LevelsGained)),
		r.expectBool(expect, "crit", report.Crit),
		r.expectBool(expect, "hazard_dodged", report.HazardDodged),
		r.expectBool(expect, "strike", report.StrikeFired),
		r.expectBool(expect, "strike_dodged", report.StrikeDodged),
		r.expectBool(expect, "victory", report.Victory),
		r.expectBool(expect, "revived", report.Revived),
		r.expectBool(expect, "game_over", report.GameOver),
		r.expectBool(expect, "battle_active", outcome.BattleActive),
		r.expectBool(expect, "player_alive", outcome.PlayerAlive),
		r.expectString(expect, "primary", report.Primary.String()),
		r.expectLines(expect, "log_contains", outcome.LogEvents),
	)
	if want, ok := expect["drop"]; ok {
		got := ""
		if report.Drop != nil {
			got = report.Drop.ID
		}
		// drop = false expects no drop.
		if wantID, _ := want.(string); wantID != got {
			checks = append(checks, r.assertf("drop = %q, want %v", got, want))
		}
	}
	return errors.Join(checks...)
}

func (r *Runner) runSimulateStep(state *scenarioState, step Step) error {
	engine := r.ensureEngine(state)
	maxTurns := optionalInt(step.Args, "max_turns", combat.DefaultTurnCap)
	result, err := engine.SimulateUntilEnd(maxTurns)
	if err != nil || requiredString(step.Args, "expect_error") != "" {
		return r.checkExpectedError(step, err)
	}
	state.lastResult = &result
	r.logf("  simulated %d turn(s), phase %s, capped %t", result.Turns, result.Phase, result.Capped)

	expect, ok := step.Args["expect"].(map[string]any)
	if !ok {
		return nil
	}
	return errors.Join(
		r.expectInt(expect, "turns", result.Turns),
		r.expectBool(expect, "capped", result.Capped),
		r.expectString(expect, "phase", result.Phase.String()),
	)
}

func (r *Runner) runAbortStep(state *scenarioState, step Step) error {
	err := r.ensureEngine(state).Abort()
	return r.checkExpectedError(step, err)
}

func (r *Runner) runExpectPlayerStep(state *scenarioState, step Step) error {
	player := state.player.Clone()
	expect := step.Args
	checks := []error{
		r.expectInt(expect, "hp", player.HP),
		r.expectInt(expect, "max_hp", player.MaxHP),
		r.expectInt(expect, "shield", player.Shield),
		r.expectInt(expect, "stamina", player.Stamina),
		r.expectInt(expect, "max_stamina", player.MaxStamina),
		r.expectInt(expect, "potions", player.Potions),
		r.expectInt(expect, "gold", player.Gold),
		r.expectInt(expect, "luck_combat", player.LuckCombat),
		r.expectInt(expect, "luck_gold", player.LuckGold),
		r.expectInt(expect, "level", player.Level),
		r.expectInt(expect, "xp", player.XP),
		r.expectInt(expect, "inventory", len(player.Inventory)),
		r.expectBool(expect, "alive", player.Alive()),
	}
	for _, slotName := range []domain.Slot{domain.SlotWeapon, domain.SlotArmor, domain.SlotAmulet} {
		item, _ := player.Equipped(slotName)
		checks = append(checks, r.expectString(expect, string(slotName), item.ID))
	}
	return errors.Join(checks...)
}

func (r *Runner) runExpectEnemyStep(state *scenarioState, step Step) error {
	if state.engine == nil {
		return r.failf("expect_enemy needs a battle")
	}
	enemy := state.engine.Enemy()
	expect := step.Args
	checks := []error{
		r.expectString(expect, "name", enemy.Name),
		r.expectString(expect, "archetype", enemy.Archetype),
		r.expectInt(expect, "hp", enemy.HP),
		r.expectInt(expect, "max_hp", enemy.MaxHP),
		r.expectInt(expect, "base_attack", enemy.BaseAttack),
		r.expectInt(expect, "turns_to_attack", enemy.TurnsToAttack),
	}
	if want, ok := readFloat(expect, "strength"); ok && want != enemy.Strength {
		checks = append(checks, r.assertf("enemy strength = %v, want %v", enemy.Strength, want))
	}
	return errors.Join(checks...)
}

func (r *Runner) runExpectStateStep(state *scenarioState, step Step) error {
	engine := r.ensureEngine(state)
	battle := engine.State()
	floats, ints := state.stream.pending()
	expect := step.Args
	streakSymbol := ""
	if battle.ConsecCount > 0 {
		streakSymbol = battle.ConsecSymbol.String()
	}
	return errors.Join(
		r.expectString(expect, "phase", battle.Phase.String()),
		r.expectBool(expect, "in_battle", battle.InBattle),
		r.expectBool(expect, "game_over", engine.GameOver()),
		r.expectInt(expect, "streak", battle.ConsecCount),
		r.expectString(expect, "streak_symbol", streakSymbol),
		r.expectInt(expect, "difficulty", battle.Difficulty),
		r.expectInt(expect, "turns", battle.Turns),
		r.expectString(expect, "archetype", string(battle.Archetype)),
		r.expectInt(expect, "rolls_pending", floats+ints),
	)
}

func (r *Runner) runExpectLogStep(state *scenarioState, step Step) error {
	lines := r.ensureEngine(state).State().Log
	expect := step.Args
	checks := []error{
		r.expectInt(expect, "count", len(lines)),
		r.expectLines(expect, "contains", lines),
	}
	if want := requiredString(expect, "last"); want != "" {
		last := ""
		if len(lines) > 0 {
			last = lines[len(lines)-1]
		}
		if last != want {
			checks = append(checks, r.assertf("last log line = %q, want %q", last, want))
		}
	}
	return errors.Join(checks...)
}

// checkExpectedError matches err against an optional expect_error code.
func (r *Runner) checkExpectedError(step Step, err error) error {
	want := requiredString(step.Args, "expect_error")
	if want == "" {
		if err != nil {
			return fmt.Errorf("%s: %w", step.Kind, err)
		}
		return nil
	}
	if err == nil {
		return r.assertf("%s succeeded, want error %s", step.Kind, want)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return r.assertf("%s error = %v, want code %s", step.Kind, err, want)
	}
	if !strings.EqualFold(string(appErr.Code), want) {
		return r.assertf("%s error code = %s, want %s", step.Kind, appErr.Code, want)
	}
	return nil
}

func (r *Runner) expectInt(expect map[string]any, key string, got int) error {
	want, ok := readInt(expect, key)
	if !ok || want == got {
		return nil
	}
	return r.assertf("%s = %d, want %d", key, got, want)
}

func (r *Runner) expectBool(expect map[string]any, key string, got bool) error {
	want, ok := readBool(expect, key)
	if !ok || want == got {
		return nil
	}
	return r.assertf("%s = %t, want %t", key, got, want)
}

func (r *Runner) expectString(expect map[string]any, key, got string) error {
	if _, ok := expect[key]; !ok {
		return nil
	}
	want := optionalString(expect, key, "")
	if want == got {
		return nil
	}
	return r.assertf("%s = %q, want %q", key, got, want)
}

func (r *Runner) expectLines(expect map[string]any, key string, lines []string) error {
	want := requiredString(expect, key)
	if want == "" {
		return nil
	}
	for _, line := range lines {
		if strings.Contains(line, want) {
			return nil
		}
	}
	return r.assertf("no log line contains %q", want)
}
