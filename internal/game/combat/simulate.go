package combat

import (
	"github.com/eloibahuet/egypt-adventures/internal/game/slot"
	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

// SimulateUntilEnd spins and resolves turns until the battle ends, the player
// is out of the session, or maxTurns turns have run. A capped battle stays in
// progress; callers decide whether to continue or Abort.
func (e *Engine) SimulateUntilEnd(maxTurns int) (SimulationResult, error) {
	if maxTurns <= 0 {
		return SimulationResult{}, apperrors.New(apperrors.CodeInvalidTurnCap, "turn cap must be positive")
	}
	if !e.state.InBattle {
		return SimulationResult{}, apperrors.New(apperrors.CodeBattleNotActive, "no battle in progress")
	}

	turns := 0
	for e.state.InBattle && turns < maxTurns {
		spin := e.Spin()
		e.state.Log = append(e.state.Log, e.localizer.Sprintf("battle.spin", slot.Format(spin)))
		if _, err := e.ResolveTurn(spin); err != nil {
			return SimulationResult{}, err
		}
		turns++
	}

	capped := e.state.InBattle
	if capped {
		e.state.Log = append(e.state.Log, e.localizer.Sprintf("battle.turn_cap", maxTurns))
	}
	return SimulationResult{
		Turns:  turns,
		Capped: capped,
		Phase:  e.state.Phase,
		Player: e.player.Clone(),
		Enemy:  e.enemy,
	}, nil
}
