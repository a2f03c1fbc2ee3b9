package scenario

import (
	"github.com/eloibahuet/egypt-adventures/internal/game/combat"
	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
)

// scenarioState is the session a scenario drives. The engine and stream
// are built on first use so seed and locale steps can run before them.
type scenarioState struct {
	seed       int64
	locale     string
	player     *domain.Player
	stream     *queuedStream
	engine     *combat.Engine
	lastResult *combat.SimulationResult
}

func newScenarioState(seed int64, locale string) *scenarioState {
	return &scenarioState{
		seed:   seed,
		locale: locale,
		player: domain.NewPlayer(),
	}
}
