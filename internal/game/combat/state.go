package combat

import (
	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/slot"
)

// Phase is the battle lifecycle position.
type Phase int

const (
	// PhaseIdle means no battle has started, or the last one was aborted.
	PhaseIdle Phase = iota
	// PhaseInProgress accepts turns.
	PhaseInProgress
	// PhaseVictory means the enemy fell; rewards were granted.
	PhaseVictory
	// PhaseGameOver is terminal for the session.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseVictory:
		return "victory"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// BattleState is the per-battle bookkeeping. ConsecSymbol is meaningful only
// when ConsecCount is positive.
type BattleState struct {
	InBattle     bool
	Phase        Phase
	Archetype    Archetype
	ConsecSymbol slot.Symbol
	ConsecCount  int
	Difficulty   int
	Turns        int
	Log          []string
}

func (s BattleState) clone() BattleState {
	s.Log = append([]string(nil), s.Log...)
	return s
}

// BattleHandle describes a battle that was just started.
type BattleHandle struct {
	Archetype  Archetype
	Difficulty int
	Enemy      domain.Enemy
	LogEvents  []string
}

// TurnReport is the numeric summary of one resolved turn.
type TurnReport struct {
	Primary      slot.Symbol
	MatchCount   int
	DamageDealt  int
	Crit         bool
	HazardDodged bool
	Streak       int
	StrikeFired  bool
	StrikeDodged bool
	StrikeDamage int
	Victory      bool
	GoldGained   int
	XPGained     int
	LevelsGained []int
	Drop         *domain.Item
	Revived      bool
	GameOver     bool
}

// TurnOutcome is returned by ResolveTurn.
type TurnOutcome struct {
	LogEvents    []string
	BattleActive bool
	PlayerAlive  bool
	Report       TurnReport
}

// SimulationResult summarizes a SimulateUntilEnd run.
type SimulationResult struct {
	Turns  int
	Capped bool
	Phase  Phase
	Player domain.Player
	Enemy  domain.Enemy
}
