// Package combat resolves slot battles: it starts encounters, applies each
// three-symbol spin to the player and enemy, fires the enemy's timed strike,
// grants victory rewards and handles revival and game over.
//
// An Engine is bound to one player and one seeded stream for a whole session.
// Every random draw goes through that stream in a fixed order, so replaying a
// seed with the same calls reproduces the same log and final state.
package combat

import (
	"strconv"
	"time"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/loot"
	"github.com/eloibahuet/egypt-adventures/internal/game/slot"
	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
	"github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
	"github.com/eloibahuet/egypt-adventures/internal/random"
)

// DefaultTurnCap bounds SimulateUntilEnd when callers have no better limit.
const DefaultTurnCap = 200

const (
	namePrefixCount = 5
	nameSuffixCount = 5
)

// Option configures an Engine.
type Option func(*Engine)

// WithLocale renders log events in locale. Unknown locales use en-US.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		e.localizer = catalog.NewLocalizer(locale)
	}
}

// WithLootTable replaces the default drop table.
func WithLootTable(table *loot.Table) Option {
	return func(e *Engine) {
		if table != nil {
			e.loot = table
		}
	}
}

// Engine is the combat state machine for one session. It is not safe for
// concurrent use.
type Engine struct {
	player    *domain.Player
	rng       random.Source
	symbols   *slot.Source
	loot      *loot.Table
	localizer *catalog.Localizer

	enemy    domain.Enemy
	state    BattleState
	gameOver bool
}

// NewEngine binds a player and a seeded stream. The engine mutates player in
// place; callers read it back through Player. A nil rng gets a stream from a
// freshly generated seed, so such a session cannot be replayed.
func NewEngine(player *domain.Player, rng random.Source, opts ...Option) *Engine {
	if player == nil {
		player = domain.NewPlayer()
	}
	if rng == nil {
		rng = random.NewStream(generatedSeed())
	}
	e := &Engine{
		player:  player,
		rng:     rng,
		symbols: slot.NewSource(rng),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loot == nil {
		e.loot = loot.NewTable(loot.DefaultCatalog())
	}
	if e.localizer == nil {
		e.localizer = catalog.NewLocalizer(catalog.BaseLocale)
	}
	return e
}

func generatedSeed() int64 {
	seed, _, err := random.ResolveSeed(nil, random.NewSeed)
	if err != nil {
		return time.Now().UnixNano()
	}
	return seed
}

// Player returns a copy of the player.
func (e *Engine) Player() domain.Player {
	return e.player.Clone()
}

// Enemy returns a copy of the current or last enemy.
func (e *Engine) Enemy() domain.Enemy {
	return e.enemy
}

// State returns a copy of the battle state.
func (e *Engine) State() BattleState {
	return e.state.clone()
}

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Spin draws the next three symbols from the session stream.
func (e *Engine) Spin() []slot.Symbol {
	return e.symbols.Spin()
}

// StartBattle creates a fresh enemy and enters PhaseInProgress.
// Difficulty must be at least 1 and never lower than the previous battle's.
func (e *Engine) StartBattle(archetype Archetype, difficulty int) (BattleHandle, error) {
	switch {
	case e.gameOver:
		return BattleHandle{}, apperrors.New(apperrors.CodeGameOver, "session is over")
	case e.state.InBattle:
		return BattleHandle{}, apperrors.New(apperrors.CodeBattleInProgress, "battle already in progress")
	case !archetype.Valid():
		return BattleHandle{}, apperrors.WithMetadata(apperrors.CodeInvalidArchetype, "unknown archetype", map[string]string{
			"Archetype": string(archetype),
		})
	case difficulty < 1:
		return BattleHandle{}, apperrors.WithMetadata(apperrors.CodeInvalidDifficulty, "difficulty must be at least 1", map[string]string{
			"Requested": strconv.Itoa(difficulty),
		})
	case difficulty < e.state.Difficulty:
		return BattleHandle{}, apperrors.WithMetadata(apperrors.CodeDifficultyRegressed, "difficulty cannot decrease", map[string]string{
			"Current":   strconv.Itoa(e.state.Difficulty),
			"Requested": strconv.Itoa(difficulty),
		})
	}

	e.state = BattleState{
		InBattle:   true,
		Phase:      PhaseInProgress,
		Archetype:  archetype,
		Difficulty: difficulty,
	}
	events := &eventLog{localizer: e.localizer}
	events.add("battle.encounter", e.localizer.Lookup("archetype."+string(archetype), string(archetype)))

	e.enemy = archetype.NewEnemy(e.enemyName(archetype), difficulty)
	events.add("battle.enemy", e.enemy.Name, e.enemy.HP, e.enemy.Strength)

	e.state.Log = append(e.state.Log, events.lines...)
	return BattleHandle{
		Archetype:  archetype,
		Difficulty: difficulty,
		Enemy:      e.enemy,
		LogEvents:  events.lines,
	}, nil
}

// Abort ends the current battle without rewards.
func (e *Engine) Abort() error {
	if !e.state.InBattle {
		return apperrors.New(apperrors.CodeBattleNotActive, "no battle in progress")
	}
	e.state.InBattle = false
	e.state.Phase = PhaseIdle
	e.state.Log = append(e.state.Log, e.localizer.Sprintf("battle.aborted"))
	return nil
}

func (e *Engine) enemyName(archetype Archetype) string {
	prefix := e.rng.Intn(namePrefixCount)
	suffix := e.rng.Intn(nameSuffixCount)
	return e.localizer.Sprintf("enemy.name",
		e.localizer.Lookup("enemy.prefix."+strconv.Itoa(prefix), ""),
		e.localizer.Lookup("enemy.suffix."+strconv.Itoa(suffix), ""),
		e.localizer.Lookup("enemy.title."+string(archetype), string(archetype)),
	)
}

type eventLog struct {
	localizer *catalog.Localizer
	lines     []string
}

func (l *eventLog) add(key string, args ...any) {
	l.lines = append(l.lines, l.localizer.Sprintf(key, args...))
}
