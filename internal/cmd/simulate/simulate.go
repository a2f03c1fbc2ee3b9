// Package simulate parses simulator flags and runs seeded headless battles.
package simulate

import (
	"context"
	"errors"
	"flag"
	"io"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/eloibahuet/egypt-adventures/internal/game/catalog/sqlite"
	"github.com/eloibahuet/egypt-adventures/internal/game/combat"
	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/loot"
	entrypoint "github.com/eloibahuet/egypt-adventures/internal/platform/cmd"
	"github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
	"github.com/eloibahuet/egypt-adventures/internal/platform/otel"
	"github.com/eloibahuet/egypt-adventures/internal/random"
)

// Config holds simulator command configuration.
type Config struct {
	Battles    int    `env:"EGYPT_ADVENTURES_SIMULATE_BATTLES"    envDefault:"3"`
	Seed       *int64 `env:"EGYPT_ADVENTURES_SEED"`
	Difficulty int    `env:"EGYPT_ADVENTURES_SIMULATE_DIFFICULTY" envDefault:"1"`
	TurnCap    int    `env:"EGYPT_ADVENTURES_SIMULATE_TURN_CAP"   envDefault:"200"`
	LogTail    int    `env:"EGYPT_ADVENTURES_SIMULATE_LOG_TAIL"   envDefault:"10"`
	Campaign   bool   `env:"EGYPT_ADVENTURES_SIMULATE_CAMPAIGN"`
	Verbose    bool   `env:"EGYPT_ADVENTURES_SIMULATE_VERBOSE"`
	Locale     string `env:"EGYPT_ADVENTURES_LOCALE"              envDefault:"en-US"`
	CatalogDB  string `env:"EGYPT_ADVENTURES_CATALOG_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.Battles, "battles", cfg.Battles, "number of battles to simulate")
	fs.Func("seed", "base seed; sample i uses seed+i (generated when unset)", func(value string) error {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Seed = &seed
		return nil
	})
	fs.IntVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "starting difficulty")
	fs.IntVar(&cfg.TurnCap, "turn-cap", cfg.TurnCap, "maximum turns per battle")
	fs.IntVar(&cfg.LogTail, "log-tail", cfg.LogTail, "log lines printed after each battle")
	fs.BoolVar(&cfg.Campaign, "campaign", cfg.Campaign, "chain battles in one session instead of independent samples")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print the full battle log")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "battle log locale")
	fs.StringVar(&cfg.CatalogDB, "catalog-db", cfg.CatalogDB, "optional item catalog SQLite path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Battles < 1:
		return errors.New("battles must be at least 1")
	case c.Difficulty < 1:
		return errors.New("difficulty must be at least 1")
	case c.TurnCap < 1:
		return errors.New("turn cap must be at least 1")
	case c.LogTail < 0:
		return errors.New("log tail must not be negative")
	}
	return nil
}

// newSeed generates the base seed when none is configured.
var newSeed = random.NewSeed

// Run executes the simulator and writes its report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSimulate, func(ctx context.Context) error {
		lootCatalog, err := sqlite.LoadCatalogFile(ctx, cfg.CatalogDB)
		if err != nil {
			return err
		}
		seed, source, err := random.ResolveSeed(cfg.Seed, newSeed)
		if err != nil {
			return err
		}
		sim := &simulator{
			cfg:        cfg,
			out:        out,
			localizer:  catalog.NewLocalizer(cfg.Locale),
			table:      loot.NewTable(lootCatalog),
			tracer:     otel.Tracer(),
			seed:       seed,
			seedSource: source,
		}
		sim.printf("simulate.seed", seed, string(source))
		if cfg.Campaign {
			return sim.runCampaign(ctx)
		}
		return sim.runSamples(ctx)
	})
}

type simulator struct {
	cfg        Config
	out        io.Writer
	localizer  *catalog.Localizer
	table      *loot.Table
	tracer     trace.Tracer
	seed       int64
	seedSource random.SeedSource
}

func (s *simulator) newEngine(seed int64) *combat.Engine {
	return combat.NewEngine(domain.NewPlayer(), random.NewStream(seed),
		combat.WithLocale(s.localizer.Locale()),
		combat.WithLootTable(s.table),
	)
}

// runSamples runs independent battles cycling through the archetypes.
// Sample i gets a fresh player and the base seed plus i.
func (s *simulator) runSamples(ctx context.Context) error {
	for i := 0; i < s.cfg.Battles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		seed := s.seed + int64(i)
		archetype := combat.Archetypes[i%len(combat.Archetypes)]
		engine := s.newEngine(seed)
		if _, err := s.battle(ctx, engine, archetype, s.cfg.Difficulty, seed); err != nil {
			return err
		}
	}
	return nil
}

// runCampaign chains battles in one session. Difficulty rises after each
// full archetype cycle; the run stops at game over.
func (s *simulator) runCampaign(ctx context.Context) error {
	engine := s.newEngine(s.seed)
	fought := 0
	for i := 0; i < s.cfg.Battles && !engine.GameOver(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		archetype := combat.Archetypes[i%len(combat.Archetypes)]
		difficulty := s.cfg.Difficulty + i/len(combat.Archetypes)
		result, err := s.battle(ctx, engine, archetype, difficulty, s.seed)
		if err != nil {
			return err
		}
		fought++
		if result.Capped {
			if err := engine.Abort(); err != nil {
				return err
			}
		}
	}
	s.printf("simulate.campaign.end", fought)
	return nil
}

func (s *simulator) battle(ctx context.Context, engine *combat.Engine, archetype combat.Archetype, difficulty int, seed int64) (combat.SimulationResult, error) {
	_, span := s.tracer.Start(ctx, "simulate.battle", trace.WithAttributes(
		attribute.String("battle.archetype", string(archetype)),
		attribute.Int("battle.difficulty", difficulty),
		attribute.Int64("battle.seed", seed),
		attribute.String("battle.seed_source", string(s.seedSource)),
	))
	defer span.End()

	s.printf("simulate.encounter", s.localizer.Lookup("archetype."+string(archetype), string(archetype)), seed, difficulty)
	if _, err := engine.StartBattle(archetype, difficulty); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "start battle")
		return combat.SimulationResult{}, err
	}
	result, err := engine.SimulateUntilEnd(s.cfg.TurnCap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "simulate battle")
		return combat.SimulationResult{}, err
	}
	span.SetAttributes(
		attribute.Int("battle.turns", result.Turns),
		attribute.String("battle.phase", result.Phase.String()),
		attribute.Bool("battle.capped", result.Capped),
		attribute.Int("player.hp", result.Player.HP),
		attribute.Int("player.level", result.Player.Level),
	)

	s.report(result, engine.State().Log)
	return result, nil
}

func (s *simulator) report(result combat.SimulationResult, lines []string) {
	if s.cfg.Verbose {
		for _, line := range lines {
			s.println(line)
		}
	}
	s.printf("simulate.summary", result.Turns, result.Phase.String(), result.Capped)

	p := result.Player
	s.printf("simulate.player")
	s.printf("simulate.player.stats", p.HP, p.MaxHP, p.Shield, p.Stamina, p.MaxStamina, p.Potions,
		p.Gold, p.Level, p.XP, p.LuckCombat, p.LuckGold, len(p.Inventory))

	e := result.Enemy
	s.printf("simulate.enemy")
	s.printf("simulate.enemy.stats", e.Name, e.HP, e.MaxHP, e.BaseAttack, e.Strength, e.TurnsToAttack)

	tail := lines
	if len(tail) > s.cfg.LogTail {
		tail = tail[len(tail)-s.cfg.LogTail:]
	}
	s.printf("simulate.log_tail", len(tail))
	for _, line := range tail {
		s.println(line)
	}
}

func (s *simulator) printf(key string, args ...any) {
	s.println(s.localizer.Sprintf(key, args...))
}

func (s *simulator) println(line string) {
	_, _ = io.WriteString(s.out, line+"\n")
}
