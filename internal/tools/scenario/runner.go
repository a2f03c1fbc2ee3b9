package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/eloibahuet/egypt-adventures/internal/game/loot"
	"github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
)

// DefaultSeed seeds scenarios that do not call seed().
const DefaultSeed int64 = 42

// Config controls scenario execution.
type Config struct {
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
	Locale     string
	Seed       int64
	// Catalog backs give_item lookups and loot drops. Nil uses the default
	// catalog.
	Catalog *loot.Catalog
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Assertions: AssertionStrict,
		Locale:     catalog.BaseLocale,
		Seed:       DefaultSeed,
	}
}

// Runner executes Lua scenarios against an in-process combat engine.
type Runner struct {
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	locale     string
	seed       int64
	table      *loot.Table
}

// NewRunner prepares a scenario runner. Zero values fall back to defaults.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	locale := cfg.Locale
	if locale == "" {
		locale = catalog.BaseLocale
	}
	lootCatalog := cfg.Catalog
	if lootCatalog == nil {
		lootCatalog = loot.DefaultCatalog()
	}

	return &Runner{
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		locale:     locale,
		seed:       cfg.Seed,
		table:      loot.NewTable(lootCatalog),
	}
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return NewRunner(cfg).RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in a fresh session.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := newScenarioState(r.seed, r.locale)
	failedBefore := r.assertions.Failed()

	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		if err := r.runStep(state, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}

	if failed := r.assertions.Failed() - failedBefore; failed > 0 {
		r.logger.Printf("scenario %s: %d assertion(s) failed", scenario.Name, failed)
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

// FailedAssertions counts expectations that failed in log-only mode.
func (r *Runner) FailedAssertions() int {
	return r.assertions.Failed()
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
