// Package scenario parses scenario command flags and runs Lua scenario scripts.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/eloibahuet/egypt-adventures/internal/game/catalog/sqlite"
	entrypoint "github.com/eloibahuet/egypt-adventures/internal/platform/cmd"
	"github.com/eloibahuet/egypt-adventures/internal/platform/i18n/catalog"
	"github.com/eloibahuet/egypt-adventures/internal/random"
	"github.com/eloibahuet/egypt-adventures/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string `env:"EGYPT_ADVENTURES_SCENARIO_FILE"`
	Assertions bool   `env:"EGYPT_ADVENTURES_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool   `env:"EGYPT_ADVENTURES_SCENARIO_VERBOSE"`
	Locale     string `env:"EGYPT_ADVENTURES_LOCALE"           envDefault:"en-US"`
	Seed       *int64 `env:"EGYPT_ADVENTURES_SEED"`
	CatalogDB  string `env:"EGYPT_ADVENTURES_CATALOG_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "battle log locale")
	fs.Func("seed", "seed used when the script does not call seed() (generated when unset)", func(value string) error {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Seed = &seed
		return nil
	})
	fs.StringVar(&cfg.CatalogDB, "catalog-db", cfg.CatalogDB, "optional item catalog SQLite path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newSeed generates the default seed when none is configured.
var newSeed = random.NewSeed

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}
	locale := cfg.Locale
	if locale == "" {
		locale = catalog.BaseLocale
	}
	seed, source, err := random.ResolveSeed(cfg.Seed, newSeed)
	if err != nil {
		return err
	}
	itemCatalog, err := sqlite.LoadCatalogFile(ctx, cfg.CatalogDB)
	if err != nil {
		return err
	}

	logger := log.New(errOut, "", 0)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		err := scenario.RunFile(ctx, scenario.Config{
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Logger:     logger,
			Locale:     locale,
			Seed:       seed,
			Catalog:    itemCatalog,
		}, cfg.Scenario)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "scenario ok: %s (default seed %d, %s)\n", cfg.Scenario, seed, source)
		return nil
	})
}
