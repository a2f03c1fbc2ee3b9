// Package catalogimporter loads an item catalog JSON file into the SQLite
// catalog store.
package catalogimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eloibahuet/egypt-adventures/internal/game/catalog/sqlite"
	entrypoint "github.com/eloibahuet/egypt-adventures/internal/platform/cmd"
)

// Config holds configuration for the catalog importer.
type Config struct {
	File   string `env:"EGYPT_ADVENTURES_CATALOG_FILE"`
	DBPath string `env:"EGYPT_ADVENTURES_CATALOG_DB_PATH"`
	DryRun bool   `env:"EGYPT_ADVENTURES_CATALOG_DRY_RUN"`
	Merge  bool   `env:"EGYPT_ADVENTURES_CATALOG_MERGE"`
}

// ParseConfig parses environment and CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "catalog.db")
	}

	fs.StringVar(&cfg.File, "file", cfg.File, "item catalog JSON file")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "validate without writing to the database")
	fs.BoolVar(&cfg.Merge, "merge", cfg.Merge, "upsert items into the existing catalog instead of replacing it")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.File) == "" {
		return Config{}, errors.New("file is required")
	}
	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	file := strings.TrimSpace(cfg.File)
	if file == "" {
		return errors.New("file is required")
	}
	payload, err := readJSON[itemPayload](file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if err := validatePayload(payload); err != nil {
		return fmt.Errorf("validate %s: %w", file, err)
	}
	items, err := toItems(payload.Items)
	if err != nil {
		return fmt.Errorf("validate %s: %w", file, err)
	}

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d item(s)\n", len(items))
		return err
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCatalogImporter, func(ctx context.Context) error {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
		store, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog store: %w", err)
		}
		defer store.Close()
		if cfg.Merge {
			for _, item := range items {
				if err := store.PutItem(ctx, item); err != nil {
					return fmt.Errorf("merge %s item %s: %w", file, item.ID, err)
				}
			}
			_, err = fmt.Fprintf(out, "merged %d item(s) into %s\n", len(items), cfg.DBPath)
			return err
		}
		if err := store.ReplaceItems(ctx, items); err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}

		_, err = fmt.Fprintf(out, "imported %d item(s) into %s\n", len(items), cfg.DBPath)
		return err
	})
}
