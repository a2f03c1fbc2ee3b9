// Package sqlite stores the item catalog in SQLite so drop tables can be
// edited without rebuilding.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/eloibahuet/egypt-adventures/internal/game/catalog/sqlite/migrations"
	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/loot"
	sqlitemigrate "github.com/eloibahuet/egypt-adventures/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed item catalog persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a catalog SQLite store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReplaceItems swaps the whole catalog for items in one transaction.
// Items keep the given order.
func (s *Store) ReplaceItems(ctx context.Context, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := loot.NewCatalog(items); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear items: %w", err)
	}
	updatedAt := s.now().UTC().UnixMilli()
	for position, item := range items {
		if err := insertItem(ctx, tx, item, position, updatedAt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace items: %w", err)
	}
	return nil
}

// PutItem inserts or updates one item. New items are appended to the end.
func (s *Store) PutItem(ctx context.Context, item domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := item.Validate(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO items (id, name, slot, modifier, rarity, position, updated_at)
VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM items), ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	slot = excluded.slot,
	modifier = excluded.modifier,
	rarity = excluded.rarity,
	updated_at = excluded.updated_at
`,
		item.ID,
		item.Name,
		string(item.Slot),
		item.Modifier,
		string(item.Rarity),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put item %s: %w", item.ID, err)
	}
	return nil
}

// ListItems returns every item in catalog order.
func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, slot, modifier, rarity
FROM items
ORDER BY position, id
`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		var slot, rarity string
		if err := rows.Scan(&item.ID, &item.Name, &slot, &item.Modifier, &rarity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Slot = domain.Slot(slot)
		item.Rarity = domain.Rarity(rarity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// LoadCatalog builds a read-only loot catalog from the stored items.
func (s *Store) LoadCatalog(ctx context.Context) (*loot.Catalog, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return loot.NewCatalog(items)
}

// LoadCatalogFile opens the store at path, reads its catalog and closes it.
// An empty path returns the default catalog.
func LoadCatalogFile(ctx context.Context, path string) (*loot.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return loot.DefaultCatalog(), nil
	}
	store, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadCatalog(ctx)
}

func insertItem(ctx context.Context, tx *sql.Tx, item domain.Item, position int, updatedAt int64) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO items (id, name, slot, modifier, rarity, position, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		item.ID,
		item.Name,
		string(item.Slot),
		item.Modifier,
		string(item.Rarity),
		position,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.ID, err)
	}
	return nil
}
