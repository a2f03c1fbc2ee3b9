package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/loot"
	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

func TestReplaceAndListItems(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if err := store.ReplaceItems(ctx, loot.DefaultItems()); err != nil {
		t.Fatalf("replace items: %v", err)
	}
	items, err := store.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	want := loot.DefaultItems()
	if len(items) != len(want) {
		t.Fatalf("items len = %d, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("items[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}

	smaller := want[:2]
	if err := store.ReplaceItems(ctx, smaller); err != nil {
		t.Fatalf("replace items again: %v", err)
	}
	items, err = store.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items len = %d, want 2", len(items))
	}
}

func TestReplaceItemsRejectsInvalidCatalog(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	if err := store.ReplaceItems(ctx, loot.DefaultItems()); err != nil {
		t.Fatalf("replace items: %v", err)
	}

	dup := []domain.Item{
		{ID: "a", Name: "A", Slot: domain.SlotWeapon, Rarity: domain.RarityCommon},
		{ID: "a", Name: "A2", Slot: domain.SlotWeapon, Rarity: domain.RarityCommon},
	}
	err := store.ReplaceItems(ctx, dup)
	if !errors.Is(err, apperrors.New(apperrors.CodeCatalogInvalid, "")) {
		t.Fatalf("error = %v, want catalog invalid", err)
	}
	items, err := store.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("items len = %d, want 5", len(items))
	}
}

func TestPutItemUpsertsAndAppends(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	sword := domain.Item{ID: "khopesh", Name: "Khopesh", Slot: domain.SlotWeapon, Modifier: 4, Rarity: domain.RarityCommon}
	charm := domain.Item{ID: "scarab", Name: "Scarab Charm", Slot: domain.SlotAmulet, Modifier: 2, Rarity: domain.RarityRare}
	for _, item := range []domain.Item{sword, charm} {
		if err := store.PutItem(ctx, item); err != nil {
			t.Fatalf("put %s: %v", item.ID, err)
		}
	}
	sword.Modifier = 5
	if err := store.PutItem(ctx, sword); err != nil {
		t.Fatalf("update sword: %v", err)
	}

	items, err := store.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 || items[0] != sword || items[1] != charm {
		t.Fatalf("items = %+v, want updated sword then charm", items)
	}
	if err := store.PutItem(ctx, domain.Item{ID: "bad"}); err == nil {
		t.Fatal("expected invalid item to be rejected")
	}
}

func TestLoadCatalog(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if _, err := store.LoadCatalog(ctx); !errors.Is(err, apperrors.New(apperrors.CodeCatalogEmpty, "")) {
		t.Fatalf("error = %v, want catalog empty", err)
	}
	if err := store.ReplaceItems(ctx, loot.DefaultItems()); err != nil {
		t.Fatalf("replace items: %v", err)
	}
	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if item, ok := catalog.Item("steel_armor"); !ok || item.Modifier != 5 {
		t.Fatalf("steel armor = %+v, %t", item, ok)
	}
}

func TestStoreReopensWithoutReapplyingMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()
	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.ReplaceItems(ctx, loot.DefaultItems()); err != nil {
		t.Fatalf("replace items: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()
	items, err := second.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("items len = %d, want 5", len(items))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	ctx := context.Background()

	defaults, err := LoadCatalogFile(ctx, "")
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	if defaults.Len() != len(loot.DefaultItems()) {
		t.Fatalf("default len = %d, want %d", defaults.Len(), len(loot.DefaultItems()))
	}

	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.ReplaceItems(ctx, loot.DefaultItems()[:3]); err != nil {
		t.Fatalf("replace items: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	loaded, err := LoadCatalogFile(ctx, path)
	if err != nil {
		t.Fatalf("load catalog file: %v", err)
	}
	if loaded.Len() != 3 {
		t.Fatalf("loaded len = %d, want 3", loaded.Len())
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
