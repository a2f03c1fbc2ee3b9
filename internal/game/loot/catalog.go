// Package loot holds the item catalog and the tiered drop table rolled on
// victory.
package loot

import (
	"fmt"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

// Catalog is a read-only, ordered set of item definitions.
type Catalog struct {
	items  []domain.Item
	byID   map[string]int
	byTier map[domain.Rarity][]int
}

// NewCatalog validates items and builds a catalog. Item ids must be unique.
func NewCatalog(items []domain.Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.CodeCatalogEmpty, "item catalog is empty")
	}
	c := &Catalog{
		items:  make([]domain.Item, len(items)),
		byID:   make(map[string]int, len(items)),
		byTier: map[domain.Rarity][]int{},
	}
	copy(c.items, items)
	for i, item := range c.items {
		if err := item.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeCatalogInvalid, "invalid catalog item", err)
		}
		if _, exists := c.byID[item.ID]; exists {
			return nil, apperrors.WithMetadata(apperrors.CodeCatalogInvalid, fmt.Sprintf("duplicate item id %q", item.ID), map[string]string{
				"Item": item.ID,
			})
		}
		c.byID[item.ID] = i
		c.byTier[item.Rarity] = append(c.byTier[item.Rarity], i)
	}
	return c, nil
}

// DefaultItems returns the built-in item definitions.
func DefaultItems() []domain.Item {
	return []domain.Item{
		{ID: "bronze_sword", Name: "Bronze Sword", Slot: domain.SlotWeapon, Modifier: 3, Rarity: domain.RarityCommon},
		{ID: "steel_sword", Name: "Steel Sword", Slot: domain.SlotWeapon, Modifier: 6, Rarity: domain.RarityRare},
		{ID: "leather_armor", Name: "Leather Armor", Slot: domain.SlotArmor, Modifier: 2, Rarity: domain.RarityCommon},
		{ID: "steel_armor", Name: "Steel Armor", Slot: domain.SlotArmor, Modifier: 5, Rarity: domain.RarityRare},
		{ID: "lucky_amulet", Name: "Lucky Amulet", Slot: domain.SlotAmulet, Modifier: 1, Rarity: domain.RarityRare},
	}
}

// DefaultCatalog returns a catalog of the built-in items.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns a copy of every item in catalog order.
func (c *Catalog) Items() []domain.Item {
	return append([]domain.Item(nil), c.items...)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item with id.
func (c *Catalog) Item(id string) (domain.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Item{}, false
	}
	return c.items[i], true
}

// Tier returns a copy of every item of rarity, in catalog order.
func (c *Catalog) Tier(rarity domain.Rarity) []domain.Item {
	indexes := c.byTier[rarity]
	out := make([]domain.Item, len(indexes))
	for i, idx := range indexes {
		out[i] = c.items[idx]
	}
	return out
}
