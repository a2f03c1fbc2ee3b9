package loot

import (
	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/random"
)

// Band is one threshold of the drop table. A roll below Below selects Tier.
type Band struct {
	Below float64
	Tier  domain.Rarity
}

// DefaultBands are checked in order against a roll in [0, 100).
// The two rare bands are separate checks over the same pool.
var DefaultBands = []Band{
	{Below: 5, Tier: domain.RarityRare},
	{Below: 20, Tier: domain.RarityRare},
	{Below: 50, Tier: domain.RarityCommon},
}

// Drop is the result of a roll.
type Drop struct {
	Roll    float64
	Item    domain.Item
	Dropped bool
}

// Table rolls drops from a catalog.
type Table struct {
	catalog *Catalog
	bands   []Band
}

// NewTable returns a drop table over catalog using DefaultBands.
func NewTable(catalog *Catalog) *Table {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Table{catalog: catalog, bands: DefaultBands}
}

// Catalog returns the table's catalog.
func (t *Table) Catalog() *Catalog {
	return t.catalog
}

// Roll draws a value in [0, 100) and, when it lands in a band, picks one item
// of that band's tier uniformly. The returned item is a copy.
// A band whose tier has no items yields no drop and consumes no further draw.
func (t *Table) Roll(rng random.Source) Drop {
	roll := rng.Float64() * 100
	for _, band := range t.bands {
		if roll >= band.Below {
			continue
		}
		pool := t.catalog.byTier[band.Tier]
		if len(pool) == 0 {
			return Drop{Roll: roll}
		}
		item := t.catalog.items[pool[rng.Intn(len(pool))]]
		return Drop{Roll: roll, Item: item, Dropped: true}
	}
	return Drop{Roll: roll}
}
