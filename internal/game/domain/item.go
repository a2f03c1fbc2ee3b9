package domain

import (
	"fmt"
	"strings"
)

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
	SlotAmulet Slot = "amulet"
)

// Slots lists every equipment slot in display order.
var Slots = []Slot{SlotWeapon, SlotArmor, SlotAmulet}

// Rarity is an item's loot tier.
type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
)

// ParseSlot validates and normalizes a slot name.
func ParseSlot(value string) (Slot, error) {
	switch slot := Slot(strings.ToLower(strings.TrimSpace(value))); slot {
	case SlotWeapon, SlotArmor, SlotAmulet:
		return slot, nil
	default:
		return "", fmt.Errorf("slot %q is not supported", value)
	}
}

// ParseRarity validates and normalizes a rarity name.
func ParseRarity(value string) (Rarity, error) {
	switch rarity := Rarity(strings.ToLower(strings.TrimSpace(value))); rarity {
	case RarityCommon, RarityRare:
		return rarity, nil
	default:
		return "", fmt.Errorf("rarity %q is not supported", value)
	}
}

// Item is an immutable equipment record. Modifier is the attack bonus for
// weapons, the defense bonus for armor and the gold-luck bonus for amulets.
//
// Item holds no references, so assigning it copies it.
type Item struct {
	ID       string
	Name     string
	Slot     Slot
	Modifier int
	Rarity   Rarity
}

// Validate reports whether the item is well formed.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("item id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("item %s: name is required", i.ID)
	}
	if _, err := ParseSlot(string(i.Slot)); err != nil {
		return fmt.Errorf("item %s: %w", i.ID, err)
	}
	if _, err := ParseRarity(string(i.Rarity)); err != nil {
		return fmt.Errorf("item %s: %w", i.ID, err)
	}
	if i.Modifier < 0 {
		return fmt.Errorf("item %s: modifier must be non-negative", i.ID)
	}
	return nil
}
