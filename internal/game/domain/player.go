package domain

import (
	"strconv"

	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

const (
	HPDefault       = 100
	StaminaDefault  = 50
	PotionsDefault  = 2
	LevelDefault    = 1
	MaxLevel        = 99
	RestHPGain      = 30
	RestStaminaGain = 20
	resourceGold    = "gold"
	resourcePotions = "potions"
)

// Player is the adventurer. It is created once per session.
type Player struct {
	HP         int
	MaxHP      int
	Shield     int
	Stamina    int
	MaxStamina int
	Potions    int
	Gold       int
	LuckCombat int
	LuckGold   int
	Level      int
	XP         int
	Inventory  []Item
	Equipment  map[Slot]Item
}

// NewPlayer returns a level 1 player with the starting kit.
func NewPlayer() *Player {
	return &Player{
		HP:         HPDefault,
		MaxHP:      HPDefault,
		Stamina:    StaminaDefault,
		MaxStamina: StaminaDefault,
		Potions:    PotionsDefault,
		Level:      LevelDefault,
		Equipment:  map[Slot]Item{},
	}
}

// Clone returns a deep copy suitable for read-only snapshots.
func (p *Player) Clone() Player {
	out := *p
	out.Inventory = append([]Item(nil), p.Inventory...)
	out.Equipment = make(map[Slot]Item, len(p.Equipment))
	for slot, item := range p.Equipment {
		out.Equipment[slot] = item
	}
	return out
}

// Alive reports whether the player has hp left.
func (p *Player) Alive() bool {
	return p.HP > 0
}

// Heal adds hp up to MaxHP and returns the amount actually restored.
func (p *Player) Heal(amount int) int {
	before := p.HP
	p.HP = min(p.MaxHP, p.HP+amount)
	return p.HP - before
}

// DrainStamina removes stamina, flooring at zero.
func (p *Player) DrainStamina(amount int) {
	p.Stamina = max(0, p.Stamina-amount)
}

// AbsorbDamage applies damage to shield first, then overflow to hp.
// hp may go negative here; callers clamp it during the death check.
func (p *Player) AbsorbDamage(damage int) (consumed, mitigated int) {
	consumed = min(p.Shield, damage)
	mitigated = max(0, damage-p.Shield)
	p.Shield -= consumed
	p.HP -= mitigated
	return consumed, mitigated
}

// Rest restores hp and stamina by the station rest amounts.
func (p *Player) Rest() {
	p.HP = min(p.MaxHP, p.HP+RestHPGain)
	p.Stamina = min(p.MaxStamina, p.Stamina+RestStaminaGain)
}

// AdjustGold adds delta gold. A result below zero is rejected.
func (p *Player) AdjustGold(delta int) error {
	if p.Gold+delta < 0 {
		return negativeBalance(resourceGold, p.Gold, delta)
	}
	p.Gold += delta
	return nil
}

// AdjustPotions adds delta potions. A result below zero is rejected.
func (p *Player) AdjustPotions(delta int) error {
	if p.Potions+delta < 0 {
		return negativeBalance(resourcePotions, p.Potions, delta)
	}
	p.Potions += delta
	return nil
}

// AddItem appends a copy of item to the inventory.
func (p *Player) AddItem(item Item) {
	p.Inventory = append(p.Inventory, item)
}

// Equip places the inventory item at index into slot.
// The item stays in the inventory; equipment holds a copy.
func (p *Player) Equip(index int, slot Slot) error {
	if index < 0 || index >= len(p.Inventory) {
		return apperrors.WithMetadata(apperrors.CodeItemNotOwned, "inventory index out of range", map[string]string{
			"Index": strconv.Itoa(index),
		})
	}
	item := p.Inventory[index]
	if item.Slot != slot {
		return apperrors.WithMetadata(apperrors.CodeEquipmentSlotMismatch, "item slot does not match", map[string]string{
			"Item": item.Name,
			"Slot": string(slot),
		})
	}
	if p.Equipment == nil {
		p.Equipment = map[Slot]Item{}
	}
	p.Equipment[slot] = item
	return nil
}

// Unequip empties slot and reports whether anything was equipped.
func (p *Player) Unequip(slot Slot) bool {
	if _, ok := p.Equipment[slot]; !ok {
		return false
	}
	delete(p.Equipment, slot)
	return true
}

// Equipped returns the item in slot, if any.
func (p *Player) Equipped(slot Slot) (Item, bool) {
	item, ok := p.Equipment[slot]
	return item, ok
}

// WeaponBonus returns the equipped weapon's attack modifier.
func (p *Player) WeaponBonus() int {
	if weapon, ok := p.Equipment[SlotWeapon]; ok {
		return weapon.Modifier
	}
	return 0
}

func negativeBalance(resource string, current, delta int) error {
	return apperrors.WithMetadata(apperrors.CodeNegativeBalance, resource+" cannot go below zero", map[string]string{
		"Resource": resource,
		"Current":  strconv.Itoa(current),
		"Delta":    strconv.Itoa(delta),
	})
}
