package domain

import (
	"errors"
	"testing"

	apperrors "github.com/eloibahuet/egypt-adventures/internal/platform/errors"
)

var (
	bronzeSword  = Item{ID: "bronze_sword", Name: "Bronze Sword", Slot: SlotWeapon, Modifier: 3, Rarity: RarityCommon}
	leatherArmor = Item{ID: "leather_armor", Name: "Leather Armor", Slot: SlotArmor, Modifier: 2, Rarity: RarityCommon}
)

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer()
	if p.HP != 100 || p.MaxHP != 100 {
		t.Fatalf("hp = %d/%d, want 100/100", p.HP, p.MaxHP)
	}
	if p.Stamina != 50 || p.MaxStamina != 50 {
		t.Fatalf("stamina = %d/%d, want 50/50", p.Stamina, p.MaxStamina)
	}
	if p.Potions != 2 || p.Level != 1 {
		t.Fatalf("potions = %d level = %d, want 2 and 1", p.Potions, p.Level)
	}
}

func TestAbsorbDamage(t *testing.T) {
	tests := []struct {
		name          string
		shield        int
		damage        int
		wantConsumed  int
		wantMitigated int
		wantShield    int
		wantHP        int
	}{
		{"no shield", 0, 12, 0, 12, 0, 88},
		{"shield absorbs all", 20, 12, 12, 0, 8, 100},
		{"overflow", 5, 12, 5, 7, 0, 93},
		{"exact", 12, 12, 12, 0, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer()
			p.Shield = tt.shield
			consumed, mitigated := p.AbsorbDamage(tt.damage)
			if consumed != tt.wantConsumed || mitigated != tt.wantMitigated {
				t.Fatalf("consumed/mitigated = %d/%d, want %d/%d", consumed, mitigated, tt.wantConsumed, tt.wantMitigated)
			}
			if p.Shield != tt.wantShield || p.HP != tt.wantHP {
				t.Fatalf("shield/hp = %d/%d, want %d/%d", p.Shield, p.HP, tt.wantShield, tt.wantHP)
			}
		})
	}
}

func TestHealClampsToMax(t *testing.T) {
	p := NewPlayer()
	p.HP = 90
	if got := p.Heal(30); got != 10 {
		t.Fatalf("healed = %d, want 10", got)
	}
	if p.HP != p.MaxHP {
		t.Fatalf("hp = %d, want %d", p.HP, p.MaxHP)
	}
}

func TestDrainStaminaFloorsAtZero(t *testing.T) {
	p := NewPlayer()
	p.Stamina = 3
	p.DrainStamina(5)
	if p.Stamina != 0 {
		t.Fatalf("stamina = %d, want 0", p.Stamina)
	}
}

func TestRest(t *testing.T) {
	p := NewPlayer()
	p.HP = 50
	p.Stamina = 40
	p.Rest()
	if p.HP != 80 {
		t.Fatalf("hp = %d, want 80", p.HP)
	}
	if p.Stamina != 50 {
		t.Fatalf("stamina = %d, want 50", p.Stamina)
	}
}

func TestAdjustBalances(t *testing.T) {
	p := NewPlayer()
	if err := p.AdjustGold(50); err != nil {
		t.Fatalf("AdjustGold: %v", err)
	}
	if err := p.AdjustGold(-60); !errors.Is(err, apperrors.New(apperrors.CodeNegativeBalance, "")) {
		t.Fatalf("error = %v, want negative balance", err)
	}
	if p.Gold != 50 {
		t.Fatalf("gold = %d, want 50 after rejected spend", p.Gold)
	}
	if err := p.AdjustPotions(-2); err != nil {
		t.Fatalf("AdjustPotions: %v", err)
	}
	if err := p.AdjustPotions(-1); err == nil {
		t.Fatal("expected potions below zero to be rejected")
	}
	if p.Potions != 0 {
		t.Fatalf("potions = %d, want 0", p.Potions)
	}
}

func TestEquip(t *testing.T) {
	p := NewPlayer()
	p.AddItem(bronzeSword)
	p.AddItem(leatherArmor)

	if err := p.Equip(0, SlotWeapon); err != nil {
		t.Fatalf("Equip weapon: %v", err)
	}
	if got := p.WeaponBonus(); got != 3 {
		t.Fatalf("weapon bonus = %d, want 3", got)
	}
	if len(p.Inventory) != 2 {
		t.Fatalf("inventory len = %d, want 2", len(p.Inventory))
	}
}

func TestEquipSlotMismatchLeavesStateUnchanged(t *testing.T) {
	p := NewPlayer()
	p.AddItem(bronzeSword)

	err := p.Equip(0, SlotArmor)
	if !errors.Is(err, apperrors.New(apperrors.CodeEquipmentSlotMismatch, "")) {
		t.Fatalf("error = %v, want slot mismatch", err)
	}
	if _, ok := p.Equipped(SlotArmor); ok {
		t.Fatal("armor slot should stay empty")
	}
	if len(p.Inventory) != 1 {
		t.Fatalf("inventory len = %d, want 1", len(p.Inventory))
	}
}

func TestEquipUnknownIndex(t *testing.T) {
	p := NewPlayer()
	err := p.Equip(3, SlotWeapon)
	if !errors.Is(err, apperrors.New(apperrors.CodeItemNotOwned, "")) {
		t.Fatalf("error = %v, want item not owned", err)
	}
}

func TestUnequip(t *testing.T) {
	p := NewPlayer()
	p.AddItem(bronzeSword)
	if err := p.Equip(0, SlotWeapon); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if !p.Unequip(SlotWeapon) {
		t.Fatal("expected unequip to report true")
	}
	if p.Unequip(SlotWeapon) {
		t.Fatal("expected second unequip to report false")
	}
	if p.WeaponBonus() != 0 {
		t.Fatalf("weapon bonus = %d, want 0", p.WeaponBonus())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPlayer()
	p.AddItem(bronzeSword)
	if err := p.Equip(0, SlotWeapon); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	snapshot := p.Clone()
	p.AddItem(leatherArmor)
	p.Unequip(SlotWeapon)
	if len(snapshot.Inventory) != 1 {
		t.Fatalf("snapshot inventory len = %d, want 1", len(snapshot.Inventory))
	}
	if _, ok := snapshot.Equipment[SlotWeapon]; !ok {
		t.Fatal("snapshot lost equipped weapon")
	}
}
