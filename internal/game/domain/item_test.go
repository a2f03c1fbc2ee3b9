package domain

import "testing"

func TestParseSlot(t *testing.T) {
	tests := []struct {
		input   string
		want    Slot
		wantErr bool
	}{
		{"weapon", SlotWeapon, false},
		{" Armor ", SlotArmor, false},
		{"AMULET", SlotAmulet, false},
		{"boots", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSlot(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %t", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("slot = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRarity(t *testing.T) {
	if got, err := ParseRarity("Rare"); err != nil || got != RarityRare {
		t.Fatalf("ParseRarity(Rare) = %q, %v", got, err)
	}
	if _, err := ParseRarity("legendary"); err == nil {
		t.Fatal("expected legendary to be rejected")
	}
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{ID: "a", Name: "A", Slot: SlotWeapon, Modifier: 1, Rarity: RarityCommon}, false},
		{"missing id", Item{Name: "A", Slot: SlotWeapon, Rarity: RarityCommon}, true},
		{"missing name", Item{ID: "a", Slot: SlotWeapon, Rarity: RarityCommon}, true},
		{"bad slot", Item{ID: "a", Name: "A", Slot: "ring", Rarity: RarityCommon}, true},
		{"bad rarity", Item{ID: "a", Name: "A", Slot: SlotWeapon, Rarity: "epic"}, true},
		{"negative modifier", Item{ID: "a", Name: "A", Slot: SlotWeapon, Modifier: -1, Rarity: RarityCommon}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
