package domain

import "testing"

func TestEnemyDefeated(t *testing.T) {
	tests := []struct {
		hp   int
		want bool
	}{
		{hp: 10, want: false},
		{hp: 1, want: false},
		{hp: 0, want: true},
		{hp: -5, want: true},
	}
	for _, tt := range tests {
		if got := (Enemy{HP: tt.hp, MaxHP: 110}).Defeated(); got != tt.want {
			t.Fatalf("Defeated() with hp %d = %t, want %t", tt.hp, got, tt.want)
		}
	}
}
