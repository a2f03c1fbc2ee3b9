package domain

// EnemyAttackInterval is the number of turns between enemy auto attacks.
const EnemyAttackInterval = 3

// Enemy is the opponent of a single battle. It is created at battle start and
// discarded when the battle ends.
type Enemy struct {
	Name          string
	HP            int
	MaxHP         int
	BaseAttack    int
	TurnsToAttack int
	Strength      float64
	// Archetype names the stat line the enemy was built from.
	Archetype string
}

// Defeated reports whether the enemy has no hp left.
func (e Enemy) Defeated() bool {
	return e.HP <= 0
}
