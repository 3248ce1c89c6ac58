// Package combat implements the encounter engine: attack resolution, action
// dispatch, the turn rotation state machine and reward distribution.
package combat

import (
	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// Roller is the randomness consumed by the engine. *dice.Roller satisfies it.
type Roller interface {
	dice.Source
	Roll(d dice.Die) int
}

const (
	criticalMiss = 1
	criticalHit  = 20
)

// Hit is the record of a connecting attack.
type Hit struct {
	Damage   int
	Critical bool
	// Target is the display name of the character hit.
	Target string
}

// ResolveAttack rolls one attack with stats against target and subtracts the
// damage from its health. It is the only path by which combat damages a character.
//
// A raw d20 of 1 always misses. A raw 20 always connects and rolls the damage
// dice twice; the flat bonus is added once. Damage is never negative.
//
// Precondition: roller, cat and target must be non-nil.
// Postcondition: Returns nil on a miss and leaves target unchanged.
func ResolveAttack(roller Roller, cat *catalog.Catalog, stats character.AttackStats, target *character.Character) *Hit {
	roll := roller.Roll(dice.D20)
	if roll == criticalMiss {
		return nil
	}
	critical := roll == criticalHit
	if !critical && roll+stats.HitBonus <= target.ArmorClass(cat) {
		return nil
	}

	damage := 0
	for _, d := range stats.Dice {
		damage += roller.Roll(d)
	}
	if critical {
		for _, d := range stats.Dice {
			damage += roller.Roll(d)
		}
	}
	damage = max(damage+stats.AttackBonus, 0)

	target.Health -= damage
	return &Hit{Damage: damage, Critical: critical, Target: target.Name}
}
