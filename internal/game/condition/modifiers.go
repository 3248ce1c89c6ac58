package condition

import "github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"

// Deltas returns the summed ability-score adjustments of every active condition.
//
// Precondition: cat must be non-nil.
func Deltas(s Set, cat *catalog.Catalog) catalog.AbilityDeltas {
	var total catalog.AbilityDeltas
	for _, a := range s {
		d := cat.Condition(a.Type).Deltas
		total.Strength += d.Strength
		total.Dexterity += d.Dexterity
		total.Constitution += d.Constitution
	}
	return total
}
