package combat

import (
	"slices"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// RollInitiative rolls 1d20 for each participant, in the given order, and
// returns their ids sorted by roll, highest first. Ties keep roll order.
//
// Precondition: roller must be non-nil.
// Postcondition: len(result) == len(chars).
func RollInitiative(roller Roller, chars []*character.Character) []string {
	type entry struct {
		id   string
		roll int
	}
	entries := make([]entry, len(chars))
	for i, c := range chars {
		entries[i] = entry{id: c.ID, roll: roller.Roll(dice.D20)}
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return b.roll - a.roll })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}

// DistinctParties counts the parties among chars.
func DistinctParties(chars []*character.Character) int {
	seen := make(map[string]struct{}, len(chars))
	for _, c := range chars {
		seen[c.Party] = struct{}{}
	}
	return len(seen)
}
