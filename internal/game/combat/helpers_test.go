package combat_test

import (
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

const encID = "enc-1"

// scripted returns a roller whose sources yield the given zero-based values.
func scripted(values ...int) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewScriptedSource(values...), zap.NewNop())
}

func player(id, party string, str, dex, con int) *character.Character {
	c := &character.Character{
		ID:    id,
		Name:  id,
		Kind:  character.KindPlayer,
		Party: party,
		Base: character.Scores{
			Strength:     character.Strength(str),
			Dexterity:    character.Dexterity(dex),
			Constitution: character.Constitution(con),
		},
		Status:      character.StatusFighting,
		EncounterID: encID,
	}
	c.Health = c.MaxHealth(catalog.Default())
	return c
}

func monster(t require.TestingT, id, party string, m catalog.Monster) *character.Character {
	c, err := character.NewMonster(catalog.Default(), m, party)
	require.NoError(t, err)
	c.ID = id
	c.Status = character.StatusFighting
	c.EncounterID = encID
	return c
}

// fight builds a state whose rotation is the given characters in order.
func fight(chars ...*character.Character) *combat.State {
	ids := make([]string, len(chars))
	for i, c := range chars {
		ids[i] = c.ID
	}
	return combat.NewState(&combat.Encounter{ID: encID, Rotation: ids}, chars)
}

func kinds(events []combat.Event) []combat.EventKind {
	out := make([]combat.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func weapon(w catalog.Weapon) *catalog.Weapon { return &w }
