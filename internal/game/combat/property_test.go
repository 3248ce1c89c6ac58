package combat_test

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// TestProperty_FightsResolveConsistently plays random monster-versus-monster
// fights to the end and checks the rotation bookkeeping after every turn.
func TestProperty_FightsResolveConsistently(t *testing.T) {
	cat := catalog.Default()
	rapid.Check(t, func(rt *rapid.T) {
		roller := dice.NewLoggedRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), zap.NewNop())
		kind := rapid.SampledFrom(catalog.Monsters())

		var chars []*character.Character
		for p, party := range []string{"red", "blue"} {
			n := rapid.IntRange(1, 3).Draw(rt, fmt.Sprintf("size_%s", party))
			for i := 0; i < n; i++ {
				m := monster(rt, fmt.Sprintf("%d-%d", p, i), party, kind.Draw(rt, "monster"))
				chars = append(chars, m)
			}
		}
		s := combat.NewState(&combat.Encounter{ID: encID, Rotation: combat.RollInitiative(roller, chars)}, chars)
		resolver := combat.NewResolver(cat, roller, zap.NewNop())
		policy := combat.NewMonsterPolicy(cat, roller, 0)

		resolved := false
		for turn := 0; turn < 2000 && !resolved; turn++ {
			actor := s.Encounter.Active()
			choice, err := policy.Decide(context.Background(), s, actor)
			require.NoError(rt, err)
			out, err := resolver.PlayTurn(s, actor, choice)
			require.NoError(rt, err)
			resolved = out.Resolved

			assert.Equal(rt, len(chars), len(s.Encounter.Rotation)+len(s.Encounter.Dead))
			for _, id := range s.Encounter.Rotation {
				assert.False(rt, slices.Contains(s.Encounter.Dead, id))
				assert.True(rt, s.Characters[id].Alive())
			}
			for _, id := range s.Encounter.Dead {
				assert.False(rt, s.Characters[id].Alive())
			}
			assert.Equal(rt, resolved, len(s.Parties()) == 1)
		}
		require.True(rt, resolved, "fight did not finish")
		assert.Len(rt, s.Parties(), 1)
	})
}
