package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

func TestMonsterPolicy_PicksOpponentAtRandom(t *testing.T) {
	m := monster(t, "M", "m", catalog.Goblin)
	ally := monster(t, "ally", "m", catalog.Goblin)
	p1, p2 := player("P1", "p", 10, 10, 10), player("P2", "p", 10, 10, 10)
	s := fight(m, ally, p1, p2)

	turn, err := combat.NewMonsterPolicy(catalog.Default(), dice.NewScriptedSource(1), 0).Decide(context.Background(), s, "M")
	require.NoError(t, err)
	require.NotNil(t, turn.Action)
	assert.Equal(t, combat.ActionAttack, turn.Action.Kind)
	assert.Equal(t, "P2", turn.Action.Target)
	assert.Nil(t, turn.Bonus)
}

func TestMonsterPolicy_DrinksPotionWhenLow(t *testing.T) {
	m := monster(t, "M", "m", catalog.Skeleton)
	m.Health = 4
	m.Inventory.Items = []catalog.Item{catalog.ThrowingKnife, catalog.MinorHealthPotion}
	s := fight(m, player("P", "p", 10, 10, 10))

	turn, err := combat.NewMonsterPolicy(catalog.Default(), dice.NewScriptedSource(), combat.DefaultLowHealthThreshold).
		Decide(context.Background(), s, "M")
	require.NoError(t, err)
	require.NotNil(t, turn.Bonus)
	assert.Equal(t, *combat.UseItem(catalog.MinorHealthPotion), *turn.Bonus)
}

func TestMonsterPolicy_OffhandWhenNotLow(t *testing.T) {
	m := monster(t, "M", "m", catalog.Skeleton)
	s := fight(m, player("P", "p", 10, 10, 10))

	turn, err := combat.NewMonsterPolicy(catalog.Default(), dice.NewScriptedSource(), 5).Decide(context.Background(), s, "M")
	require.NoError(t, err)
	assert.Equal(t, *combat.OffhandAttack("P"), *turn.Bonus)
}

func TestMonsterPolicy_LowWithoutPotionFallsBackToOffhand(t *testing.T) {
	m := monster(t, "M", "m", catalog.Skeleton)
	m.Health = 1
	m.Inventory.Items = nil
	s := fight(m, player("P", "p", 10, 10, 10))

	turn, err := combat.NewMonsterPolicy(catalog.Default(), dice.NewScriptedSource(), 5).Decide(context.Background(), s, "M")
	require.NoError(t, err)
	assert.Equal(t, combat.ActionOffhandAttack, turn.Bonus.Kind)
}

func TestMonsterPolicy_NoOpponents(t *testing.T) {
	s := fight(monster(t, "M", "m", catalog.Goblin))
	_, err := combat.NewMonsterPolicy(catalog.Default(), dice.NewScriptedSource(), 5).Decide(context.Background(), s, "M")
	assert.ErrorIs(t, err, combat.ErrNoOpponents)
}

func TestFixedDecision(t *testing.T) {
	want := combat.Turn{Action: combat.Attack("x")}
	got, err := combat.FixedDecision(want).Decide(context.Background(), nil, "a")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRollInitiative_StableDescending(t *testing.T) {
	a, b, c := player("A", "p", 10, 10, 10), player("B", "q", 10, 10, 10), player("C", "r", 10, 10, 10)
	order := combat.RollInitiative(scripted(4, 19, 4), []*character.Character{a, b, c})
	assert.Equal(t, []string{"B", "A", "C"}, order)
}
