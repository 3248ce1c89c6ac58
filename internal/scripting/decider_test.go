package scripting_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
	"github.com/SofusA/cli-dungeon-sub000/internal/scripting"
)

const attackWeakest = `
function decide(state)
	local target = nil
	for _, c in ipairs(state.opponents) do
		if target == nil or c.health < target.health then
			target = c
		end
	end
	local me = state.characters[state.actor]
	local turn = { action = { kind = "attack", target = target.id } }
	if me.health < me.max_health and #me.items > 0 then
		turn.bonus = { kind = "use_item", item = me.items[1] }
	end
	return turn
end
`

func newDecider(t *testing.T, src string) (*scripting.LuaDecider, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewScriptedSource(5), logger)
	d, err := scripting.NewLuaDecider(src, catalog.Default(), roller, 0, logger)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, logs
}

func state(t *testing.T) *combat.State {
	t.Helper()
	cat := catalog.Default()
	hero, err := character.NewPlayer(cat, "hero", "", character.Scores{Strength: 12, Dexterity: 12, Constitution: 12})
	require.NoError(t, err)
	hero.ID = "hero"
	hero.Inventory.Items = []catalog.Item{catalog.HealthPotion}
	goblin, err := character.NewMonster(cat, catalog.Goblin, "monsters")
	require.NoError(t, err)
	goblin.ID = "goblin"
	orc, err := character.NewMonster(cat, catalog.Orc, "monsters")
	require.NoError(t, err)
	orc.ID = "orc"
	return combat.NewState(&combat.Encounter{ID: "enc", Rotation: []string{"hero", "goblin", "orc"}},
		[]*character.Character{hero, goblin, orc})
}

func TestLuaDecider_ChoosesTurn(t *testing.T) {
	d, _ := newDecider(t, attackWeakest)
	s := state(t)

	turn, err := d.Decide(context.Background(), s, "hero")
	require.NoError(t, err)
	require.NotNil(t, turn.Action)
	assert.Equal(t, combat.ActionAttack, turn.Action.Kind)
	assert.Equal(t, "goblin", turn.Action.Target)
	assert.Nil(t, turn.Bonus, "full health, no potion")

	s.Characters["hero"].Health = 1
	turn, err = d.Decide(context.Background(), s, "hero")
	require.NoError(t, err)
	require.NotNil(t, turn.Bonus)
	assert.Equal(t, combat.ActionUseItem, turn.Bonus.Kind)
	assert.Equal(t, catalog.HealthPotion, turn.Bonus.Item)
}

func TestLuaDecider_DoesNotMutateState(t *testing.T) {
	d, _ := newDecider(t, `
		function decide(state)
			state.characters[state.actor].health = 0
			state.rotation = {}
			return nil
		end`)
	s := state(t)
	before := s.Clone()

	turn, err := d.Decide(context.Background(), s, "hero")
	require.NoError(t, err)
	assert.Equal(t, combat.Turn{}, turn)
	assert.Equal(t, before, s)
}

func TestLuaDecider_TurnIsPlayable(t *testing.T) {
	d, _ := newDecider(t, attackWeakest)
	s := state(t)
	for _, c := range s.Characters {
		c.Status = character.StatusFighting
		c.EncounterID = "enc"
	}
	turn, err := d.Decide(context.Background(), s, "hero")
	require.NoError(t, err)

	r := combat.NewResolver(catalog.Default(), dice.NewLoggedRoller(dice.NewScriptedSource(0), zap.NewNop()), zap.NewNop())
	require.NoError(t, r.Validate(s, "hero", turn))
}

func TestLuaDecider_Modules(t *testing.T) {
	d, logs := newDecider(t, `
		function decide(state)
			engine.log("rolled " .. engine.roll("d20"))
			return {}
		end`)
	_, err := d.Decide(context.Background(), state(t), "hero")
	require.NoError(t, err)

	entries := logs.FilterMessage("script").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rolled 6", entries[0].ContextMap()["message"])
}

func TestLuaDecider_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown kind", `function decide(s) return { action = { kind = "dance" } } end`, combat.ErrInvalidAction},
		{"unknown item", `function decide(s) return { bonus = { kind = "use_item", item = "elixir" } } end`, catalog.ErrUnknownName},
		{"not a table", `function decide(s) return 42 end`, combat.ErrInvalidAction},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := newDecider(t, tc.src)
			_, err := d.Decide(context.Background(), state(t), "hero")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLuaDecider_RuntimeErrorIsLoggedAndReturned(t *testing.T) {
	d, logs := newDecider(t, `function decide(s) error("boom") end`)
	_, err := d.Decide(context.Background(), state(t), "hero")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestLuaDecider_InstructionLimit(t *testing.T) {
	d, err := scripting.NewLuaDecider(`function decide(s) while true do end end`,
		catalog.Default(), nil, 50, zap.NewNop())
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Decide(context.Background(), state(t), "hero")
	assert.Error(t, err)
}

func TestLuaDecider_MissingHook(t *testing.T) {
	_, err := scripting.NewLuaDecider(`x = 1`, catalog.Default(), nil, 0, zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrNoDecideHook)

	_, err = scripting.NewLuaDecider(`this is not lua`, catalog.Default(), nil, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadLuaDecider_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_helpers.lua"), []byte(`
		function first_opponent(state) return state.opponents[1].id end
	`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_decide.lua"), []byte(`
		function decide(state) return { action = { kind = "attack", target = first_opponent(state) } } end
	`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	d, err := scripting.LoadLuaDecider(dir, catalog.Default(), nil, 0, zap.NewNop())
	require.NoError(t, err)
	defer d.Close()

	turn, err := d.Decide(context.Background(), state(t), "hero")
	require.NoError(t, err)
	require.NotNil(t, turn.Action)
	assert.Equal(t, "goblin", turn.Action.Target)

	_, err = scripting.LoadLuaDecider(filepath.Join(dir, "missing.lua"), catalog.Default(), nil, 0, zap.NewNop())
	assert.Error(t, err)
}
