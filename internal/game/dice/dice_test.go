package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

var allDice = []dice.Die{dice.D4, dice.D6, dice.D8, dice.D10, dice.D20}

func TestDie_Faces(t *testing.T) {
	assert.Equal(t, 4, dice.D4.Faces())
	assert.Equal(t, 6, dice.D6.Faces())
	assert.Equal(t, 8, dice.D8.Faces())
	assert.Equal(t, 10, dice.D10.Faces())
	assert.Equal(t, 20, dice.D20.Faces())
	assert.Equal(t, 0, dice.Die(99).Faces())
}

func TestParseDie_RoundTrip(t *testing.T) {
	for _, d := range allDice {
		parsed, err := dice.ParseDie(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	parsed, err := dice.ParseDie("D20")
	require.NoError(t, err)
	assert.Equal(t, dice.D20, parsed)

	_, err = dice.ParseDie("d7")
	assert.Error(t, err)
}

func TestDie_TextMarshal(t *testing.T) {
	b, err := dice.D8.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "d8", string(b))

	var d dice.Die
	require.NoError(t, d.UnmarshalText([]byte("d10")))
	assert.Equal(t, dice.D10, d)

	_, err = dice.Die(0).MarshalText()
	assert.Error(t, err)
}

// TestRoll_InRange_Property verifies the postcondition 1 <= Roll(d) <= Faces(d)
// for every die and arbitrary seeds.
func TestRoll_InRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.SampledFrom(allDice).Draw(rt, "die")
		seed := rapid.Uint64().Draw(rt, "seed")
		src := dice.NewSeededSource(seed)
		for i := 0; i < 50; i++ {
			v := dice.Roll(d, src)
			if v < 1 || v > d.Faces() {
				rt.Fatalf("roll %d out of range for %s", v, d)
			}
		}
	})
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(20), b.Intn(20))
	}
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestScriptedSource_ReplaysAndClamps(t *testing.T) {
	src := dice.NewScriptedSource(19, 0, 50, -3)
	assert.Equal(t, 20, dice.Roll(dice.D20, src))
	assert.Equal(t, 1, dice.Roll(dice.D20, src))
	assert.Equal(t, 6, dice.Roll(dice.D6, src), "values above the die are clamped to the top face")
	assert.Equal(t, 1, dice.Roll(dice.D6, src), "negative values clamp to the lowest face")
	assert.Equal(t, 0, src.Remaining())
	assert.Equal(t, 1, dice.Roll(dice.D4, src), "exhausted source keeps yielding the lowest face")
}

func TestPick_UsesSource(t *testing.T) {
	src := dice.NewScriptedSource(2, 0)
	items := []string{"a", "b", "c"}
	assert.Equal(t, "c", dice.Pick(src, items))
	assert.Equal(t, "a", dice.Pick(src, items))
}

func TestRoller_LogsEachRoll(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewScriptedSource(3, 1), zap.New(core))

	got := r.RollAll([]dice.Die{dice.D6, dice.D4})
	assert.Equal(t, []int{4, 2}, got)
	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "dice roll", entry.Message)
	assert.Equal(t, "d6", entry.ContextMap()["die"])
	assert.Equal(t, int64(4), entry.ContextMap()["result"])
}
