package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/condition"
)

func TestSet_Apply_Permanent(t *testing.T) {
	var s condition.Set
	s.Apply(catalog.Stoneskin, nil)
	require.True(t, s.Has(catalog.Stoneskin))
	a, _ := s.Get(catalog.Stoneskin)
	assert.True(t, a.Permanent())

	for i := 0; i < 10; i++ {
		assert.Empty(t, s.Tick())
	}
	assert.True(t, s.Has(catalog.Stoneskin), "permanent conditions survive ticks")
}

func TestSet_Apply_ReplacesSameType(t *testing.T) {
	var s condition.Set
	s.Apply(catalog.Hasted, condition.Turns(5))
	s.Apply(catalog.Hasted, condition.Turns(1))
	require.Len(t, s, 1)
	a, ok := s.Get(catalog.Hasted)
	require.True(t, ok)
	assert.Equal(t, 1, *a.Duration, "reapplying replaces rather than keeping the longer duration")

	s.Apply(catalog.Hasted, nil)
	a, _ = s.Get(catalog.Hasted)
	assert.True(t, a.Permanent())
}

func TestSet_Apply_DoesNotAliasCallerDuration(t *testing.T) {
	var s condition.Set
	d := 3
	s.Apply(catalog.Weakened, &d)
	d = 99
	a, _ := s.Get(catalog.Weakened)
	assert.Equal(t, 3, *a.Duration)
}

// TestSet_Tick_TwoTurnCondition verifies a 2-turn condition is gone after two ticks.
func TestSet_Tick_TwoTurnCondition(t *testing.T) {
	var s condition.Set
	s.Apply(catalog.Weakened, condition.Turns(2))

	assert.Empty(t, s.Tick())
	assert.True(t, s.Has(catalog.Weakened))

	assert.Equal(t, []catalog.Condition{catalog.Weakened}, s.Tick())
	assert.Len(t, s, 0)
}

func TestSet_Tick_ZeroDurationExpiresOnNextTick(t *testing.T) {
	var s condition.Set
	s.Apply(catalog.Hasted, condition.Turns(0))
	assert.True(t, s.Has(catalog.Hasted))
	assert.Equal(t, []catalog.Condition{catalog.Hasted}, s.Tick())
	assert.False(t, s.Has(catalog.Hasted))
}

// TestSet_Tick_Property verifies a condition applied for n turns survives
// exactly n-1 ticks.
func TestSet_Tick_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "turns")
		var s condition.Set
		s.Apply(catalog.Empowered, condition.Turns(n))
		s.Apply(catalog.Stoneskin, nil)
		for i := 1; i < n; i++ {
			s.Tick()
			if !s.Has(catalog.Empowered) {
				rt.Fatalf("expired after %d of %d ticks", i, n)
			}
		}
		s.Tick()
		if s.Has(catalog.Empowered) {
			rt.Fatalf("still active after %d ticks", n)
		}
		if !s.Has(catalog.Stoneskin) {
			rt.Fatalf("permanent condition removed")
		}
	})
}

func TestSet_Remove(t *testing.T) {
	var s condition.Set
	s.Apply(catalog.Hasted, nil)
	s.Apply(catalog.Weakened, nil)
	assert.True(t, s.Remove(catalog.Hasted))
	assert.False(t, s.Remove(catalog.Hasted))
	assert.Equal(t, condition.Set{{Type: catalog.Weakened}}, s)
}

func TestSet_Clone_IsDeep(t *testing.T) {
	var s condition.Set
	s.Apply(catalog.Hasted, condition.Turns(2))
	c := s.Clone()
	s.Tick()
	a, _ := c.Get(catalog.Hasted)
	assert.Equal(t, 2, *a.Duration)
}

func TestDeltas_SumsConditions(t *testing.T) {
	cat := catalog.Default()
	var s condition.Set
	s.Apply(catalog.Empowered, nil)
	s.Apply(catalog.Hasted, condition.Turns(1))
	s.Apply(catalog.Stoneskin, nil)
	got := condition.Deltas(s, cat)
	assert.Equal(t, catalog.AbilityDeltas{Strength: 4, Dexterity: 4, Constitution: 2}, got)

	assert.Equal(t, catalog.AbilityDeltas{}, condition.Deltas(nil, cat))
}
