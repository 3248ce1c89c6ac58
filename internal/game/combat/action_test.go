package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
)

func TestParseActionKind_RoundTrip(t *testing.T) {
	for _, k := range []combat.ActionKind{
		combat.ActionAttack, combat.ActionOffhandAttack, combat.ActionUseItem, combat.ActionUseItemOn,
	} {
		got, err := combat.ParseActionKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := combat.ParseActionKind("flee")
	assert.ErrorIs(t, err, combat.ErrInvalidAction)
}
