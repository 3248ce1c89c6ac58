package scripting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"
)

func TestNewSandboxedState_UnsafeLibsNil(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	for _, name := range []string{"os", "io", "debug"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_DangerousGlobalsNil(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_SafeLibsAvailable(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	err := L.DoString(`
		local x = math.sqrt(4)
		assert(x == 2.0, "math.sqrt failed")
		local s = string.upper("hello")
		assert(s == "HELLO", "string.upper failed")
		local t = {}
		table.insert(t, 1)
		assert(#t == 1, "table.insert failed")
	`)
	assert.NoError(t, err)
}

func TestLimitState_InstructionLimitExceeded(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	release := limitState(context.Background(), L, 10)
	defer release()
	assert.Error(t, L.DoString(`while true do end`))
}

func TestLimitState_DefaultLimitRunsNormalScripts(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	release := limitState(context.Background(), L, 0)
	defer release()
	assert.NoError(t, L.DoString(`local x = 0 for i = 1, 100 do x = x + i end`))
}

func TestLimitState_ParentCancellationStopsScript(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	release := limitState(ctx, L, 1_000_000)
	defer release()
	assert.Error(t, L.DoString(`while true do end`))
}

func TestLimitState_ReleasedStateIsReusable(t *testing.T) {
	L := NewSandboxedState()
	defer L.Close()
	release := limitState(context.Background(), L, 10)
	require.Error(t, L.DoString(`while true do end`))
	release()

	release = limitState(context.Background(), L, 0)
	defer release()
	assert.NoError(t, L.DoString(`x = 1`))
}

func TestProperty_InstructionLimitAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 50).Draw(t, "limit")
		L := NewSandboxedState()
		defer L.Close()
		release := limitState(context.Background(), L, limit)
		defer release()
		if err := L.DoString(`while true do end`); err == nil {
			t.Fatalf("expected error with limit=%d but got nil", limit)
		}
	})
}
