package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// registerModules defines the engine global in L:
//
//	engine.log(msg)     logs msg at info level
//	engine.roll(die)    rolls "d4".."d20" with the decider's roller
//
// engine.roll raises a Lua error for an unknown die or when no roller is set.
func (d *LuaDecider) registerModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		d.logger.Info("script", zap.String("message", L.CheckString(1)))
		return 0
	}))
	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		die, err := dice.ParseDie(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		if d.roller == nil {
			L.RaiseError("engine.roll: no roller")
			return 0
		}
		L.Push(lua.LNumber(d.roller.Roll(die)))
		return 1
	}))
	L.SetGlobal("engine", engine)
}
