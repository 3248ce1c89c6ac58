package scripting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// DecideHook is the Lua global a decision script must define.
const DecideHook = "decide"

// ErrNoDecideHook is returned when a loaded script does not define DecideHook.
var ErrNoDecideHook = errors.New("scripting: script defines no decide function")

// LuaDecider is a combat.DecisionProvider backed by a Lua script.
//
// The script defines decide(state) and returns a table with optional action
// and bonus fields, each of the form
//
//	{ kind = "attack" | "offhand_attack" | "use_item" | "use_item_on",
//	  target = "<character id>", item = "<item name>" }
//
// LuaDecider is safe for concurrent use; calls into the VM are serialized.
type LuaDecider struct {
	mu        sync.Mutex
	L         *lua.LState
	cat       *catalog.Catalog
	roller    *dice.Roller
	instLimit int
	logger    *zap.Logger
}

// NewLuaDecider creates a LuaDecider running src.
//
// Precondition: cat and logger must be non-nil; roller may be nil, in which
// case engine.roll raises an error.
// Postcondition: Returns ErrNoDecideHook if src does not define decide.
func NewLuaDecider(src string, cat *catalog.Catalog, roller *dice.Roller, instLimit int, logger *zap.Logger) (*LuaDecider, error) {
	d := newDecider(cat, roller, instLimit, logger)
	if err := d.load(func(L *lua.LState) error { return L.DoString(src) }, "<string>"); err != nil {
		return nil, err
	}
	if err := d.checkHook("<string>"); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadLuaDecider creates a LuaDecider from path. A directory loads every
// *.lua file in it in lexicographic order into one VM.
func LoadLuaDecider(path string, cat *catalog.Catalog, roller *dice.Roller, instLimit int, logger *zap.Logger) (*LuaDecider, error) {
	files, err := luaFiles(path)
	if err != nil {
		return nil, err
	}
	d := newDecider(cat, roller, instLimit, logger)
	for _, f := range files {
		if err := d.load(func(L *lua.LState) error { return L.DoFile(f) }, f); err != nil {
			return nil, err
		}
	}
	if err := d.checkHook(path); err != nil {
		return nil, err
	}
	return d, nil
}

func newDecider(cat *catalog.Catalog, roller *dice.Roller, instLimit int, logger *zap.Logger) *LuaDecider {
	d := &LuaDecider{
		L:         NewSandboxedState(),
		cat:       cat,
		roller:    roller,
		instLimit: instLimit,
		logger:    logger,
	}
	d.registerModules(d.L)
	return d
}

func luaFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", path, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			out = append(out, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// load runs one chunk under the instruction limit. The VM is closed on failure.
func (d *LuaDecider) load(run func(*lua.LState) error, name string) error {
	release := limitState(context.Background(), d.L, d.instLimit)
	err := run(d.L)
	release()
	if err != nil {
		d.Close()
		return fmt.Errorf("scripting: loading %s: %w", name, err)
	}
	return nil
}

func (d *LuaDecider) checkHook(name string) error {
	if d.L.GetGlobal(DecideHook) == lua.LNil {
		d.Close()
		return fmt.Errorf("%s: %w", name, ErrNoDecideHook)
	}
	return nil
}

// Close releases the VM.
func (d *LuaDecider) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.L.Close()
}

// Decide implements combat.DecisionProvider. Lua runtime errors, including
// exceeding the instruction limit, are returned wrapped.
func (d *LuaDecider) Decide(ctx context.Context, s *combat.State, actorID string) (combat.Turn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	release := limitState(ctx, d.L, d.instLimit)
	defer release()

	if err := d.L.CallByParam(lua.P{
		Fn:      d.L.GetGlobal(DecideHook),
		NRet:    1,
		Protect: true,
	}, d.stateTable(s, actorID)); err != nil {
		d.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", DecideHook),
			zap.String("actor", actorID),
			zap.Error(err),
		)
		return combat.Turn{}, fmt.Errorf("scripting: %s: %w", DecideHook, err)
	}
	ret := d.L.Get(-1)
	d.L.Pop(1)
	return d.parseTurn(ret)
}

// stateTable exposes the encounter to Lua as
//
//	{ actor = id, encounter = id, rotation = {ids...},
//	  characters = { [id] = character }, opponents = {character...}, allies = {character...} }
func (d *LuaDecider) stateTable(s *combat.State, actorID string) *lua.LTable {
	L := d.L
	t := L.NewTable()
	L.SetField(t, "actor", lua.LString(actorID))
	L.SetField(t, "encounter", lua.LString(s.Encounter.ID))

	rotation := L.NewTable()
	for _, id := range s.Encounter.Rotation {
		rotation.Append(lua.LString(id))
	}
	L.SetField(t, "rotation", rotation)

	chars := L.NewTable()
	for id, c := range s.Characters {
		L.SetField(chars, id, d.characterTable(c))
	}
	L.SetField(t, "characters", chars)

	opponents := L.NewTable()
	for _, c := range s.Opponents(actorID) {
		opponents.Append(d.characterTable(c))
	}
	L.SetField(t, "opponents", opponents)

	allies := L.NewTable()
	if self, ok := s.Character(actorID); ok {
		for _, c := range s.Allies(self.Party) {
			if c.ID != actorID {
				allies.Append(d.characterTable(c))
			}
		}
	}
	L.SetField(t, "allies", allies)
	return t
}

func (d *LuaDecider) characterTable(c *character.Character) *lua.LTable {
	L := d.L
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(c.ID))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "party", lua.LString(c.Party))
	L.SetField(t, "player", lua.LBool(c.IsPlayer()))
	L.SetField(t, "level", lua.LNumber(c.Level()))
	L.SetField(t, "health", lua.LNumber(c.Health))
	L.SetField(t, "max_health", lua.LNumber(c.MaxHealth(d.cat)))
	L.SetField(t, "armor_class", lua.LNumber(c.ArmorClass(d.cat)))
	L.SetField(t, "alive", lua.LBool(c.Alive()))
	if c.MainHand != nil {
		L.SetField(t, "main_hand", lua.LString(c.MainHand.String()))
	}
	if c.OffHand != nil {
		L.SetField(t, "off_hand", lua.LString(c.OffHand.String()))
	}
	items := L.NewTable()
	for _, it := range c.Inventory.Items {
		items.Append(lua.LString(it.String()))
	}
	L.SetField(t, "items", items)
	conds := L.NewTable()
	for _, a := range c.Conditions {
		conds.Append(lua.LString(a.Type.String()))
	}
	L.SetField(t, "conditions", conds)
	return t
}

func (d *LuaDecider) parseTurn(v lua.LValue) (combat.Turn, error) {
	if v == lua.LNil {
		return combat.Turn{}, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return combat.Turn{}, fmt.Errorf("scripting: decide returned %s, want table: %w", v.Type(), combat.ErrInvalidAction)
	}
	action, err := parseAction(t.RawGetString("action"))
	if err != nil {
		return combat.Turn{}, fmt.Errorf("action: %w", err)
	}
	bonus, err := parseAction(t.RawGetString("bonus"))
	if err != nil {
		return combat.Turn{}, fmt.Errorf("bonus: %w", err)
	}
	return combat.Turn{Action: action, Bonus: bonus}, nil
}

func parseAction(v lua.LValue) (*combat.Action, error) {
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("got %s, want table: %w", v.Type(), combat.ErrInvalidAction)
	}
	kind, err := combat.ParseActionKind(lua.LVAsString(t.RawGetString("kind")))
	if err != nil {
		return nil, err
	}
	a := &combat.Action{Kind: kind, Target: lua.LVAsString(t.RawGetString("target"))}
	if kind == combat.ActionUseItem || kind == combat.ActionUseItemOn {
		a.Item, err = catalog.ParseItem(lua.LVAsString(t.RawGetString("item")))
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}
