package gameserver_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
	"github.com/SofusA/cli-dungeon-sub000/internal/gameserver"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage/memory"
)

const secret = "hunter2"

type fixture struct {
	engine     *gameserver.Engine
	service    *gameserver.Service
	chars      *memory.CharacterStore
	encounters *memory.EncounterStore
	hooked     *hookedStore
}

// hookedStore runs onPut, once, before the next Put reaches the store.
type hookedStore struct {
	*memory.CharacterStore
	mu    sync.Mutex
	onPut func()
}

func (h *hookedStore) Put(ctx context.Context, c *character.Character) error {
	h.mu.Lock()
	hook := h.onPut
	h.onPut = nil
	h.mu.Unlock()
	if hook != nil {
		hook()
	}
	return h.CharacterStore.Put(ctx, c)
}

func (h *hookedStore) beforeNextPut(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPut = fn
}

// newFixture wires an engine over memory stores whose dice replay the given
// zero-based values and then keep rolling 1s.
func newFixture(t *testing.T, rolls ...int) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cat := catalog.Default()
	roller := dice.NewLoggedRoller(dice.NewScriptedSource(rolls...), logger)
	chars := memory.NewCharacterStore()
	hooked := &hookedStore{CharacterStore: chars}
	encounters := memory.NewEncounterStore()
	engine := gameserver.NewEngine(hooked, encounters,
		combat.NewResolver(cat, roller, logger),
		combat.NewMonsterPolicy(cat, roller, combat.DefaultLowHealthThreshold),
		logger)
	return &fixture{
		engine:     engine,
		service:    gameserver.NewService(engine, bcrypt.MinCost, logger),
		chars:      chars,
		encounters: encounters,
		hooked:     hooked,
	}
}

func (f *fixture) player(t *testing.T, name string) *character.Character {
	t.Helper()
	c, err := f.service.CreatePlayer(context.Background(), name, secret,
		character.Scores{Strength: 8, Dexterity: 8, Constitution: 8})
	require.NoError(t, err)
	return c
}

func (f *fixture) get(t *testing.T, id string) *character.Character {
	t.Helper()
	c, err := f.chars.Get(context.Background(), id)
	require.NoError(t, err)
	return c
}

func TestEngine_PlayerKillsTestMonster(t *testing.T) {
	ctx := context.Background()
	// initiative 20 vs 1, then a natural 20 with two 4s on the d4.
	f := newFixture(t, 19, 0, 19, 3, 3)
	p := f.player(t, "hero")

	start, err := f.engine.StartQuest(ctx, p.ID, secret, catalog.TestMonster)
	require.NoError(t, err)
	assert.Equal(t, p.ID, start.Next)
	assert.Empty(t, start.Events)
	require.Equal(t, 1, f.encounters.Len())

	st, err := f.engine.Encounter(ctx, start.EncounterID)
	require.NoError(t, err)
	require.Len(t, st.Encounter.Rotation, 2)
	monsterID := st.Encounter.Rotation[1]

	res, err := f.engine.TakeTurn(ctx, gameserver.TurnRequest{
		ActorID: p.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(monsterID)},
	})
	require.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, p.Party, res.Winner)
	assert.Empty(t, res.Next)

	var hit combat.Event
	for _, e := range res.Events {
		if e.Kind == combat.EventHit {
			hit = e
		}
	}
	assert.True(t, hit.Critical)
	assert.Positive(t, hit.Damage)

	got := f.get(t, p.ID)
	assert.Equal(t, character.ExperienceGain(0), got.Experience)
	assert.Equal(t, character.StatusQuesting, got.Status)
	assert.Empty(t, got.EncounterID)

	_, err = f.chars.Get(ctx, monsterID)
	assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
	assert.Equal(t, 0, f.encounters.Len())
	assert.Equal(t, 1, f.chars.Len())

	_, err = f.engine.TakeTurn(ctx, gameserver.TurnRequest{
		ActorID: p.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(monsterID)},
	})
	assert.ErrorIs(t, err, combat.ErrNotFighting)
}

func TestEngine_MonstersLeadingTheRotationActFirst(t *testing.T) {
	ctx := context.Background()
	// initiative 1 vs 20; the goblin picks the player and rolls a natural 1.
	f := newFixture(t, 0, 19, 0, 0)
	p := f.player(t, "hero")

	res, err := f.engine.StartQuest(ctx, p.ID, secret, catalog.Goblin)
	require.NoError(t, err)
	assert.False(t, res.Resolved)
	assert.Equal(t, p.ID, res.Next)
	require.Len(t, res.Events, 2)
	assert.Equal(t, combat.EventAttackDeclared, res.Events[0].Kind)
	assert.Equal(t, combat.EventMiss, res.Events[1].Kind)
	assert.Equal(t, p.ID, res.Events[1].Target)

	enc, err := f.encounters.Get(ctx, res.EncounterID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, enc.Active())
	assert.Equal(t, character.StatusFighting, f.get(t, p.ID).Status)
}

func TestEngine_TakeTurnCascadesMonsterTurns(t *testing.T) {
	ctx := context.Background()
	// Every roll after initiative is a 1: all attacks miss.
	f := newFixture(t, 19, 0)
	p := f.player(t, "hero")
	start, err := f.engine.StartQuest(ctx, p.ID, secret, catalog.Slime)
	require.NoError(t, err)
	st, err := f.engine.Encounter(ctx, start.EncounterID)
	require.NoError(t, err)
	slime := st.Encounter.Rotation[1]

	res, err := f.engine.TakeTurn(ctx, gameserver.TurnRequest{
		ActorID: p.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(slime)},
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, res.Next)
	assert.Equal(t, []combat.EventKind{
		combat.EventAttackDeclared, combat.EventMiss,
		combat.EventAttackDeclared, combat.EventMiss,
	}, eventKinds(res.Events))
	assert.Equal(t, slime, res.Events[2].Actor)
}

func TestEngine_TakeTurnRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 19, 0)
	a := f.player(t, "alice")
	b := f.player(t, "bob")
	idle := f.player(t, "carol")
	_, err := f.engine.StartEncounter(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  gameserver.TurnRequest
		want error
	}{
		{"wrong secret", gameserver.TurnRequest{ActorID: a.ID, Secret: "nope", Turn: combat.Turn{Action: combat.Attack(b.ID)}}, combat.ErrUnauthorized},
		{"not your turn", gameserver.TurnRequest{ActorID: b.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(a.ID)}}, combat.ErrNotYourTurn},
		{"not fighting", gameserver.TurnRequest{ActorID: idle.ID, Secret: secret, Turn: combat.Turn{}}, combat.ErrNotFighting},
		{"missing item", gameserver.TurnRequest{ActorID: a.ID, Secret: secret, Turn: combat.Turn{Bonus: combat.UseItem(catalog.HealthPotion)}}, combat.ErrItemNotAvailable},
		{"target outside rotation", gameserver.TurnRequest{ActorID: a.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(idle.ID)}}, combat.ErrInvalidTarget},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := f.get(t, tc.req.ActorID)
			_, err := f.engine.TakeTurn(ctx, tc.req)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, f.get(t, tc.req.ActorID))
		})
	}

	enc, err := f.encounters.Get(ctx, f.get(t, a.ID).EncounterID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, enc.Rotation)
}

func TestEngine_MonstersCannotBeDriven(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0, 19)
	p := f.player(t, "hero")
	res, err := f.engine.StartQuest(ctx, p.ID, secret, catalog.Slime)
	require.NoError(t, err)
	st, err := f.engine.Encounter(ctx, res.EncounterID)
	require.NoError(t, err)
	var slime string
	for id, c := range st.Characters {
		if !c.IsPlayer() {
			slime = id
		}
	}

	_, err = f.engine.TakeTurn(ctx, gameserver.TurnRequest{ActorID: slime, Secret: ""})
	assert.ErrorIs(t, err, combat.ErrUnauthorized)
}

func TestEngine_StartEncounterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.player(t, "alice")
	b := f.player(t, "bob")

	_, err := f.engine.StartEncounter(ctx, []string{a.ID})
	assert.ErrorIs(t, err, combat.ErrTooFewParties)

	_, err = f.engine.StartEncounter(ctx, []string{a.ID, "missing"})
	assert.ErrorIs(t, err, storage.ErrCharacterNotFound)

	_, err = f.engine.StartEncounter(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	_, err = f.engine.StartEncounter(ctx, []string{a.ID, b.ID})
	assert.ErrorIs(t, err, character.ErrFighting)

	_, err = f.engine.StartQuest(ctx, a.ID, secret, catalog.Goblin)
	assert.ErrorIs(t, err, character.ErrFighting)
	assert.Equal(t, 2, f.chars.Len(), "no monsters spawned for a refused quest")

	_, err = f.engine.StartQuest(ctx, a.ID, secret)
	assert.ErrorIs(t, err, combat.ErrTooFewParties)
}

func TestEngine_StartEncounterRejectsDuplicateParticipants(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.player(t, "hero")
	goblin, err := character.NewMonster(catalog.Default(), catalog.Goblin, "monsters")
	require.NoError(t, err)
	require.NoError(t, f.chars.Put(ctx, goblin))

	_, err = f.engine.StartEncounter(ctx, []string{p.ID, goblin.ID, goblin.ID})
	assert.ErrorIs(t, err, combat.ErrDuplicateParticipant)
	assert.Equal(t, 0, f.encounters.Len())
	assert.Equal(t, character.StatusIdle, f.get(t, p.ID).Status)
	assert.Equal(t, character.StatusIdle, f.get(t, goblin.ID).Status)

	res, err := f.engine.StartEncounter(ctx, []string{p.ID, goblin.ID})
	require.NoError(t, err)
	st, err := f.engine.Encounter(ctx, res.EncounterID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{p.ID, goblin.ID}, st.Encounter.Rotation)
}

func TestEngine_PlayTurnUsesDecisionProvider(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 19, 0)
	a := f.player(t, "alice")
	b := f.player(t, "bob")
	_, err := f.engine.StartEncounter(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)

	var sawActor string
	decide := combat.DecisionFunc(func(_ context.Context, s *combat.State, actorID string) (combat.Turn, error) {
		sawActor = actorID
		return combat.Turn{Action: combat.Attack(s.Opponents(actorID)[0].ID)}, nil
	})
	res, err := f.engine.PlayTurn(ctx, a.ID, secret, decide)
	require.NoError(t, err)
	assert.Equal(t, a.ID, sawActor)
	assert.Equal(t, b.ID, res.Next)
}

func TestEngine_TurnsOfOneEncounterAreSerialized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 19, 0)
	a := f.player(t, "alice")
	b := f.player(t, "bob")
	_, err := f.engine.StartEncounter(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)

	const callers = 8
	var ok, notYourTurn atomic.Int32
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.TakeTurn(ctx, gameserver.TurnRequest{
				ActorID: a.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(b.ID)},
			})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, combat.ErrNotYourTurn):
				notYourTurn.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(callers-1), notYourTurn.Load())
}

func TestEngine_ServiceWritesWaitForTurns(t *testing.T) {
	ctx := context.Background()
	// initiative 20 vs 1, then a natural 20 that kills the test monster.
	f := newFixture(t, 19, 0, 19, 3, 3)
	p := f.player(t, "hero")
	start, err := f.engine.StartQuest(ctx, p.ID, secret, catalog.TestMonster)
	require.NoError(t, err)
	st, err := f.engine.Encounter(ctx, start.EncounterID)
	require.NoError(t, err)
	monsterID := st.Encounter.Rotation[1]

	given := make(chan error, 1)
	f.hooked.beforeNextPut(func() {
		go func() {
			_, err := f.service.Give(ctx, p.ID, character.Inventory{Items: []catalog.Item{catalog.HealthPotion}})
			given <- err
		}()
		// Long enough for an unserialized Give to finish before the turn persists.
		time.Sleep(50 * time.Millisecond)
	})

	_, err = f.engine.TakeTurn(ctx, gameserver.TurnRequest{
		ActorID: p.ID, Secret: secret, Turn: combat.Turn{Action: combat.Attack(monsterID)},
	})
	require.NoError(t, err)
	require.NoError(t, <-given)

	got := f.get(t, p.ID)
	assert.Contains(t, got.Inventory.Items, catalog.HealthPotion)
	assert.Equal(t, character.StatusQuesting, got.Status)
}

func TestEngine_ConcurrentQuestsForOnePlayer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.player(t, "hero")

	const callers = 4
	var ok, fighting atomic.Int32
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.StartQuest(ctx, p.ID, secret, catalog.Goblin)
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, character.ErrFighting):
				fighting.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(callers-1), fighting.Load())
	assert.Equal(t, 1, f.encounters.Len())
	assert.Equal(t, 2, f.chars.Len(), "refused quests remove their monsters")
}

func eventKinds(events []combat.Event) []combat.EventKind {
	out := make([]combat.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
