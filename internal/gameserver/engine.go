// Package gameserver orchestrates encounters: it loads the participants of an
// encounter from storage, plays turns with the combat resolver, runs monster
// turns automatically, and persists the result after every turn.
package gameserver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

// MaxMonsterTurns bounds the automatic monster cascade of a single call.
// Encounters between monsters that cannot damage each other would otherwise
// never hand control back.
const MaxMonsterTurns = 1000

// TurnRequest is a player's submitted turn.
type TurnRequest struct {
	ActorID string
	// Secret is the plaintext ownership token of the actor.
	Secret string
	Turn   combat.Turn
}

// TurnResult is everything that happened during one call, the player's turn
// followed by any monster turns it triggered.
type TurnResult struct {
	EncounterID string
	Events      []combat.Event
	// Resolved is true when the encounter ended during the call.
	Resolved bool
	// Winner is the surviving party when Resolved.
	Winner string
	// Next is the character at the front of the rotation when the call
	// returned; empty when Resolved.
	Next string
}

// Engine runs encounters stored in a CharacterStore and an EncounterStore.
//
// Engine is safe for concurrent use. Turns of one encounter are strictly
// sequential; different encounters proceed in parallel. A turn holds the
// encounter's lock and the lock of every participant, so a Service built on
// the engine never writes a character while a turn has it loaded.
type Engine struct {
	chars      *storage.Characters
	encounters storage.EncounterStore
	resolver   *combat.Resolver
	monsters   combat.DecisionProvider
	locks      *keyedMutex
	logger     *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: chars, encounters, resolver and monsters must be non-nil.
// Postcondition: Returns a non-nil *Engine; a nil logger is replaced by a no-op logger.
func NewEngine(
	chars storage.CharacterStore,
	encounters storage.EncounterStore,
	resolver *combat.Resolver,
	monsters combat.DecisionProvider,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		chars:      storage.NewCharacters(chars),
		encounters: encounters,
		resolver:   resolver,
		monsters:   monsters,
		locks:      newKeyedMutex(),
		logger:     logger,
	}
}

// Catalog returns the stat tables the engine plays with.
func (e *Engine) Catalog() *catalog.Catalog { return e.resolver.Catalog() }

// TakeTurn plays req.Turn for req.ActorID and then every monster turn that
// follows it, until a player is at the front of the rotation again or the
// encounter resolves.
//
// Precondition: req.Secret is the plaintext secret of the actor.
// Postcondition: On a validation error nothing is persisted. Otherwise every
// completed turn is persisted before the next one starts.
func (e *Engine) TakeTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	return e.PlayTurn(ctx, req.ActorID, req.Secret, combat.FixedDecision(req.Turn))
}

// PlayTurn is TakeTurn with the turn chosen by decide from a snapshot of the
// encounter.
func (e *Engine) PlayTurn(ctx context.Context, actorID, secret string, decide combat.DecisionProvider) (*TurnResult, error) {
	actor, err := e.chars.Get(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("loading actor: %w", err)
	}
	if err := authorize(actor, secret); err != nil {
		return nil, err
	}
	if !actor.Alive() {
		return nil, fmt.Errorf("%s: %w", actor.Name, combat.ErrDead)
	}
	if !actor.Fighting() {
		return nil, fmt.Errorf("%s: %w", actor.Name, combat.ErrNotFighting)
	}

	encID := actor.EncounterID
	unlock := e.locks.Lock(encounterKey(encID))
	defer unlock()

	s, release, err := e.load(ctx, encID)
	if err != nil {
		return nil, err
	}
	defer release()

	turn, err := decide.Decide(ctx, s.Clone(), actorID)
	if err != nil {
		return nil, fmt.Errorf("deciding turn for %s: %w", actor.Name, err)
	}

	res := &TurnResult{EncounterID: encID}
	if err := e.play(ctx, s, actorID, turn, res); err != nil {
		return nil, err
	}
	if err := e.cascade(ctx, s, res); err != nil {
		return res, err
	}
	return res, nil
}

// StartEncounter puts the characters with ids into a new encounter, rolls
// initiative, and plays the monster turns that lead the rotation.
//
// Precondition: the characters span at least two parties, are alive and not
// already fighting.
// Postcondition: every participant is Fighting in the returned encounter,
// unless the leading monsters already resolved it.
func (e *Engine) StartEncounter(ctx context.Context, ids []string) (*TurnResult, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			return nil, fmt.Errorf("%s: %w", id, combat.ErrDuplicateParticipant)
		}
		keys[i] = characterKey(id)
	}
	unlockChars := e.locks.LockAll(keys...)
	defer unlockChars()

	chars, err := e.chars.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range chars {
		if !c.Alive() {
			return nil, fmt.Errorf("%s: %w", c.Name, combat.ErrDead)
		}
		if c.Fighting() {
			return nil, fmt.Errorf("%s: %w", c.Name, character.ErrFighting)
		}
	}
	if combat.DistinctParties(chars) < 2 {
		return nil, combat.ErrTooFewParties
	}

	rotation := combat.RollInitiative(e.resolver.Roller(), chars)
	enc, err := e.encounters.Create(ctx, rotation)
	if err != nil {
		return nil, fmt.Errorf("creating encounter: %w", err)
	}
	// Taken before any participant records the id, so it never waits.
	unlockEnc := e.locks.Lock(encounterKey(enc.ID))
	defer unlockEnc()

	for _, c := range chars {
		c.Status = character.StatusFighting
		c.EncounterID = enc.ID
	}
	if err := e.chars.PutAll(ctx, chars); err != nil {
		return nil, err
	}
	e.logger.Info("encounter created",
		zap.String("encounter_id", enc.ID),
		zap.Strings("rotation", enc.Rotation),
	)

	res := &TurnResult{EncounterID: enc.ID, Next: enc.Active()}
	if err := e.cascade(ctx, combat.NewState(enc, chars), res); err != nil {
		return res, err
	}
	return res, nil
}

// StartQuest spawns monsters into a fresh party and starts an encounter
// between them and the player.
func (e *Engine) StartQuest(ctx context.Context, playerID, secret string, monsters ...catalog.Monster) (*TurnResult, error) {
	if len(monsters) == 0 {
		return nil, combat.ErrTooFewParties
	}
	player, err := e.chars.Get(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	if err := authorize(player, secret); err != nil {
		return nil, err
	}
	if player.Fighting() {
		return nil, fmt.Errorf("%s: %w", player.Name, character.ErrFighting)
	}

	party := uuid.New().String()
	ids := []string{player.ID}
	for _, m := range monsters {
		c, err := character.NewMonster(e.Catalog(), m, party)
		if err != nil {
			return nil, err
		}
		if err := e.chars.Put(ctx, c); err != nil {
			return nil, fmt.Errorf("spawning %s: %w", c.Name, err)
		}
		ids = append(ids, c.ID)
	}
	res, err := e.StartEncounter(ctx, ids)
	if err != nil && res == nil {
		for _, id := range ids[1:] {
			if derr := e.chars.Delete(ctx, id); derr != nil {
				e.logger.Warn("removing unused monster", zap.String("id", id), zap.Error(derr))
			}
		}
	}
	return res, err
}

// Encounter returns a snapshot of the encounter with id and its participants.
func (e *Engine) Encounter(ctx context.Context, id string) (*combat.State, error) {
	unlock := e.locks.Lock(encounterKey(id))
	defer unlock()
	s, release, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	release()
	return s, nil
}

// load reads the encounter with encID and locks and reads its participants.
//
// Precondition: the caller holds the encounter's lock.
// Postcondition: on success the participants stay locked until release is called.
func (e *Engine) load(ctx context.Context, encID string) (s *combat.State, release func(), err error) {
	enc, err := e.encounters.Get(ctx, encID)
	if err != nil {
		if errors.Is(err, storage.ErrEncounterNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", encID, combat.ErrNotFighting)
		}
		return nil, nil, fmt.Errorf("loading encounter: %w", err)
	}
	ids := enc.Participants()
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = characterKey(id)
	}
	release = e.locks.LockAll(keys...)
	chars, err := e.chars.GetMany(ctx, ids)
	if err != nil {
		release()
		return nil, nil, err
	}
	return combat.NewState(enc, chars), release, nil
}

// play executes one turn and persists it.
func (e *Engine) play(ctx context.Context, s *combat.State, actorID string, turn combat.Turn, res *TurnResult) error {
	out, err := e.resolver.PlayTurn(s, actorID, turn)
	if err != nil {
		return err
	}
	e.logger.Info("turn taken",
		zap.String("encounter_id", s.Encounter.ID),
		zap.String("actor", actorID),
		zap.Int("events", len(out.Events)),
	)
	res.Events = append(res.Events, out.Events...)
	res.Next = s.Encounter.Active()
	if out.Resolved {
		res.Resolved = true
		res.Winner = out.Winner
		res.Next = ""
	}
	return e.persist(ctx, s, out.Resolved)
}

// cascade plays monster turns while a monster is at the front of the rotation.
func (e *Engine) cascade(ctx context.Context, s *combat.State, res *TurnResult) error {
	for n := 0; !res.Resolved; n++ {
		front, ok := s.Character(s.Encounter.Active())
		if !ok || front.IsPlayer() {
			return nil
		}
		if n == MaxMonsterTurns {
			e.logger.Warn("monster turn limit reached",
				zap.String("encounter_id", s.Encounter.ID),
				zap.Int("turns", n),
			)
			return nil
		}
		turn, err := e.monsters.Decide(ctx, s.Clone(), front.ID)
		if err != nil {
			return fmt.Errorf("deciding turn for %s: %w", front.Name, err)
		}
		if err := e.play(ctx, s, front.ID, turn, res); err != nil {
			return fmt.Errorf("monster %s: %w", front.Name, err)
		}
	}
	return nil
}

// persist writes every participant and the encounter. A resolved encounter
// is deleted together with every monster that took part in it.
func (e *Engine) persist(ctx context.Context, s *combat.State, resolved bool) error {
	var monsters []string
	for _, id := range s.Encounter.Participants() {
		c := s.Characters[id]
		if resolved && !c.IsPlayer() {
			monsters = append(monsters, id)
			continue
		}
		if err := e.chars.Put(ctx, c); err != nil {
			return fmt.Errorf("saving %s: %w", c.Name, err)
		}
	}
	if !resolved {
		if err := e.encounters.Update(ctx, s.Encounter); err != nil {
			return fmt.Errorf("saving encounter: %w", err)
		}
		return nil
	}
	for _, id := range monsters {
		if err := e.chars.Delete(ctx, id); err != nil {
			return fmt.Errorf("removing monster %s: %w", id, err)
		}
	}
	if err := e.encounters.Delete(ctx, s.Encounter.ID); err != nil {
		return fmt.Errorf("removing encounter: %w", err)
	}
	return nil
}

// authorize checks secret against the bcrypt hash stored on c. Characters
// without a secret, monsters included, cannot be driven by callers.
func authorize(c *character.Character, secret string) error {
	if c.Secret == "" || bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) != nil {
		return fmt.Errorf("%s: %w", c.Name, combat.ErrUnauthorized)
	}
	return nil
}
