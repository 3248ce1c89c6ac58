package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
)

// Outcome is the result of one played turn.
type Outcome struct {
	// Events lists every effect in the order it occurred.
	Events []Event
	// Resolved is true when this turn ended the encounter.
	Resolved bool
	// Winner is the surviving party when Resolved.
	Winner string
}

// Resolver plays turns against an in-memory State.
type Resolver struct {
	cat    *catalog.Catalog
	roller Roller
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: cat and roller must be non-nil.
// Postcondition: Returns a non-nil *Resolver; a nil logger is replaced by a no-op logger.
func NewResolver(cat *catalog.Catalog, roller Roller, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{cat: cat, roller: roller, logger: logger}
}

// Catalog returns the stat tables the resolver consults.
func (r *Resolver) Catalog() *catalog.Catalog { return r.cat }

// Roller returns the randomness the resolver consumes.
func (r *Resolver) Roller() Roller { return r.roller }

// Validate checks that actorID may play t now. It never mutates s.
//
// Postcondition: Returns nil iff PlayTurn would execute t.
func (r *Resolver) Validate(s *State, actorID string, t Turn) error {
	actor, ok := s.Character(actorID)
	if !ok {
		return fmt.Errorf("%s: %w", actorID, ErrNotFighting)
	}
	if !actor.Alive() {
		return fmt.Errorf("%s: %w", actor.Name, ErrDead)
	}
	if actor.Status != character.StatusFighting || actor.EncounterID != s.Encounter.ID || s.Resolved() {
		return fmt.Errorf("%s: %w", actor.Name, ErrNotFighting)
	}
	if s.Encounter.Active() != actorID {
		return fmt.Errorf("%s: %w", actor.Name, ErrNotYourTurn)
	}
	if err := r.validateSlot(s, actor, t.Action, false); err != nil {
		return fmt.Errorf("action: %w", err)
	}
	if err := r.validateSlot(s, actor, t.Bonus, true); err != nil {
		return fmt.Errorf("bonus action: %w", err)
	}

	need := make(map[catalog.Item]int, 2)
	for _, a := range []*Action{t.Action, t.Bonus} {
		if a.usesItem() {
			need[a.Item]++
		}
	}
	for item, n := range need {
		if character.Count(actor.Inventory.Items, item) < n {
			return fmt.Errorf("%s: %w", item, ErrItemNotAvailable)
		}
	}
	return nil
}

func (r *Resolver) validateSlot(s *State, actor *character.Character, a *Action, bonus bool) error {
	if a == nil {
		return nil
	}
	switch a.Kind {
	case ActionAttack:
		if bonus {
			return fmt.Errorf("%s: %w", a.Kind, ErrInvalidAction)
		}
	case ActionOffhandAttack:
		if !bonus {
			return fmt.Errorf("%s: %w", a.Kind, ErrInvalidAction)
		}
		if !actor.CanDualWield() {
			return ErrNoOffhandWeapon
		}
	case ActionUseItem, ActionUseItemOn:
		def := r.cat.Item(a.Item)
		if def.Effect == 0 {
			return fmt.Errorf("item %d: %w", int(a.Item), ErrInvalidAction)
		}
		if a.Kind == ActionUseItem && def.NeedsTarget() {
			return fmt.Errorf("%s needs a target: %w", a.Item, ErrInvalidTarget)
		}
	default:
		return fmt.Errorf("%s: %w", a.Kind, ErrInvalidAction)
	}
	if a.hasTarget() && !s.Encounter.InRotation(a.Target) {
		return fmt.Errorf("%q: %w", a.Target, ErrInvalidTarget)
	}
	return nil
}

// PlayTurn validates t and, if valid, executes it for actorID: the Action,
// then the Bonus Action, reward distribution if a single party remains, the
// rotation step, and the countdown of the actor's conditions.
//
// Postcondition: On error s is unchanged.
func (r *Resolver) PlayTurn(s *State, actorID string, t Turn) (*Outcome, error) {
	if err := r.Validate(s, actorID, t); err != nil {
		return nil, err
	}
	actor := s.Characters[actorID]
	out := &Outcome{}

	r.perform(s, actor, t.Action, out)
	r.perform(s, actor, t.Bonus, out)

	if s.Resolved() {
		r.distributeRewards(s, out)
	}

	s.Encounter.rotate(actor.ID)
	for _, expired := range actor.Conditions.Tick() {
		r.emit(out, Event{
			Kind: EventConditionExpired, Target: actor.ID, TargetName: actor.Name, Condition: expired,
		})
	}
	return out, nil
}

func (r *Resolver) perform(s *State, actor *character.Character, a *Action, out *Outcome) {
	if a == nil {
		return
	}
	var target *character.Character
	if a.hasTarget() {
		if !s.Encounter.InRotation(a.Target) {
			r.logger.Warn("ignoring action on target no longer in rotation",
				zap.String("actor", actor.ID),
				zap.Stringer("action", a.Kind),
				zap.String("target", a.Target),
			)
			return
		}
		target = s.Characters[a.Target]
	}

	switch a.Kind {
	case ActionAttack, ActionOffhandAttack:
		slot := character.MainHand
		if a.Kind == ActionOffhandAttack {
			slot = character.OffHand
		}
		stats, ok := actor.AttackStats(r.cat, slot)
		if !ok {
			r.logger.Warn("ignoring off-hand attack without off-hand weapon", zap.String("actor", actor.ID))
			return
		}
		r.emit(out, Event{
			Kind: EventAttackDeclared, Actor: actor.ID, ActorName: actor.Name,
			Target: target.ID, TargetName: target.Name,
		})
		r.attack(s, actor, target, stats, out)
	case ActionUseItem, ActionUseItemOn:
		if !character.RemoveFirst(&actor.Inventory.Items, a.Item) {
			r.logger.Warn("ignoring use of missing item", zap.String("actor", actor.ID), zap.Stringer("item", a.Item))
			return
		}
		if target == nil {
			target = actor
			r.emit(out, Event{Kind: EventItemUsed, Actor: actor.ID, ActorName: actor.Name, Item: a.Item})
		} else {
			r.emit(out, Event{
				Kind: EventItemUsedOn, Actor: actor.ID, ActorName: actor.Name,
				Target: target.ID, TargetName: target.Name, Item: a.Item,
			})
		}
		r.applyItem(s, actor, target, r.cat.Item(a.Item), out)
	}
}

func (r *Resolver) applyItem(s *State, actor, target *character.Character, def catalog.ItemDef, out *Outcome) {
	switch def.Effect {
	case catalog.EffectCondition:
		target.Conditions.Apply(def.Condition, def.Duration)
		r.emit(out, Event{
			Kind: EventConditionApplied, Actor: actor.ID, ActorName: actor.Name,
			Target: target.ID, TargetName: target.Name, Condition: def.Condition,
		})
	case catalog.EffectHeal:
		healed := target.Heal(r.cat, def.Heal)
		r.emit(out, Event{
			Kind: EventHealed, Actor: actor.ID, ActorName: actor.Name,
			Target: target.ID, TargetName: target.Name, Amount: healed,
		})
	case catalog.EffectProjectile:
		r.attack(s, actor, target, actor.SpellStats(r.cat, def.Projectile), out)
	}
}

func (r *Resolver) attack(s *State, actor, target *character.Character, stats character.AttackStats, out *Outcome) {
	hit := ResolveAttack(r.roller, r.cat, stats, target)
	if hit == nil {
		r.emit(out, Event{
			Kind: EventMiss, Actor: actor.ID, ActorName: actor.Name,
			Target: target.ID, TargetName: target.Name,
		})
		return
	}
	r.emit(out, Event{
		Kind: EventHit, Actor: actor.ID, ActorName: actor.Name,
		Target: target.ID, TargetName: hit.Target, Damage: hit.Damage, Critical: hit.Critical,
	})
	if !target.Alive() {
		r.kill(s, actor, target, out)
	}
}

// kill removes target from the rotation and credits the experience it is
// worth to the killer's living party members.
func (r *Resolver) kill(s *State, killer, target *character.Character, out *Outcome) {
	s.Encounter.kill(target.ID)
	r.emit(out, Event{
		Kind: EventDeath, Actor: killer.ID, ActorName: killer.Name,
		Target: target.ID, TargetName: target.Name,
	})

	allies := s.Allies(killer.Party)
	if len(allies) == 0 {
		return
	}
	share := character.ExperienceGain(target.Level()) / len(allies)
	if share == 0 {
		return
	}
	for _, a := range allies {
		a.Experience += share
		r.emit(out, Event{Kind: EventExperienceGained, Target: a.ID, TargetName: a.Name, Amount: share})
	}
}

func (r *Resolver) emit(out *Outcome, e Event) {
	out.Events = append(out.Events, e)
	r.logger.Debug("combat event",
		zap.Stringer("kind", e.Kind),
		zap.String("actor", e.Actor),
		zap.String("target", e.Target),
		zap.String("narrative", e.String()),
	)
}
