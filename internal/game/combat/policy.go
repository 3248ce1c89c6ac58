package combat

import (
	"context"
	"errors"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// DefaultLowHealthThreshold is the health below which monsters drink potions.
const DefaultLowHealthThreshold = 5

// DecisionProvider chooses the turn of the character at the front of the rotation.
//
// Implementations must not mutate s.
type DecisionProvider interface {
	Decide(ctx context.Context, s *State, actorID string) (Turn, error)
}

// ErrNoOpponents is returned by MonsterPolicy when there is nothing to attack.
var ErrNoOpponents = errors.New("combat: no opponents")

// MonsterPolicy is the decision provider for monster turns.
//
// It attacks a living opponent chosen uniformly at random. Below the low
// health threshold it drinks the first healing item it carries as the bonus
// action; otherwise it makes an off-hand attack on the same target when it
// holds an off-hand weapon.
type MonsterPolicy struct {
	cat       *catalog.Catalog
	src       dice.Source
	lowHealth int
}

// NewMonsterPolicy creates a MonsterPolicy. A non-positive lowHealth selects
// DefaultLowHealthThreshold.
func NewMonsterPolicy(cat *catalog.Catalog, src dice.Source, lowHealth int) *MonsterPolicy {
	if lowHealth <= 0 {
		lowHealth = DefaultLowHealthThreshold
	}
	return &MonsterPolicy{cat: cat, src: src, lowHealth: lowHealth}
}

// Decide implements DecisionProvider.
func (p *MonsterPolicy) Decide(_ context.Context, s *State, actorID string) (Turn, error) {
	actor, ok := s.Character(actorID)
	if !ok {
		return Turn{}, ErrNotFighting
	}
	opponents := s.Opponents(actorID)
	if len(opponents) == 0 {
		return Turn{}, ErrNoOpponents
	}
	target := dice.Pick(p.src, opponents)
	turn := Turn{Action: Attack(target.ID)}

	if actor.Health < p.lowHealth {
		for _, it := range actor.Inventory.Items {
			if p.cat.Item(it).Effect == catalog.EffectHeal {
				turn.Bonus = UseItem(it)
				return turn, nil
			}
		}
	}
	if actor.CanDualWield() {
		turn.Bonus = OffhandAttack(target.ID)
	}
	return turn, nil
}

// FixedDecision always returns the same turn.
type FixedDecision Turn

// Decide implements DecisionProvider.
func (f FixedDecision) Decide(context.Context, *State, string) (Turn, error) {
	return Turn(f), nil
}

// DecisionFunc adapts a function to DecisionProvider.
type DecisionFunc func(ctx context.Context, s *State, actorID string) (Turn, error)

// Decide implements DecisionProvider.
func (f DecisionFunc) Decide(ctx context.Context, s *State, actorID string) (Turn, error) {
	return f(ctx, s, actorID)
}
