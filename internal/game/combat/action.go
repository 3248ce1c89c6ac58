package combat

import (
	"fmt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
)

// ActionKind selects what an Action does.
type ActionKind int

const (
	// ActionAttack is a main-hand attack against Target. Action slot only.
	ActionAttack ActionKind = iota + 1
	// ActionOffhandAttack is an off-hand attack against Target. Bonus slot only.
	ActionOffhandAttack
	// ActionUseItem uses Item on the actor.
	ActionUseItem
	// ActionUseItemOn uses Item on Target.
	ActionUseItemOn
)

func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionOffhandAttack:
		return "offhand_attack"
	case ActionUseItem:
		return "use_item"
	case ActionUseItemOn:
		return "use_item_on"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// ParseActionKind is the inverse of ActionKind.String.
func ParseActionKind(s string) (ActionKind, error) {
	for k := ActionAttack; k <= ActionUseItemOn; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidAction)
}

// Action is one activity: the Action or the Bonus Action of a turn.
type Action struct {
	Kind   ActionKind
	Target string
	Item   catalog.Item
}

// Attack returns a main-hand attack on target.
func Attack(target string) *Action { return &Action{Kind: ActionAttack, Target: target} }

// OffhandAttack returns an off-hand attack on target.
func OffhandAttack(target string) *Action {
	return &Action{Kind: ActionOffhandAttack, Target: target}
}

// UseItem returns the use of item on the actor.
func UseItem(item catalog.Item) *Action { return &Action{Kind: ActionUseItem, Item: item} }

// UseItemOn returns the use of item on target.
func UseItemOn(item catalog.Item, target string) *Action {
	return &Action{Kind: ActionUseItemOn, Item: item, Target: target}
}

// Turn is the choice a participant makes for one turn. Either slot may be nil.
type Turn struct {
	Action *Action
	Bonus  *Action
}

func (a *Action) usesItem() bool {
	return a != nil && (a.Kind == ActionUseItem || a.Kind == ActionUseItemOn)
}

func (a *Action) hasTarget() bool {
	return a != nil && (a.Kind == ActionAttack || a.Kind == ActionOffhandAttack || a.Kind == ActionUseItemOn)
}
