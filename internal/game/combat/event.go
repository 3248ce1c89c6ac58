package combat

import (
	"fmt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
)

// EventKind identifies a reportable effect.
type EventKind int

const (
	EventAttackDeclared EventKind = iota + 1
	EventHit
	EventMiss
	EventDeath
	EventConditionApplied
	EventConditionExpired
	EventHealed
	EventItemUsed
	EventItemUsedOn
	EventExperienceGained
	EventGoldReceived
	EventLootReceived
	EventEncounterResolved
)

var eventKindNames = map[EventKind]string{
	EventAttackDeclared:    "attack_declared",
	EventHit:               "hit",
	EventMiss:              "miss",
	EventDeath:             "death",
	EventConditionApplied:  "condition_applied",
	EventConditionExpired:  "condition_expired",
	EventHealed:            "healed",
	EventItemUsed:          "item_used",
	EventItemUsedOn:        "item_used_on",
	EventExperienceGained:  "experience_gained",
	EventGoldReceived:      "gold_received",
	EventLootReceived:      "loot_received",
	EventEncounterResolved: "encounter_resolved",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one effect that occurred during a turn, in the order it occurred.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind       EventKind
	Actor      string
	ActorName  string
	Target     string
	TargetName string
	Damage     int
	Critical   bool
	// Amount is the healing, experience or gold involved.
	Amount    int
	Item      catalog.Item
	Condition catalog.Condition
	Loot      character.Inventory
	// Party is the winning party of EventEncounterResolved.
	Party string
}

// String renders the event as one line of narrative.
func (e Event) String() string {
	switch e.Kind {
	case EventAttackDeclared:
		return fmt.Sprintf("%s attacks %s.", e.ActorName, e.TargetName)
	case EventHit:
		if e.Critical {
			return fmt.Sprintf("%s critically hits %s for %d damage.", e.ActorName, e.TargetName, e.Damage)
		}
		return fmt.Sprintf("%s hits %s for %d damage.", e.ActorName, e.TargetName, e.Damage)
	case EventMiss:
		return fmt.Sprintf("%s misses %s.", e.ActorName, e.TargetName)
	case EventDeath:
		return fmt.Sprintf("%s dies.", e.TargetName)
	case EventConditionApplied:
		return fmt.Sprintf("%s is now %s.", e.TargetName, e.Condition)
	case EventConditionExpired:
		return fmt.Sprintf("%s is no longer %s.", e.TargetName, e.Condition)
	case EventHealed:
		return fmt.Sprintf("%s heals %d.", e.TargetName, e.Amount)
	case EventItemUsed:
		return fmt.Sprintf("%s uses %s.", e.ActorName, e.Item)
	case EventItemUsedOn:
		return fmt.Sprintf("%s uses %s on %s.", e.ActorName, e.Item, e.TargetName)
	case EventExperienceGained:
		return fmt.Sprintf("%s gains %d experience.", e.TargetName, e.Amount)
	case EventGoldReceived:
		return fmt.Sprintf("%s receives %d gold.", e.TargetName, e.Amount)
	case EventLootReceived:
		n := len(e.Loot.Weapons) + len(e.Loot.Armor) + len(e.Loot.Jewelry) + len(e.Loot.Items)
		return fmt.Sprintf("%s loots %d items.", e.TargetName, n)
	case EventEncounterResolved:
		return fmt.Sprintf("The encounter is over. Party %s wins.", e.Party)
	default:
		return e.Kind.String()
	}
}
