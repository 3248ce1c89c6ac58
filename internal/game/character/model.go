// Package character defines the character domain model and the pure rules
// that act on it: the combat statistics model, equipment, rests and level-ups.
package character

import (
	"fmt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/condition"
)

// Strength, Dexterity and Constitution are distinct types so a score of one
// kind cannot be assigned to another by accident.
type (
	Strength     int
	Dexterity    int
	Constitution int
)

// Bonus returns the ability bonus of the score.
func (s Strength) Bonus() int { return AbilityBonus(int(s)) }

// Bonus returns the ability bonus of the score.
func (d Dexterity) Bonus() int { return AbilityBonus(int(d)) }

// Bonus returns the ability bonus of the score.
func (c Constitution) Bonus() int { return AbilityBonus(int(c)) }

// Scores holds the three combat ability scores.
type Scores struct {
	Strength     Strength     `json:"strength"`
	Dexterity    Dexterity    `json:"dexterity"`
	Constitution Constitution `json:"constitution"`
}

// AbilityBonus computes the ability bonus using floor division: floor((score - 10) / 2).
//
// Postcondition: Returns floor((score - 10) / 2).
func AbilityBonus(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Kind distinguishes player characters from monsters.
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k != KindPlayer && k != KindMonster {
		return nil, fmt.Errorf("character: cannot marshal kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player":
		*k = KindPlayer
	case "monster":
		*k = KindMonster
	default:
		return fmt.Errorf("character: unknown kind %q", b)
	}
	return nil
}

// Status is where a character is in the game loop.
type Status int

const (
	// StatusIdle is a character resting in town.
	StatusIdle Status = iota
	// StatusQuesting is a character out adventuring and not currently in combat.
	StatusQuesting
	// StatusFighting is a character taking part in an encounter (see EncounterID).
	StatusFighting
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusQuesting:
		return "questing"
	case StatusFighting:
		return "fighting"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if s < StatusIdle || s > StatusFighting {
		return nil, fmt.Errorf("character: cannot marshal status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StatusIdle
	case "questing":
		*s = StatusQuesting
	case "fighting":
		*s = StatusFighting
	default:
		return fmt.Errorf("character: unknown status %q", b)
	}
	return nil
}

// LevelUp is one level-up choice: an ability incremented by one and a class tag.
// Monster levels are recorded with a zero Ability and Class.
type LevelUp struct {
	Ability catalog.Ability `json:"ability,omitempty"`
	Class   catalog.Class   `json:"class,omitempty"`
}

// Inventory holds carried, unequipped gear. Slices keep insertion order and
// may hold duplicates.
type Inventory struct {
	Weapons []catalog.Weapon  `json:"weapons,omitempty"`
	Armor   []catalog.Armor   `json:"armor,omitempty"`
	Jewelry []catalog.Jewelry `json:"jewelry,omitempty"`
	Items   []catalog.Item    `json:"items,omitempty"`
}

// Empty reports whether the inventory holds nothing.
func (inv Inventory) Empty() bool {
	return len(inv.Weapons) == 0 && len(inv.Armor) == 0 && len(inv.Jewelry) == 0 && len(inv.Items) == 0
}

// Count returns how many units of v are in items.
func Count[T comparable](items []T, v T) int {
	n := 0
	for _, it := range items {
		if it == v {
			n++
		}
	}
	return n
}

// RemoveFirst removes the first slot holding v, in insertion order.
// Reports whether a slot was removed.
func RemoveFirst[T comparable](items *[]T, v T) bool {
	for i, it := range *items {
		if it == v {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return true
		}
	}
	return false
}

// Character is the combat-relevant view of a player or monster.
//
// Invariant: Level() == len(LevelUps); Alive() iff Health > 0.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	// Monster is the variant tag; meaningful only when Kind == KindMonster.
	Monster catalog.Monster `json:"monster,omitempty"`
	// Secret is the bcrypt hash of the owner's secret; empty for monsters.
	Secret string `json:"secret,omitempty"`

	Health     int    `json:"health"`
	Base       Scores `json:"base"`
	Gold       int    `json:"gold"`
	Experience int    `json:"experience"`

	MainHand *catalog.Weapon   `json:"main_hand,omitempty"`
	OffHand  *catalog.Weapon   `json:"off_hand,omitempty"`
	Armor    *catalog.Armor    `json:"armor,omitempty"`
	Jewelry  []catalog.Jewelry `json:"jewelry,omitempty"`

	Inventory  Inventory     `json:"inventory"`
	LevelUps   []LevelUp     `json:"level_ups,omitempty"`
	Party      string        `json:"party"`
	Conditions condition.Set `json:"conditions,omitempty"`

	Status      Status `json:"status"`
	EncounterID string `json:"encounter_id,omitempty"`
	ShortRests  int    `json:"short_rests"`
}

// Level returns the number of level-ups taken.
func (c *Character) Level() int { return len(c.LevelUps) }

// Alive reports whether current health is positive.
func (c *Character) Alive() bool { return c.Health > 0 }

// IsPlayer reports whether this is a player character.
func (c *Character) IsPlayer() bool { return c.Kind == KindPlayer }

// Fighting reports whether the character is currently in an encounter.
func (c *Character) Fighting() bool {
	return c.Status == StatusFighting && c.EncounterID != ""
}

// Clone returns a deep copy of c.
func (c *Character) Clone() *Character {
	out := *c
	out.MainHand = clonePtr(c.MainHand)
	out.OffHand = clonePtr(c.OffHand)
	out.Armor = clonePtr(c.Armor)
	out.Jewelry = cloneSlice(c.Jewelry)
	out.Inventory = Inventory{
		Weapons: cloneSlice(c.Inventory.Weapons),
		Armor:   cloneSlice(c.Inventory.Armor),
		Jewelry: cloneSlice(c.Inventory.Jewelry),
		Items:   cloneSlice(c.Inventory.Items),
	}
	out.LevelUps = cloneSlice(c.LevelUps)
	out.Conditions = c.Conditions.Clone()
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
