// Package catalog holds the static stat tables the encounter engine reads:
// weapons, armor, jewelry, consumable items, conditions and monsters, each
// keyed by a type tag. Lookups are pure and have no side effects.
package catalog

import (
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// WeaponStats is the fixed attack profile of a weapon or projectile.
type WeaponStats struct {
	Dice        []dice.Die `yaml:"dice" json:"dice"`
	AttackBonus int        `yaml:"attack_bonus" json:"attack_bonus"`
	HitBonus    int        `yaml:"hit_bonus" json:"hit_bonus"`
	Scaling     Scaling    `yaml:"scaling" json:"scaling"`
}

// WeaponDef is the stat block of a Weapon.
type WeaponDef struct {
	Name        string `yaml:"name"`
	WeaponStats `yaml:",inline"`
	// ArmorBonus is added to the wielder's armor class while equipped (shields).
	ArmorBonus int  `yaml:"armor_bonus"`
	TwoHanded  bool `yaml:"two_handed"`
	Cost       int  `yaml:"cost"`
}

// ArmorDef is the stat block of an Armor.
type ArmorDef struct {
	Name       string `yaml:"name"`
	ArmorBonus int    `yaml:"armor_bonus"`
	// MaxDexterityBonus caps the dexterity bonus added to armor class; nil = uncapped.
	MaxDexterityBonus *int `yaml:"max_dexterity_bonus"`
	// StrengthRequirement is the effective strength needed for ArmorBonus to apply.
	StrengthRequirement int `yaml:"strength_requirement"`
	Cost                int `yaml:"cost"`
}

// JewelryDef is the stat block of a Jewelry.
type JewelryDef struct {
	Name       string `yaml:"name"`
	ArmorBonus int    `yaml:"armor_bonus"`
	Cost       int    `yaml:"cost"`
}

// AbilityDeltas are signed adjustments to the three ability scores.
type AbilityDeltas struct {
	Strength     int `yaml:"strength" json:"strength"`
	Dexterity    int `yaml:"dexterity" json:"dexterity"`
	Constitution int `yaml:"constitution" json:"constitution"`
}

// ConditionDef is the stat block of a Condition.
type ConditionDef struct {
	Name   string        `yaml:"name"`
	Deltas AbilityDeltas `yaml:"deltas"`
}

// ItemDef is the stat block of a consumable Item.
//
// Exactly one of the effect payloads is meaningful, selected by Effect.
type ItemDef struct {
	Name   string `yaml:"name"`
	Effect Effect `yaml:"effect"`
	// Condition and Duration apply when Effect == EffectCondition. A nil
	// Duration makes the condition permanent until removed.
	Condition Condition `yaml:"condition"`
	Duration  *int      `yaml:"duration"`
	// Heal applies when Effect == EffectHeal.
	Heal int `yaml:"heal"`
	// Projectile applies when Effect == EffectProjectile.
	Projectile WeaponStats `yaml:"projectile"`
	Cost       int         `yaml:"cost"`
}

// NeedsTarget reports whether the item can only be used against a target.
func (d ItemDef) NeedsTarget() bool {
	return d.Effect == EffectProjectile
}

// MonsterDef is the stat block a monster character is spawned from.
type MonsterDef struct {
	Name         string    `yaml:"name"`
	Level        int       `yaml:"level"`
	Health       int       `yaml:"health"`
	Strength     int       `yaml:"strength"`
	Dexterity    int       `yaml:"dexterity"`
	Constitution int       `yaml:"constitution"`
	MainHand     *Weapon   `yaml:"main_hand"`
	OffHand      *Weapon   `yaml:"off_hand"`
	Armor        *Armor    `yaml:"armor"`
	Jewelry      []Jewelry `yaml:"jewelry"`
	Gold         int       `yaml:"gold"`
	Items        []Item    `yaml:"items"`
}
