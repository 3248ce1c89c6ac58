package character

import (
	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/condition"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// BaseArmorClass is the armor class of an unarmored character with a zero dexterity bonus.
const BaseArmorClass = 10

// Slot selects which hand an attack is made with.
type Slot int

const (
	MainHand Slot = iota
	OffHand
)

// AttackStats bundles the numbers needed for one attack. It is computed per
// attack and never persisted.
type AttackStats struct {
	Dice []dice.Die
	// AttackBonus is the flat bonus added once to the damage roll.
	AttackBonus int
	// HitBonus is added to the d20 attack roll.
	HitBonus int
}

// EffectiveScores returns the in-combat ability scores: base scores plus one
// per matching level-up choice plus the deltas of every active condition.
//
// Precondition: cat must be non-nil.
func (c *Character) EffectiveScores(cat *catalog.Catalog) Scores {
	s := c.Base
	for _, lu := range c.LevelUps {
		switch lu.Ability {
		case catalog.Strength:
			s.Strength++
		case catalog.Dexterity:
			s.Dexterity++
		case catalog.Constitution:
			s.Constitution++
		}
	}
	d := condition.Deltas(c.Conditions, cat)
	s.Strength += Strength(d.Strength)
	s.Dexterity += Dexterity(d.Dexterity)
	s.Constitution += Constitution(d.Constitution)
	return s
}

// MaxHealth returns 12 + 6*level + constitution bonus. No clamping is applied.
func (c *Character) MaxHealth(cat *catalog.Catalog) int {
	return 12 + 6*c.Level() + c.EffectiveScores(cat).Constitution.Bonus()
}

// ArmorClass returns 10 + armor bonus (only when the strength requirement is
// met) + dexterity bonus (capped by the armor, uncapped without armor) + the
// armor bonus of both held weapons + the armor bonus of all equipped jewelry.
func (c *Character) ArmorClass(cat *catalog.Catalog) int {
	scores := c.EffectiveScores(cat)
	ac := BaseArmorClass
	dex := scores.Dexterity.Bonus()
	if c.Armor != nil {
		def := cat.Armor(*c.Armor)
		if int(scores.Strength) >= def.StrengthRequirement {
			ac += def.ArmorBonus
		}
		if def.MaxDexterityBonus != nil && *def.MaxDexterityBonus < dex {
			dex = *def.MaxDexterityBonus
		}
	}
	ac += dex
	if c.MainHand != nil {
		ac += cat.Weapon(*c.MainHand).ArmorBonus
	}
	if c.OffHand != nil {
		ac += cat.Weapon(*c.OffHand).ArmorBonus
	}
	for _, j := range c.Jewelry {
		ac += cat.Jewelry(j).ArmorBonus
	}
	return ac
}

// scalingBonus returns the ability bonus a Scaling contributes.
func scalingBonus(s Scores, sc catalog.Scaling) int {
	switch sc {
	case catalog.ScalingStrength:
		return s.Strength.Bonus()
	case catalog.ScalingDexterity:
		return s.Dexterity.Bonus()
	case catalog.ScalingVersatile:
		return max(s.Strength.Bonus(), s.Dexterity.Bonus())
	default:
		return 0
	}
}

// UnarmedStats is the attack profile of an empty main hand: one d4 scaled by
// the better of strength and dexterity.
func (c *Character) UnarmedStats(cat *catalog.Catalog) AttackStats {
	s := c.EffectiveScores(cat)
	bonus := max(s.Strength.Bonus(), s.Dexterity.Bonus())
	return AttackStats{Dice: []dice.Die{dice.D4}, AttackBonus: bonus, HitBonus: bonus}
}

// AttackStats returns the attack profile of the weapon in slot. An empty main
// hand falls back to UnarmedStats; an empty off hand returns ok == false.
//
// Postcondition: ok is true for MainHand.
func (c *Character) AttackStats(cat *catalog.Catalog, slot Slot) (stats AttackStats, ok bool) {
	var w *catalog.Weapon
	switch slot {
	case MainHand:
		w = c.MainHand
		if w == nil {
			return c.UnarmedStats(cat), true
		}
	case OffHand:
		w = c.OffHand
		if w == nil {
			return AttackStats{}, false
		}
	default:
		return AttackStats{}, false
	}
	return c.SpellStats(cat, cat.Weapon(*w).WeaponStats), true
}

// SpellStats applies the ability-scaling rule to a fixed stat block (spells,
// thrown items, and weapon profiles alike).
func (c *Character) SpellStats(cat *catalog.Catalog, ws catalog.WeaponStats) AttackStats {
	bonus := scalingBonus(c.EffectiveScores(cat), ws.Scaling)
	diceCopy := make([]dice.Die, len(ws.Dice))
	copy(diceCopy, ws.Dice)
	return AttackStats{
		Dice:        diceCopy,
		AttackBonus: ws.AttackBonus + bonus,
		HitBonus:    ws.HitBonus + bonus,
	}
}

// CanDualWield reports whether an off-hand attack is possible.
func (c *Character) CanDualWield() bool {
	return c.OffHand != nil
}
