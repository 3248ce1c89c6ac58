package character

import (
	"fmt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
)

// MaxJewelry is the number of jewelry slots.
const MaxJewelry = 3

func (c *Character) checkIdle() error {
	if c.Status == StatusFighting {
		return ErrFighting
	}
	return nil
}

// EquipMainHand moves w from the inventory into the main hand. The previous
// main-hand weapon returns to the inventory. Equipping a two-handed weapon
// also returns the off-hand weapon to the inventory.
//
// Precondition: w must be in Inventory.Weapons.
// Postcondition: MainHand == w; OffHand is nil if w is two-handed.
func (c *Character) EquipMainHand(cat *catalog.Catalog, w catalog.Weapon) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if !RemoveFirst(&c.Inventory.Weapons, w) {
		return fmt.Errorf("equipping %s: %w", w, ErrNotInInventory)
	}
	if c.MainHand != nil {
		c.Inventory.Weapons = append(c.Inventory.Weapons, *c.MainHand)
	}
	c.MainHand = &w
	if cat.Weapon(w).TwoHanded && c.OffHand != nil {
		c.Inventory.Weapons = append(c.Inventory.Weapons, *c.OffHand)
		c.OffHand = nil
	}
	return nil
}

// EquipOffHand moves w from the inventory into the off hand.
//
// Precondition: w must be in Inventory.Weapons, must not be two-handed, and
// the main hand must not hold a two-handed weapon.
func (c *Character) EquipOffHand(cat *catalog.Catalog, w catalog.Weapon) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if cat.Weapon(w).TwoHanded {
		return fmt.Errorf("equipping %s in off hand: %w", w, ErrTwoHandedConflict)
	}
	if c.MainHand != nil && cat.Weapon(*c.MainHand).TwoHanded {
		return fmt.Errorf("equipping %s with %s: %w", w, *c.MainHand, ErrTwoHandedConflict)
	}
	if !RemoveFirst(&c.Inventory.Weapons, w) {
		return fmt.Errorf("equipping %s: %w", w, ErrNotInInventory)
	}
	if c.OffHand != nil {
		c.Inventory.Weapons = append(c.Inventory.Weapons, *c.OffHand)
	}
	c.OffHand = &w
	return nil
}

// UnequipMainHand returns the main-hand weapon to the inventory.
func (c *Character) UnequipMainHand() error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if c.MainHand == nil {
		return fmt.Errorf("main hand: %w", ErrNothingEquipped)
	}
	c.Inventory.Weapons = append(c.Inventory.Weapons, *c.MainHand)
	c.MainHand = nil
	return nil
}

// UnequipOffHand returns the off-hand weapon to the inventory.
func (c *Character) UnequipOffHand() error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if c.OffHand == nil {
		return fmt.Errorf("off hand: %w", ErrNothingEquipped)
	}
	c.Inventory.Weapons = append(c.Inventory.Weapons, *c.OffHand)
	c.OffHand = nil
	return nil
}

// EquipArmor swaps a with the currently worn armor.
func (c *Character) EquipArmor(a catalog.Armor) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if !RemoveFirst(&c.Inventory.Armor, a) {
		return fmt.Errorf("equipping %s: %w", a, ErrNotInInventory)
	}
	if c.Armor != nil {
		c.Inventory.Armor = append(c.Inventory.Armor, *c.Armor)
	}
	c.Armor = &a
	return nil
}

// UnequipArmor returns the worn armor to the inventory.
func (c *Character) UnequipArmor() error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if c.Armor == nil {
		return fmt.Errorf("armor: %w", ErrNothingEquipped)
	}
	c.Inventory.Armor = append(c.Inventory.Armor, *c.Armor)
	c.Armor = nil
	return nil
}

// EquipJewelry puts on j.
//
// Precondition: fewer than MaxJewelry pieces are equipped.
func (c *Character) EquipJewelry(j catalog.Jewelry) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if len(c.Jewelry) >= MaxJewelry {
		return ErrJewelrySlotsFull
	}
	if !RemoveFirst(&c.Inventory.Jewelry, j) {
		return fmt.Errorf("equipping %s: %w", j, ErrNotInInventory)
	}
	c.Jewelry = append(c.Jewelry, j)
	return nil
}

// UnequipJewelry takes off the first equipped piece matching j.
func (c *Character) UnequipJewelry(j catalog.Jewelry) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if !RemoveFirst(&c.Jewelry, j) {
		return fmt.Errorf("%s: %w", j, ErrNothingEquipped)
	}
	c.Inventory.Jewelry = append(c.Inventory.Jewelry, j)
	return nil
}

// StripGear removes everything the character carries or wears and returns it
// as one inventory, equipped gear first. Used when looting the dead.
func (c *Character) StripGear() Inventory {
	var out Inventory
	if c.MainHand != nil {
		out.Weapons = append(out.Weapons, *c.MainHand)
	}
	if c.OffHand != nil {
		out.Weapons = append(out.Weapons, *c.OffHand)
	}
	if c.Armor != nil {
		out.Armor = append(out.Armor, *c.Armor)
	}
	out.Jewelry = append(out.Jewelry, c.Jewelry...)
	out.Weapons = append(out.Weapons, c.Inventory.Weapons...)
	out.Armor = append(out.Armor, c.Inventory.Armor...)
	out.Jewelry = append(out.Jewelry, c.Inventory.Jewelry...)
	out.Items = append(out.Items, c.Inventory.Items...)

	c.MainHand, c.OffHand, c.Armor, c.Jewelry = nil, nil, nil, nil
	c.Inventory = Inventory{}
	return out
}
