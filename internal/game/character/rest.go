package character

import "github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"

// ShortRestsPerLongRest is how many short rests a long rest restores.
const ShortRestsPerLongRest = 2

// Heal adds amount to current health, capped at max health. Returns the
// amount actually restored.
func (c *Character) Heal(cat *catalog.Catalog, amount int) int {
	if amount <= 0 {
		return 0
	}
	maxHP := c.MaxHealth(cat)
	if c.Health >= maxHP {
		return 0
	}
	next := min(c.Health+amount, maxHP)
	healed := next - c.Health
	c.Health = next
	return healed
}

// ShortRest restores floor(max health / 2), capped at max health, and spends
// one short rest.
//
// Postcondition: ShortRests is decremented by one on success.
func (c *Character) ShortRest(cat *catalog.Catalog) (healed int, err error) {
	if err := c.checkIdle(); err != nil {
		return 0, err
	}
	if c.ShortRests <= 0 {
		return 0, ErrInsufficientShortRests
	}
	c.ShortRests--
	return c.Heal(cat, c.MaxHealth(cat)/2), nil
}

// LongRest restores full health and resets the short rests.
func (c *Character) LongRest(cat *catalog.Catalog) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	c.Health = c.MaxHealth(cat)
	c.ShortRests = ShortRestsPerLongRest
	return nil
}
