package character

import (
	"fmt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
)

// ExperienceGain is the experience a kill of a character at level is worth.
func ExperienceGain(level int) int {
	return 100 * (level + 1)
}

// LevelUpThreshold is the experience required to advance past level.
func LevelUpThreshold(level int) int {
	return 1000 * (level + 1)
}

// LevelUp records one level-up choice. Experience is not consumed; the
// threshold grows with the level.
//
// Precondition: Experience >= LevelUpThreshold(Level()).
// Postcondition: Level() is incremented; the chosen ability rises by one.
func (c *Character) LevelUp(ability catalog.Ability, class catalog.Class) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if need := LevelUpThreshold(c.Level()); c.Experience < need {
		return fmt.Errorf("have %d, need %d: %w", c.Experience, need, ErrNotEnoughExperience)
	}
	c.LevelUps = append(c.LevelUps, LevelUp{Ability: ability, Class: class})
	return nil
}
