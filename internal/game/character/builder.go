package character

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
)

// NewPlayer creates a level 0 player character at full health, idle, with a
// fresh party of its own and both short rests available.
//
// Precondition: every score must be positive.
// Postcondition: Health == MaxHealth(cat); Party is a new unique id.
func NewPlayer(cat *catalog.Catalog, name, secretHash string, scores Scores) (*Character, error) {
	if scores.Strength <= 0 || scores.Dexterity <= 0 || scores.Constitution <= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidScores)
	}
	c := &Character{
		ID:         uuid.New().String(),
		Name:       name,
		Kind:       KindPlayer,
		Secret:     secretHash,
		Base:       scores,
		Party:      uuid.New().String(),
		Status:     StatusIdle,
		ShortRests: ShortRestsPerLongRest,
	}
	c.Health = c.MaxHealth(cat)
	return c, nil
}

// NewMonster spawns a monster of type m into party from its catalog stat block.
//
// Postcondition: Level() equals the stat block's level; the carried items are
// copies owned by the new character.
func NewMonster(cat *catalog.Catalog, m catalog.Monster, party string) (*Character, error) {
	def, ok := cat.Monster(m)
	if !ok {
		return nil, fmt.Errorf("spawning %d: %w", int(m), ErrUnknownMonster)
	}
	c := &Character{
		ID:      uuid.New().String(),
		Name:    def.Name,
		Kind:    KindMonster,
		Monster: m,
		Health:  def.Health,
		Base: Scores{
			Strength:     Strength(def.Strength),
			Dexterity:    Dexterity(def.Dexterity),
			Constitution: Constitution(def.Constitution),
		},
		Gold:      def.Gold,
		MainHand:  clonePtr(def.MainHand),
		OffHand:   clonePtr(def.OffHand),
		Armor:     clonePtr(def.Armor),
		Jewelry:   cloneSlice(def.Jewelry),
		Inventory: Inventory{Items: cloneSlice(def.Items)},
		Party:     party,
		Status:    StatusQuesting,
	}
	if def.Level > 0 {
		c.LevelUps = make([]LevelUp, def.Level)
	}
	return c, nil
}
