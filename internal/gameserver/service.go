package gameserver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

// ErrInsufficientGold is returned when a purchase costs more than the buyer carries.
var ErrInsufficientGold = errors.New("insufficient gold")

// Service manages player characters outside of combat. Every mutating call
// is authorized against the character's secret and persisted on success.
//
// Service shares the character locks of the Engine it was built from, so a
// write never lands between a turn's load and its persist.
type Service struct {
	chars      *storage.Characters
	cat        *catalog.Catalog
	locks      *keyedMutex
	bcryptCost int
	logger     *zap.Logger
}

// NewService creates a Service over the stores and catalog of engine. A
// bcryptCost outside bcrypt's accepted range selects bcrypt.DefaultCost.
//
// Precondition: engine must be non-nil.
func NewService(engine *Engine, bcryptCost int, logger *zap.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		chars:      engine.chars,
		cat:        engine.Catalog(),
		locks:      engine.locks,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// CreatePlayer creates and stores a new level 0 player owned by secret.
//
// Postcondition: the stored Secret is a bcrypt hash of secret.
func (s *Service) CreatePlayer(ctx context.Context, name, secret string, scores character.Scores) (*character.Character, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing secret: %w", err)
	}
	c, err := character.NewPlayer(s.cat, name, string(hash), scores)
	if err != nil {
		return nil, err
	}
	if err := s.chars.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("saving %s: %w", name, err)
	}
	s.logger.Info("player created", zap.String("id", c.ID), zap.String("name", name))
	return c, nil
}

// Character returns the character with id.
func (s *Service) Character(ctx context.Context, id string) (*character.Character, error) {
	return s.chars.Get(ctx, id)
}

// Give adds loot to the inventory of the character with id. It is the
// administrative counterpart of combat loot and needs no secret.
func (s *Service) Give(ctx context.Context, id string, loot character.Inventory) (*character.Character, error) {
	unlock := s.locks.Lock(characterKey(id))
	defer unlock()
	return s.chars.Update(ctx, id, func(c *character.Character) error {
		c.Inventory.Weapons = append(c.Inventory.Weapons, loot.Weapons...)
		c.Inventory.Armor = append(c.Inventory.Armor, loot.Armor...)
		c.Inventory.Jewelry = append(c.Inventory.Jewelry, loot.Jewelry...)
		c.Inventory.Items = append(c.Inventory.Items, loot.Items...)
		return nil
	})
}

// update authorizes secret for the character with id and applies fn to it.
func (s *Service) update(ctx context.Context, id, secret string, fn func(*character.Character) error) (*character.Character, error) {
	unlock := s.locks.Lock(characterKey(id))
	defer unlock()
	return s.chars.Update(ctx, id, func(c *character.Character) error {
		if err := authorize(c, secret); err != nil {
			return err
		}
		return fn(c)
	})
}

// EquipMainHand moves w from the inventory to the main hand.
func (s *Service) EquipMainHand(ctx context.Context, id, secret string, w catalog.Weapon) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.EquipMainHand(s.cat, w) })
}

// EquipOffHand moves w from the inventory to the off hand.
func (s *Service) EquipOffHand(ctx context.Context, id, secret string, w catalog.Weapon) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.EquipOffHand(s.cat, w) })
}

// UnequipMainHand returns the main-hand weapon to the inventory.
func (s *Service) UnequipMainHand(ctx context.Context, id, secret string) (*character.Character, error) {
	return s.update(ctx, id, secret, (*character.Character).UnequipMainHand)
}

// UnequipOffHand returns the off-hand weapon to the inventory.
func (s *Service) UnequipOffHand(ctx context.Context, id, secret string) (*character.Character, error) {
	return s.update(ctx, id, secret, (*character.Character).UnequipOffHand)
}

// EquipArmor wears a from the inventory.
func (s *Service) EquipArmor(ctx context.Context, id, secret string, a catalog.Armor) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.EquipArmor(a) })
}

// UnequipArmor returns the worn armor to the inventory.
func (s *Service) UnequipArmor(ctx context.Context, id, secret string) (*character.Character, error) {
	return s.update(ctx, id, secret, (*character.Character).UnequipArmor)
}

// EquipJewelry wears j from the inventory.
func (s *Service) EquipJewelry(ctx context.Context, id, secret string, j catalog.Jewelry) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.EquipJewelry(j) })
}

// UnequipJewelry returns one worn j to the inventory.
func (s *Service) UnequipJewelry(ctx context.Context, id, secret string, j catalog.Jewelry) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.UnequipJewelry(j) })
}

// ShortRest spends a short rest and returns the health restored.
func (s *Service) ShortRest(ctx context.Context, id, secret string) (int, error) {
	var healed int
	_, err := s.update(ctx, id, secret, func(c *character.Character) error {
		var err error
		healed, err = c.ShortRest(s.cat)
		return err
	})
	return healed, err
}

// LongRest restores full health and both short rests.
func (s *Service) LongRest(ctx context.Context, id, secret string) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.LongRest(s.cat) })
}

// LevelUp spends experience on a level in class, raising ability.
func (s *Service) LevelUp(ctx context.Context, id, secret string, ability catalog.Ability, class catalog.Class) (*character.Character, error) {
	return s.update(ctx, id, secret, func(c *character.Character) error { return c.LevelUp(ability, class) })
}

// BuyItem pays the catalog cost of item and adds it to the inventory.
func (s *Service) BuyItem(ctx context.Context, id, secret string, item catalog.Item) (*character.Character, error) {
	cost := s.cat.Item(item).Cost
	return s.update(ctx, id, secret, func(c *character.Character) error {
		if err := pay(c, cost); err != nil {
			return fmt.Errorf("%s: %w", item, err)
		}
		c.Inventory.Items = append(c.Inventory.Items, item)
		return nil
	})
}

// BuyWeapon pays the catalog cost of w and adds it to the inventory.
func (s *Service) BuyWeapon(ctx context.Context, id, secret string, w catalog.Weapon) (*character.Character, error) {
	cost := s.cat.Weapon(w).Cost
	return s.update(ctx, id, secret, func(c *character.Character) error {
		if err := pay(c, cost); err != nil {
			return fmt.Errorf("%s: %w", w, err)
		}
		c.Inventory.Weapons = append(c.Inventory.Weapons, w)
		return nil
	})
}

func pay(c *character.Character, cost int) error {
	if c.Status == character.StatusFighting {
		return character.ErrFighting
	}
	if c.Gold < cost {
		return ErrInsufficientGold
	}
	c.Gold -= cost
	return nil
}
