package character

import "errors"

var (
	// ErrTwoHandedConflict is returned when an off-hand weapon would be held
	// alongside a two-handed main-hand weapon.
	ErrTwoHandedConflict = errors.New("character: two-handed weapon conflicts with off-hand")
	// ErrNotInInventory is returned when equipping gear the character does not carry.
	ErrNotInInventory = errors.New("character: not in inventory")
	// ErrNothingEquipped is returned when unequipping an empty slot.
	ErrNothingEquipped = errors.New("character: nothing equipped")
	// ErrJewelrySlotsFull is returned when equipping a fourth piece of jewelry.
	ErrJewelrySlotsFull = errors.New("character: jewelry slots full")
	// ErrInsufficientShortRests is returned when no short rests remain before a long rest.
	ErrInsufficientShortRests = errors.New("character: no short rests remaining")
	// ErrFighting is returned for management operations attempted during an encounter.
	ErrFighting = errors.New("character: cannot do that while fighting")
	// ErrNotEnoughExperience is returned when leveling up below the threshold.
	ErrNotEnoughExperience = errors.New("character: not enough experience")
	// ErrInvalidScores is returned by NewPlayer for non-positive ability scores.
	ErrInvalidScores = errors.New("character: ability scores must be positive")
	// ErrUnknownMonster is returned when spawning a monster the catalog does not define.
	ErrUnknownMonster = errors.New("character: unknown monster")
)
