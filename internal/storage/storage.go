// Package storage defines the persistence interfaces the game engine
// consumes and the point operations layered on top of them.
package storage

import (
	"context"
	"errors"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
)

var (
	// ErrCharacterNotFound is returned when a character lookup yields no results.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrEncounterNotFound is returned when an encounter lookup yields no results.
	ErrEncounterNotFound = errors.New("encounter not found")
)

// CharacterStore persists whole character documents keyed by id.
type CharacterStore interface {
	// Get returns the character with id or ErrCharacterNotFound.
	Get(ctx context.Context, id string) (*character.Character, error)
	// Put inserts or replaces c.
	Put(ctx context.Context, c *character.Character) error
	// Delete removes the character with id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// EncounterStore persists encounter records.
type EncounterStore interface {
	// Create stores a new encounter with the given rotation and returns it with its id set.
	Create(ctx context.Context, rotation []string) (*combat.Encounter, error)
	// Get returns the encounter with id or ErrEncounterNotFound.
	Get(ctx context.Context, id string) (*combat.Encounter, error)
	// Update replaces the rotation and dead list of e, or returns ErrEncounterNotFound.
	Update(ctx context.Context, e *combat.Encounter) error
	// Delete removes the encounter with id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
