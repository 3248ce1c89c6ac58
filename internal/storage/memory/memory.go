// Package memory provides in-process stores for tests and single-run games.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

// CharacterStore keeps deep copies of characters in a map.
type CharacterStore struct {
	mu    sync.RWMutex
	chars map[string]*character.Character
}

// NewCharacterStore creates an empty CharacterStore.
func NewCharacterStore() *CharacterStore {
	return &CharacterStore{chars: make(map[string]*character.Character)}
}

func (s *CharacterStore) Get(_ context.Context, id string) (*character.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chars[id]
	if !ok {
		return nil, storage.ErrCharacterNotFound
	}
	return c.Clone(), nil
}

func (s *CharacterStore) Put(_ context.Context, c *character.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chars[c.ID] = c.Clone()
	return nil
}

func (s *CharacterStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chars, id)
	return nil
}

// Len returns the number of stored characters.
func (s *CharacterStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chars)
}

// EncounterStore keeps deep copies of encounters in a map.
type EncounterStore struct {
	mu         sync.RWMutex
	encounters map[string]*combat.Encounter
}

// NewEncounterStore creates an empty EncounterStore.
func NewEncounterStore() *EncounterStore {
	return &EncounterStore{encounters: make(map[string]*combat.Encounter)}
}

func (s *EncounterStore) Create(_ context.Context, rotation []string) (*combat.Encounter, error) {
	e := &combat.Encounter{ID: uuid.New().String(), Rotation: append([]string(nil), rotation...)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encounters[e.ID] = e.Clone()
	return e, nil
}

func (s *EncounterStore) Get(_ context.Context, id string) (*combat.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.encounters[id]
	if !ok {
		return nil, storage.ErrEncounterNotFound
	}
	return e.Clone(), nil
}

func (s *EncounterStore) Update(_ context.Context, e *combat.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.encounters[e.ID]; !ok {
		return storage.ErrEncounterNotFound
	}
	s.encounters[e.ID] = e.Clone()
	return nil
}

func (s *EncounterStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.encounters, id)
	return nil
}

// Len returns the number of stored encounters.
func (s *EncounterStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.encounters)
}
