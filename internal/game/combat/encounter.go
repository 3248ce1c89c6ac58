package combat

import (
	"slices"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
)

// Encounter is the persisted state of one running combat.
//
// Invariant: Rotation is non-empty while the encounter is ongoing. Rotation[0]
// acts next.
type Encounter struct {
	ID       string   `json:"id"`
	Rotation []string `json:"rotation"`
	Dead     []string `json:"dead,omitempty"`
}

// Active returns the id at the front of the rotation, or "" if it is empty.
func (e *Encounter) Active() string {
	if len(e.Rotation) == 0 {
		return ""
	}
	return e.Rotation[0]
}

// InRotation reports whether id is still in the fight.
func (e *Encounter) InRotation(id string) bool {
	return slices.Contains(e.Rotation, id)
}

// Participants returns the rotation followed by the dead.
func (e *Encounter) Participants() []string {
	out := make([]string, 0, len(e.Rotation)+len(e.Dead))
	out = append(out, e.Rotation...)
	return append(out, e.Dead...)
}

// rotate moves id from its place in the rotation to the back.
func (e *Encounter) rotate(id string) {
	i := slices.Index(e.Rotation, id)
	if i < 0 {
		return
	}
	e.Rotation = append(slices.Delete(e.Rotation, i, i+1), id)
}

// kill moves id from the rotation to the dead list.
func (e *Encounter) kill(id string) {
	i := slices.Index(e.Rotation, id)
	if i < 0 {
		return
	}
	e.Rotation = slices.Delete(e.Rotation, i, i+1)
	e.Dead = append(e.Dead, id)
}

// Clone returns a deep copy of e.
func (e *Encounter) Clone() *Encounter {
	return &Encounter{ID: e.ID, Rotation: slices.Clone(e.Rotation), Dead: slices.Clone(e.Dead)}
}

// State is an encounter together with every character that takes part in it,
// living or dead. The engine mutates a State in memory; the caller persists it.
//
// State is not safe for concurrent use.
type State struct {
	Encounter  *Encounter
	Characters map[string]*character.Character
}

// NewState indexes chars by id.
func NewState(enc *Encounter, chars []*character.Character) *State {
	m := make(map[string]*character.Character, len(chars))
	for _, c := range chars {
		m[c.ID] = c
	}
	return &State{Encounter: enc, Characters: m}
}

// Character returns the participant with id.
func (s *State) Character(id string) (*character.Character, bool) {
	c, ok := s.Characters[id]
	return c, ok
}

// Survivors returns the characters in the rotation, in rotation order.
func (s *State) Survivors() []*character.Character {
	out := make([]*character.Character, 0, len(s.Encounter.Rotation))
	for _, id := range s.Encounter.Rotation {
		if c, ok := s.Characters[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Allies returns the living members of party in rotation order.
func (s *State) Allies(party string) []*character.Character {
	var out []*character.Character
	for _, c := range s.Survivors() {
		if c.Party == party && c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// Opponents returns the living characters in the rotation that are not in
// the party of id.
func (s *State) Opponents(id string) []*character.Character {
	self, ok := s.Characters[id]
	if !ok {
		return nil
	}
	var out []*character.Character
	for _, c := range s.Survivors() {
		if c.Party != self.Party && c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// Parties returns the distinct party ids remaining in the rotation, in order
// of first appearance.
func (s *State) Parties() []string {
	var out []string
	for _, c := range s.Survivors() {
		if !slices.Contains(out, c.Party) {
			out = append(out, c.Party)
		}
	}
	return out
}

// Resolved reports whether at most one party remains.
func (s *State) Resolved() bool {
	return len(s.Parties()) <= 1
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	chars := make(map[string]*character.Character, len(s.Characters))
	for id, c := range s.Characters {
		chars[id] = c.Clone()
	}
	return &State{Encounter: s.Encounter.Clone(), Characters: chars}
}
