// Package condition tracks the timed and permanent status effects active on a
// character and folds them into ability-score adjustments.
package condition

import (
	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
)

// Active is one condition applied to a character.
type Active struct {
	Type catalog.Condition `json:"type"`
	// Duration is the number of the owner's turns left; nil = permanent until removed.
	Duration *int `json:"duration,omitempty"`
}

// Permanent reports whether the condition never expires on its own.
func (a Active) Permanent() bool { return a.Duration == nil }

// Turns returns a duration pointer for n turns.
func Turns(n int) *int { return &n }

// Set is the ordered list of conditions active on one character. At most one
// entry exists per condition type.
//
// Set is not safe for concurrent use; the caller must serialise access.
type Set []Active

// Apply adds a condition, replacing any existing condition of the same type
// (the new duration wins, it neither stacks nor keeps the longer one).
//
// Postcondition: Has(t) is true and exactly one entry of type t exists.
func (s *Set) Apply(t catalog.Condition, duration *int) {
	var d *int
	if duration != nil {
		d = Turns(*duration)
	}
	for i := range *s {
		if (*s)[i].Type == t {
			(*s)[i].Duration = d
			return
		}
	}
	*s = append(*s, Active{Type: t, Duration: d})
}

// Remove deletes the condition of type t. Reports whether it was present.
//
// Postcondition: Has(t) is false.
func (s *Set) Remove(t catalog.Condition) bool {
	for i := range *s {
		if (*s)[i].Type == t {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Tick decrements every timed condition by one turn and removes those whose
// duration reaches zero or below. Permanent conditions are unaffected.
//
// Postcondition: For every type in the returned slice, Has(type) is false.
func (s *Set) Tick() []catalog.Condition {
	var expired []catalog.Condition
	kept := (*s)[:0]
	for _, a := range *s {
		if a.Duration == nil {
			kept = append(kept, a)
			continue
		}
		left := *a.Duration - 1
		if left <= 0 {
			expired = append(expired, a.Type)
			continue
		}
		kept = append(kept, Active{Type: a.Type, Duration: Turns(left)})
	}
	*s = kept
	return expired
}

// Has reports whether a condition of type t is active.
func (s Set) Has(t catalog.Condition) bool {
	_, ok := s.Get(t)
	return ok
}

// Get returns the active condition of type t, if any.
func (s Set) Get(t catalog.Condition) (Active, bool) {
	for _, a := range s {
		if a.Type == t {
			return a, true
		}
	}
	return Active{}, false
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, a := range s {
		out[i] = Active{Type: a.Type}
		if a.Duration != nil {
			out[i].Duration = Turns(*a.Duration)
		}
	}
	return out
}
