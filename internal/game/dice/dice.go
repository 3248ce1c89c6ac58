// Package dice provides the die enum and the randomness abstraction used by
// every random decision in the encounter engine: damage and attack rolls,
// initiative, monster target choice and loot recipient choice.
package dice

import (
	"fmt"
	"strings"
)

// Die is one of the fixed polyhedral dice used by the game.
type Die int

const (
	D4 Die = iota + 1
	D6
	D8
	D10
	D20
)

var dieFaces = map[Die]int{
	D4:  4,
	D6:  6,
	D8:  8,
	D10: 10,
	D20: 20,
}

// Faces returns the number of faces on d.
//
// Postcondition: Returns one of 4, 6, 8, 10, 20 for a valid Die, 0 otherwise.
func (d Die) Faces() int {
	return dieFaces[d]
}

// Valid reports whether d is one of the known dice.
func (d Die) Valid() bool {
	_, ok := dieFaces[d]
	return ok
}

// String returns the conventional name of the die, e.g. "d20".
func (d Die) String() string {
	if !d.Valid() {
		return "d?"
	}
	return fmt.Sprintf("d%d", d.Faces())
}

// ParseDie maps "d4".."d20" (case-insensitive) back to a Die.
//
// Postcondition: Returns a valid Die or a non-nil error.
func ParseDie(s string) (Die, error) {
	for d := range dieFaces {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("dice: unknown die %q", s)
}

// MarshalText encodes the die as its name so stat tables round-trip through YAML and JSON.
func (d Die) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("dice: cannot marshal invalid die %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a die name produced by MarshalText.
func (d *Die) UnmarshalText(text []byte) error {
	parsed, err := ParseDie(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Roll returns a uniformly distributed value in [1, d.Faces()].
//
// Precondition: d is valid; src is non-nil.
// Postcondition: 1 <= result <= d.Faces().
func Roll(d Die, src Source) int {
	return src.Intn(d.Faces()) + 1
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: len(items) > 0; src is non-nil.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
