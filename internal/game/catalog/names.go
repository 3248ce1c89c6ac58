package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownName is returned when a human-entered name does not map to any enum value.
var ErrUnknownName = errors.New("unknown name")

// names is a bidirectional string <-> enum table. Lookups by name are
// case-insensitive and treat spaces, hyphens and underscores as equivalent.
type names[T ~int] struct {
	kind    string
	byValue map[T]string
	byName  map[string]T
}

func newNames[T ~int](kind string, table map[T]string) names[T] {
	n := names[T]{
		kind:    kind,
		byValue: make(map[T]string, len(table)),
		byName:  make(map[string]T, len(table)),
	}
	for v, name := range table {
		key := normalize(name)
		if _, dup := n.byName[key]; dup {
			panic(fmt.Sprintf("catalog: duplicate %s name %q", kind, name))
		}
		n.byValue[v] = name
		n.byName[key] = v
	}
	return n
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func (n names[T]) name(v T) string {
	if s, ok := n.byValue[v]; ok {
		return s
	}
	return fmt.Sprintf("%s(%d)", n.kind, int(v))
}

func (n names[T]) parse(s string) (T, error) {
	if v, ok := n.byName[normalize(s)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", n.kind, s, ErrUnknownName)
}

func (n names[T]) marshal(v T) ([]byte, error) {
	s, ok := n.byValue[v]
	if !ok {
		return nil, fmt.Errorf("catalog: cannot marshal invalid %s %d", n.kind, int(v))
	}
	return []byte(s), nil
}

// values returns every enum value ordered by its numeric value.
func (n names[T]) values() []T {
	out := make([]T, 0, len(n.byValue))
	for v := range n.byValue {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
