// Package readout holds the failure codes and failure categories a graphics
// output can report, and the error value carrying them.
package readout

import (
	"errors"
	"fmt"
	"slices"
)

var ErrDuplicateName = errors.New("duplicate name")

// Taxonomy is an immutable, ordered set of names. The position of a name
// is its code.
type Taxonomy[T ~int] struct {
	name  string
	names []string
	index map[string]T
}

func New[T ~int](name string, names []string) (*Taxonomy[T], error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("taxonomy %s: no names given", name)
	}
	t := &Taxonomy[T]{
		name:  name,
		names: slices.Clone(names),
		index: make(map[string]T, len(names)),
	}
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("taxonomy %s: name %d is empty", name, i)
		}
		if _, ok := t.index[n]; ok {
			return nil, fmt.Errorf("taxonomy %s: %w: %s", name, ErrDuplicateName, n)
		}
		t.index[n] = T(i)
	}
	return t, nil
}

func mustNew[T ~int](name string, names []string) *Taxonomy[T] {
	t, err := New[T](name, names)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the human-readable name of code. Asking for a code that
// was never registered is a programming error and panics.
func (t *Taxonomy[T]) Name(code T) string {
	if int(code) < 0 || int(code) >= len(t.names) {
		panic(fmt.Sprintf("taxonomy %s: unknown code %d", t.name, int(code)))
	}
	return t.names[code]
}

func (t *Taxonomy[T]) Lookup(name string) (T, bool) {
	code, ok := t.index[name]
	return code, ok
}

func (t *Taxonomy[T]) Title() string {
	return t.name
}

func (t *Taxonomy[T]) Len() int {
	return len(t.names)
}

func (t *Taxonomy[T]) Names() []string {
	return slices.Clone(t.names)
}
