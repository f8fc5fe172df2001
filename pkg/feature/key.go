package feature

import (
	"fmt"
	"strings"
)

// KeySeparator joins the name and entity components in the string form of a
// key. Neither component may contain it.
const KeySeparator = ":"

// Key uniquely identifies a feature as the pair of its name and the entity it
// is computed for. Keys are comparable and usable as map keys; two keys are
// equal iff both components match exactly (case-sensitive).
type Key struct {
	Name   string
	Entity string
}

// NewKey builds a key from its components, rejecting empty or
// separator-bearing values.
func NewKey(name, entity string) (Key, error) {
	if name == "" {
		return Key{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidKey)
	}
	if entity == "" {
		return Key{}, fmt.Errorf("%w: entity cannot be empty", ErrInvalidKey)
	}
	if strings.Contains(name, KeySeparator) {
		return Key{}, fmt.Errorf("%w: name %q contains separator %q", ErrInvalidKey, name, KeySeparator)
	}
	if strings.Contains(entity, KeySeparator) {
		return Key{}, fmt.Errorf("%w: entity %q contains separator %q", ErrInvalidKey, entity, KeySeparator)
	}
	return Key{Name: name, Entity: entity}, nil
}

// String renders the key as "name:entity".
func (k Key) String() string {
	return k.Name + KeySeparator + k.Entity
}

// Compare orders keys by name, then entity.
func (k Key) Compare(other Key) int {
	if c := strings.Compare(k.Name, other.Name); c != 0 {
		return c
	}
	return strings.Compare(k.Entity, other.Entity)
}
