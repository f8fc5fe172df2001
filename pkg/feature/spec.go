package feature

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of one specification version.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
)

// Signature is a stable, serializable identity descriptor of a feature.
// Later compiler and planner phases hash and compare features by it.
type Signature struct {
	Name      string    `json:"name"`
	Entity    string    `json:"entity"`
	ValueType ValueType `json:"value_type"`
}

// Spec is one immutable version of a feature definition. The registry assigns
// ID, Version and CreatedAt at registration time; Status is the only field
// that ever changes afterward, and only the registry transitions it
// (active to deprecated, exactly once per version).
type Spec struct {
	ID           uuid.UUID
	Metadata     Metadata
	Version      int
	CreatedAt    time.Time
	Dependencies []Key
	Status       Status
}

// Key derives the spec's registry key from its metadata.
func (s Spec) Key() Key {
	return s.Metadata.Key()
}

// Signature returns the spec's stable identity descriptor.
func (s Spec) Signature() Signature {
	return Signature{
		Name:      s.Metadata.Name,
		Entity:    s.Metadata.Entity,
		ValueType: s.Metadata.ValueType,
	}
}

// Equal compares two specs by value across all fields.
func (s Spec) Equal(other Spec) bool {
	return s.ID == other.ID &&
		s.Metadata == other.Metadata &&
		s.Version == other.Version &&
		s.CreatedAt.Equal(other.CreatedAt) &&
		s.Status == other.Status &&
		slices.Equal(s.Dependencies, other.Dependencies)
}

// Clone returns a deep copy that shares no state with the original.
func (s Spec) Clone() Spec {
	out := s
	out.Dependencies = slices.Clone(s.Dependencies)
	return out
}
