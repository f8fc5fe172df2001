package feature

import "errors"

// Metadata describes a feature at the schema and governance level: what it is
// called, what entity it is computed for, what type it produces, and who owns
// it. It carries no data, only the contract that defines what the feature
// means. Metadata is a plain value: treat instances as immutable and compare
// them structurally.
type Metadata struct {
	Name        string
	Entity      string
	ValueType   ValueType
	Description string
	Owner       string
}

// NewMetadata constructs validated metadata. Description and owner are
// free-text provenance fields and never affect behavior.
func NewMetadata(name, entity string, valueType ValueType, description, owner string) (Metadata, error) {
	m := Metadata{
		Name:        name,
		Entity:      entity,
		ValueType:   valueType,
		Description: description,
		Owner:       owner,
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// Validate checks the identity fields and the declared value type.
func (m Metadata) Validate() error {
	if _, err := NewKey(m.Name, m.Entity); err != nil {
		return errors.Join(ErrInvalidMetadata, err)
	}
	if err := m.ValueType.Validate(); err != nil {
		return errors.Join(ErrInvalidMetadata, err)
	}
	return nil
}

// Key derives the registry lookup key from the identity fields.
func (m Metadata) Key() Key {
	return Key{Name: m.Name, Entity: m.Entity}
}
