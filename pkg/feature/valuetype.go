package feature

import (
	"fmt"
	"time"
)

// ValueType is the declared semantic type of a feature's output value.
type ValueType string

const (
	ValueTypeNumeric     ValueType = "numeric"
	ValueTypeCategorical ValueType = "categorical"
	ValueTypeBoolean     ValueType = "boolean"
	ValueTypeEmbedding   ValueType = "embedding"
	ValueTypeTimestamp   ValueType = "timestamp"
)

// Validate reports whether the value type is a member of the supported set.
func (t ValueType) Validate() error {
	switch t {
	case ValueTypeNumeric, ValueTypeCategorical, ValueTypeBoolean, ValueTypeEmbedding, ValueTypeTimestamp:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidValueType, string(t))
	}
}

// Check reports whether the runtime type of v conforms to the declared value
// type. Values are matched on their dynamic Go type only: an int is numeric,
// a numeric string is not.
func (t ValueType) Check(v any) bool {
	switch t {
	case ValueTypeNumeric:
		switch v.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
	case ValueTypeCategorical:
		_, ok := v.(string)
		return ok
	case ValueTypeBoolean:
		_, ok := v.(bool)
		return ok
	case ValueTypeEmbedding:
		switch v.(type) {
		case []float64, []float32:
			return true
		}
	case ValueTypeTimestamp:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}
