package feature

import (
	"errors"
	"fmt"
	"time"
)

// Predefined errors for the feature package.
var (
	// ErrInvalidMetadata indicates that metadata failed construction validation.
	ErrInvalidMetadata = errors.New("feature: invalid metadata")

	// ErrInvalidKey indicates that a feature key component is empty or malformed.
	ErrInvalidKey = errors.New("feature: invalid key")

	// ErrInvalidValueType indicates a value type outside the supported set.
	ErrInvalidValueType = errors.New("feature: invalid value type")

	// ErrNilComputer indicates a feature was constructed without computation logic.
	ErrNilComputer = errors.New("feature: computer cannot be nil")
)

// TypeMismatchError indicates a computed value does not conform to the
// feature's declared value type. Values are never coerced; the mismatch
// surfaces here instead.
type TypeMismatchError struct {
	Key  Key
	Want ValueType
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("feature %q: expected value of type %q, got %s", e.Key, e.Want, e.Got)
}

// TimeViolationError indicates an evaluation was requested for an event time
// after the reference clock's current time.
type TimeViolationError struct {
	Key       Key
	EventTime time.Time
	Now       time.Time
}

func (e *TimeViolationError) Error() string {
	return fmt.Sprintf("feature %q: event time %s is after reference time %s",
		e.Key, e.EventTime.Format(time.RFC3339Nano), e.Now.Format(time.RFC3339Nano))
}

func IsTypeMismatchError(err error) bool {
	var e *TypeMismatchError
	return errors.As(err, &e)
}

func IsTimeViolationError(err error) bool {
	var e *TimeViolationError
	return errors.As(err, &e)
}
