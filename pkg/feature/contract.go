package feature

import (
	"fmt"
	"time"
)

// Computer is the single contract concrete features implement: derive a value
// from the input record at an explicit event time. Implementations must not
// consult any time source other than eventTime; the explicit timestamp is
// what keeps offline and online computation free of future-data leakage.
// Given identical (eventTime, input), Compute must return identical output;
// determinism is a contract obligation on the implementation, verified by
// tests rather than enforced here.
type Computer interface {
	Compute(eventTime time.Time, input map[string]any) (any, error)
}

// ComputerFunc adapts a plain function to the Computer interface.
type ComputerFunc func(eventTime time.Time, input map[string]any) (any, error)

func (f ComputerFunc) Compute(eventTime time.Time, input map[string]any) (any, error) {
	return f(eventTime, input)
}

// Option configures a Feature during construction.
type Option func(*Feature)

// WithClock overrides the reference clock used to reject future event times.
// Defaults to time.Now. Nil clocks are ignored.
func WithClock(now func() time.Time) Option {
	return func(f *Feature) {
		if now != nil {
			f.now = now
		}
	}
}

// Feature binds metadata to a computation behind a single validated execution
// path. The raw Computer is held in an unexported field, so callers cannot
// invoke it without the validation in Evaluate.
type Feature struct {
	meta Metadata
	impl Computer
	now  func() time.Time
}

// New constructs a feature from metadata and its computation logic.
func New(meta Metadata, impl Computer, opts ...Option) (*Feature, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	if impl == nil {
		return nil, ErrNilComputer
	}
	f := &Feature{
		meta: meta,
		impl: impl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Metadata returns the feature's declared shape.
func (f *Feature) Metadata() Metadata { return f.meta }

func (f *Feature) Name() string { return f.meta.Name }

func (f *Feature) Entity() string { return f.meta.Entity }

func (f *Feature) ValueType() ValueType { return f.meta.ValueType }

// Key returns the feature's registry key.
func (f *Feature) Key() Key { return f.meta.Key() }

// Signature returns the feature's stable identity descriptor.
func (f *Feature) Signature() Signature {
	return Signature{
		Name:      f.meta.Name,
		Entity:    f.meta.Entity,
		ValueType: f.meta.ValueType,
	}
}

// Evaluate is the validated execution path around Compute. It rejects event
// times after the reference clock, runs the computation, and verifies the
// produced value conforms to the declared value type. Values are never
// coerced or truncated: a mismatch fails with TypeMismatchError.
func (f *Feature) Evaluate(eventTime time.Time, input map[string]any) (any, error) {
	if now := f.now(); eventTime.After(now) {
		return nil, &TimeViolationError{Key: f.meta.Key(), EventTime: eventTime, Now: now}
	}
	value, err := f.impl.Compute(eventTime, input)
	if err != nil {
		return nil, fmt.Errorf("feature %q: compute: %w", f.meta.Key(), err)
	}
	if !f.meta.ValueType.Check(value) {
		return nil, &TypeMismatchError{
			Key:  f.meta.Key(),
			Want: f.meta.ValueType,
			Got:  fmt.Sprintf("%T", value),
		}
	}
	return value, nil
}
