// Package feature defines the typed, time-aware representation of a feature:
// its schema-level metadata, its identifying key, its versioned specification
// record, and the validated computation contract every concrete feature must
// satisfy.
//
// # Architecture
//
// The package is built around four value types and one capability:
//
// 1. Metadata - the immutable schema of a feature (name, entity, value type, ownership)
// 2. Key - the (name, entity) composite that uniquely identifies a feature
// 3. Spec - one immutable version of a feature definition, as stored by a registry
// 4. ValueType - the closed set of semantic output types with runtime conformance checks
// 5. Computer/Feature - the single validated execution path for feature computation
//
// A feature is a deterministic function of raw input data at an explicit
// event time. Compute implementations receive the event time as an argument
// and must not consult any other time source; this is the mechanism that
// keeps training and serving pipelines free of future-data leakage.
//
// # Usage
//
// Define a feature and evaluate it through the validated path:
//
//	meta, err := feature.NewMetadata("user_7d_spend", "user", feature.ValueTypeNumeric,
//		"Total spend over the trailing 7 days", "growth-team")
//	if err != nil {
//		// Handle error
//	}
//
//	spend, err := feature.New(meta, feature.ComputerFunc(
//		func(eventTime time.Time, input map[string]any) (any, error) {
//			return sumSpend(input, eventTime.AddDate(0, 0, -7), eventTime), nil
//		},
//	))
//	if err != nil {
//		// Handle error
//	}
//
//	value, err := spend.Evaluate(eventTime, record)
//
// Evaluate rejects event times after the reference clock (TimeViolationError)
// and values whose runtime type does not conform to the declared ValueType
// (TypeMismatchError). The raw Computer is unexported, so there is no way to
// bypass validation.
//
// # Error Handling
//
// Construction failures wrap the sentinel errors ErrInvalidMetadata,
// ErrInvalidKey and ErrInvalidValueType and can be checked with errors.Is.
// Evaluation failures carry context in typed errors:
//
//	_, err := spend.Evaluate(future, record)
//	if feature.IsTimeViolationError(err) {
//		// Event time was ahead of the reference clock
//	}
package feature
