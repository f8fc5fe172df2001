// Package registry provides the in-memory catalog that tracks versioned
// feature specifications and their dependency edges.
//
// # Architecture
//
// Every feature is identified by its feature.Key (name, entity). The registry
// keeps, per key:
//
// 1. An append-only version history of feature.Spec records, ascending by version
// 2. A pointer to the single active version, if any
// 3. A denormalized copy of the active version's declared dependencies
//
// Registering a feature under an existing key creates the next version and
// deprecates the previous active one atomically; at most one version per key
// is active at any time. Dependencies are explicit and must already be
// registered, which also makes dependency cycles impossible to construct:
// the later-registered feature cannot reference a key that does not exist
// yet. Cycle detection therefore stays with the planner phases that consume
// Graph.
//
// # Usage
//
//	reg := registry.New()
//
//	signup, err := reg.Register(signupMeta)
//	if err != nil {
//		// Handle error
//	}
//
//	age, err := reg.Register(ageMeta, signup.Key())
//	if err != nil {
//		// Handle error
//	}
//
//	spec, err := reg.Resolve(age.Key())   // active version
//	all, err := reg.History(age.Key())    // every version, ascending
//	deps, err := reg.DependenciesOf(age.Key())
//
// # Error Handling
//
// Lookups on unknown keys fail with ErrNotFound; keys whose versions are all
// deprecated fail with ErrNoActiveVersion. Registrations with unregistered
// dependencies fail with UnknownDependencyError carrying the missing keys and
// leave the registry unchanged:
//
//	_, err := reg.Register(meta, unknownKey)
//	if registry.IsUnknownDependencyError(err) {
//		// Register the dependencies first
//	}
//
// # Concurrency
//
// A single RWMutex guards the catalog. Register and Deprecate run their whole
// read-compute-write sequence under the write lock, so concurrent
// registrations on the same key can neither duplicate version numbers nor
// leave two versions active. Read methods return deep copies; no internal
// state escapes.
package registry
