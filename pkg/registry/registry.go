package registry

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/featurekit/featurekit/pkg/feature"
)

// Option configures a Registry during construction.
type Option func(*Registry)

// WithClock overrides the clock used to stamp CreatedAt on new
// specifications. Defaults to time.Now. Nil clocks are ignored.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger attaches a structured logger for register and deprecate
// transitions. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// Registry is an in-memory catalog of versioned feature specifications. It
// tracks the full version history per key, resolves the single active version,
// and exposes the dependency edges later planner phases build their graph
// from.
//
// A Registry has caller-managed lifetime: construct one per process or per
// test; there is no package-level instance. All methods are safe for
// concurrent use. Specs returned by read methods are copies and share no
// state with the registry.
type Registry struct {
	mu      sync.RWMutex
	history map[feature.Key][]*feature.Spec // ascending by version
	active  map[feature.Key]int             // key -> active version number; absent means none active
	deps    map[feature.Key][]feature.Key   // denormalized dependencies of the active version

	now func() time.Time
	log *slog.Logger
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		history: make(map[feature.Key][]*feature.Spec),
		active:  make(map[feature.Key]int),
		deps:    make(map[feature.Key][]feature.Key),
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records a new version of the feature described by meta, with deps
// as its declared dependency keys. Every dependency must already be
// registered; otherwise registration fails with UnknownDependencyError and
// the registry is left untouched. Versions per key start at 1 and increase
// by 1. The previous active version for the key, if any, is deprecated in the
// same critical section, so readers never observe two active versions.
func (r *Registry) Register(meta feature.Metadata, deps ...feature.Key) (feature.Spec, error) {
	if err := meta.Validate(); err != nil {
		return feature.Spec{}, err
	}
	normalized := normalizeDeps(deps)
	key := meta.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	var missing []feature.Key
	for _, dep := range normalized {
		if _, ok := r.history[dep]; !ok {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return feature.Spec{}, &UnknownDependencyError{Key: key, Missing: missing}
	}

	versions := r.history[key]
	version := 1
	if n := len(versions); n > 0 {
		version = versions[n-1].Version + 1
	}

	if prev, ok := r.active[key]; ok {
		r.deprecateLocked(key, prev)
	}

	spec := &feature.Spec{
		ID:           uuid.New(),
		Metadata:     meta,
		Version:      version,
		CreatedAt:    r.now(),
		Dependencies: normalized,
		Status:       feature.StatusActive,
	}
	r.history[key] = append(versions, spec)
	r.active[key] = version
	r.deps[key] = slices.Clone(normalized)

	r.log.Info("feature registered",
		slog.String("key", key.String()),
		slog.Int("version", version),
		slog.String("id", spec.ID.String()),
		slog.Int("dependencies", len(normalized)))

	return spec.Clone(), nil
}

// Resolve returns the active specification for key. It fails with ErrNotFound
// if the key was never registered and with ErrNoActiveVersion if every
// version has been deprecated.
func (r *Registry) Resolve(key feature.Key) (feature.Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, err := r.activeLocked(key)
	if err != nil {
		return feature.Spec{}, err
	}
	return spec.Clone(), nil
}

// History returns every specification registered under key, ascending by
// version. It fails with ErrNotFound if the key was never registered; a known
// key always has at least one version.
func (r *Registry) History(key feature.Key) ([]feature.Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.history[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	out := make([]feature.Spec, len(versions))
	for i, s := range versions {
		out[i] = s.Clone()
	}
	return out, nil
}

// DependenciesOf returns the declared dependency keys of the active version
// for key. It fails with ErrNotFound for unknown keys and with
// ErrNoActiveVersion when every version has been deprecated.
func (r *Registry) DependenciesOf(key feature.Key) ([]feature.Key, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.history[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if _, ok := r.active[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoActiveVersion, key)
	}
	return slices.Clone(r.deps[key]), nil
}

// Keys returns a snapshot of every registered key, sorted for stable
// enumeration.
func (r *Registry) Keys() []feature.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]feature.Key, 0, len(r.history))
	for k := range r.history {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, feature.Key.Compare)
	return keys
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}

// Deprecate retires the active version for key without registering a
// successor. Resolve fails with ErrNoActiveVersion until a new version is
// registered; History keeps every version. Deprecation is one-way per
// version.
func (r *Registry) Deprecate(key feature.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.history[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	version, ok := r.active[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoActiveVersion, key)
	}
	r.deprecateLocked(key, version)
	delete(r.active, key)
	delete(r.deps, key)

	r.log.Info("feature deprecated",
		slog.String("key", key.String()),
		slog.Int("version", version))

	return nil
}

// Graph returns a snapshot of the dependency edges of every active version,
// keyed by feature. Keys with no active version are omitted.
func (r *Registry) Graph() map[feature.Key][]feature.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	graph := make(map[feature.Key][]feature.Key, len(r.deps))
	for k, d := range r.deps {
		graph[k] = slices.Clone(d)
	}
	return graph
}

// activeLocked returns the active spec for key. Callers must hold at least
// the read lock.
func (r *Registry) activeLocked(key feature.Key) (*feature.Spec, error) {
	versions, ok := r.history[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	version, ok := r.active[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoActiveVersion, key)
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].Version == version {
			return versions[i], nil
		}
	}
	// The active pointer always references a stored version.
	return nil, fmt.Errorf("%w: %s", ErrNoActiveVersion, key)
}

// deprecateLocked transitions the given version to deprecated. Callers must
// hold the write lock.
func (r *Registry) deprecateLocked(key feature.Key, version int) {
	for _, s := range r.history[key] {
		if s.Version == version {
			s.Status = feature.StatusDeprecated
			return
		}
	}
}

// normalizeDeps returns a sorted, de-duplicated copy of keys. Nil for empty
// input, so specs registered without dependencies compare equal regardless of
// how the empty set was spelled.
func normalizeDeps(keys []feature.Key) []feature.Key {
	if len(keys) == 0 {
		return nil
	}
	out := slices.Clone(keys)
	slices.SortFunc(out, feature.Key.Compare)
	return slices.Compact(out)
}
