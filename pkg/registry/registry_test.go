package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featurekit/featurekit/pkg/feature"
	"github.com/featurekit/featurekit/pkg/registry"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestRegistry() *registry.Registry {
	return registry.New(registry.WithClock(func() time.Time { return testNow }))
}

func mustMetadata(t *testing.T, name, entity string, valueType feature.ValueType) feature.Metadata {
	t.Helper()

	meta, err := feature.NewMetadata(name, entity, valueType, "", "")
	require.NoError(t, err)
	return meta
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("first version", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		meta := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)

		spec, err := reg.Register(meta)
		require.NoError(t, err)
		assert.Equal(t, meta, spec.Metadata)
		assert.Equal(t, 1, spec.Version)
		assert.Equal(t, feature.StatusActive, spec.Status)
		assert.Equal(t, testNow, spec.CreatedAt)
		assert.Empty(t, spec.Dependencies)
		assert.NotZero(t, spec.ID)
	})

	t.Run("re-registration deprecates prior active version", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		meta := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)

		first, err := reg.Register(meta)
		require.NoError(t, err)
		second, err := reg.Register(meta)
		require.NoError(t, err)
		assert.Equal(t, 2, second.Version)
		assert.NotEqual(t, first.ID, second.ID)

		resolved, err := reg.Resolve(meta.Key())
		require.NoError(t, err)
		assert.True(t, second.Equal(resolved))

		history, err := reg.History(meta.Key())
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 1, history[0].Version)
		assert.Equal(t, feature.StatusDeprecated, history[0].Status)
		assert.Equal(t, 2, history[1].Version)
		assert.Equal(t, feature.StatusActive, history[1].Status)
	})

	t.Run("versions increase per key regardless of interleaving", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		age := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
		spend := mustMetadata(t, "spend", "user", feature.ValueTypeNumeric)
		rating := mustMetadata(t, "rating", "item", feature.ValueTypeNumeric)

		for i := 1; i <= 3; i++ {
			spec, err := reg.Register(age)
			require.NoError(t, err)
			assert.Equal(t, i, spec.Version)

			_, err = reg.Register(spend)
			require.NoError(t, err)
			_, err = reg.Register(rating)
			require.NoError(t, err)
		}

		history, err := reg.History(age.Key())
		require.NoError(t, err)
		require.Len(t, history, 3)
		for i, spec := range history {
			assert.Equal(t, i+1, spec.Version)
		}
	})

	t.Run("with registered dependencies", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		signup := mustMetadata(t, "signup_date", "user", feature.ValueTypeTimestamp)
		_, err := reg.Register(signup)
		require.NoError(t, err)

		age := mustMetadata(t, "account_age_days", "user", feature.ValueTypeNumeric)
		spec, err := reg.Register(age, signup.Key(), signup.Key())
		require.NoError(t, err)
		assert.Equal(t, []feature.Key{signup.Key()}, spec.Dependencies, "dependencies are de-duplicated")

		deps, err := reg.DependenciesOf(age.Key())
		require.NoError(t, err)
		assert.Equal(t, []feature.Key{signup.Key()}, deps)
	})

	t.Run("unknown dependency rejected without mutation", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		age := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
		_, err := reg.Register(age)
		require.NoError(t, err)

		missing := feature.Key{Name: "signup_date", Entity: "user"}
		spend := mustMetadata(t, "spend", "user", feature.ValueTypeNumeric)
		_, err = reg.Register(spend, missing)
		require.Error(t, err)
		assert.True(t, registry.IsUnknownDependencyError(err))

		var depErr *registry.UnknownDependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, spend.Key(), depErr.Key)
		assert.Equal(t, []feature.Key{missing}, depErr.Missing)

		// Rejected registrations leave no trace.
		assert.Equal(t, []feature.Key{age.Key()}, reg.Keys())
		_, err = reg.History(spend.Key())
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})

	t.Run("invalid metadata rejected", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		_, err := reg.Register(feature.Metadata{Name: "age", Entity: "user", ValueType: "tensor"})
		require.Error(t, err)
		assert.ErrorIs(t, err, feature.ErrInvalidMetadata)
		assert.Zero(t, reg.Len())
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		_, err := reg.Resolve(feature.Key{Name: "age", Entity: "user"})
		require.Error(t, err)
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})

	t.Run("matches the registered spec", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		meta := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
		spec, err := reg.Register(meta)
		require.NoError(t, err)

		resolved, err := reg.Resolve(meta.Key())
		require.NoError(t, err)
		assert.True(t, spec.Equal(resolved))
		assert.Equal(t, feature.StatusActive, resolved.Status)
	})

	t.Run("returned specs do not alias registry state", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		signup := mustMetadata(t, "signup_date", "user", feature.ValueTypeTimestamp)
		_, err := reg.Register(signup)
		require.NoError(t, err)

		age := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
		_, err = reg.Register(age, signup.Key())
		require.NoError(t, err)

		resolved, err := reg.Resolve(age.Key())
		require.NoError(t, err)
		resolved.Dependencies[0] = feature.Key{Name: "mutated", Entity: "user"}
		resolved.Status = feature.StatusDeprecated

		again, err := reg.Resolve(age.Key())
		require.NoError(t, err)
		assert.Equal(t, []feature.Key{signup.Key()}, again.Dependencies)
		assert.Equal(t, feature.StatusActive, again.Status)
	})
}

func TestHistory(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	_, err := reg.History(feature.Key{Name: "age", Entity: "user"})
	assert.ErrorIs(t, err, registry.ErrNotFound)

	meta := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
	_, err = reg.Register(meta)
	require.NoError(t, err)

	history, err := reg.History(meta.Key())
	require.NoError(t, err)
	require.Len(t, history, 1)

	// History copies are detached from the catalog.
	history[0].Status = feature.StatusDeprecated
	resolved, err := reg.Resolve(meta.Key())
	require.NoError(t, err)
	assert.Equal(t, feature.StatusActive, resolved.Status)
}

func TestDeprecate(t *testing.T) {
	t.Parallel()

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		err := reg.Deprecate(feature.Key{Name: "age", Entity: "user"})
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})

	t.Run("retires the active version", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		meta := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
		_, err := reg.Register(meta)
		require.NoError(t, err)

		require.NoError(t, reg.Deprecate(meta.Key()))

		_, err = reg.Resolve(meta.Key())
		assert.ErrorIs(t, err, registry.ErrNoActiveVersion)
		_, err = reg.DependenciesOf(meta.Key())
		assert.ErrorIs(t, err, registry.ErrNoActiveVersion)

		// History keeps the retired version.
		history, err := reg.History(meta.Key())
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, feature.StatusDeprecated, history[0].Status)

		// A second deprecate has nothing left to retire.
		assert.ErrorIs(t, reg.Deprecate(meta.Key()), registry.ErrNoActiveVersion)
	})

	t.Run("a new registration restores an active version", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry()
		meta := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)
		_, err := reg.Register(meta)
		require.NoError(t, err)
		require.NoError(t, reg.Deprecate(meta.Key()))

		spec, err := reg.Register(meta)
		require.NoError(t, err)
		assert.Equal(t, 2, spec.Version, "version numbering continues past deprecated versions")

		resolved, err := reg.Resolve(meta.Key())
		require.NoError(t, err)
		assert.True(t, spec.Equal(resolved))
	})
}

func TestKeysAndGraph(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	assert.Empty(t, reg.Keys())
	assert.Empty(t, reg.Graph())

	signup := mustMetadata(t, "signup_date", "user", feature.ValueTypeTimestamp)
	_, err := reg.Register(signup)
	require.NoError(t, err)

	age := mustMetadata(t, "account_age_days", "user", feature.ValueTypeNumeric)
	_, err = reg.Register(age, signup.Key())
	require.NoError(t, err)

	keys := reg.Keys()
	assert.ElementsMatch(t, []feature.Key{signup.Key(), age.Key()}, keys)
	assert.Equal(t, keys, reg.Keys(), "repeated calls without mutation return the same set")
	assert.Equal(t, 2, reg.Len())

	graph := reg.Graph()
	require.Len(t, graph, 2)
	assert.Empty(t, graph[signup.Key()])
	assert.Equal(t, []feature.Key{signup.Key()}, graph[age.Key()])

	// Deprecated keys drop out of the graph but stay enumerable.
	require.NoError(t, reg.Deprecate(age.Key()))
	graph = reg.Graph()
	require.Len(t, graph, 1)
	assert.Equal(t, 2, reg.Len())
}

// Mirrors the canonical walkthrough: one feature registered, then a second
// registration attempt with an unknown dependency leaves the catalog exactly
// as it was.
func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	age := mustMetadata(t, "age", "user", feature.ValueTypeNumeric)

	spec, err := reg.Register(age)
	require.NoError(t, err)
	assert.Equal(t, 1, spec.Version)
	assert.Equal(t, feature.StatusActive, spec.Status)

	_, err = reg.Register(age, feature.Key{Name: "signup_date", Entity: "user"})
	require.Error(t, err)
	assert.True(t, registry.IsUnknownDependencyError(err))

	resolved, err := reg.Resolve(age.Key())
	require.NoError(t, err)
	assert.Equal(t, 1, resolved.Version)
	assert.Equal(t, feature.StatusActive, resolved.Status)

	history, err := reg.History(age.Key())
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Len(t, reg.Keys(), 1)
}
