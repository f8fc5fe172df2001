package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/featurekit/featurekit/pkg/feature"
)

// Predefined errors for the registry package.
var (
	// ErrNotFound indicates the feature key was never registered.
	ErrNotFound = errors.New("registry: feature not found")

	// ErrNoActiveVersion indicates every version for the key has been deprecated.
	ErrNoActiveVersion = errors.New("registry: no active version")
)

// UnknownDependencyError indicates a registration declared dependencies on
// keys the registry does not know yet. Dependencies are explicit and must be
// registered before anything can depend on them.
type UnknownDependencyError struct {
	Key     feature.Key
	Missing []feature.Key
}

func (e *UnknownDependencyError) Error() string {
	names := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		names[i] = k.String()
	}
	return fmt.Sprintf("registry: feature %q declares unknown dependencies: %s",
		e.Key, strings.Join(names, ", "))
}

func IsUnknownDependencyError(err error) bool {
	var e *UnknownDependencyError
	return errors.As(err, &e)
}
