package bindings

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBuilt reports that the native ShurikenLib bindings were not linked
	// into the current binary. Callers can use this to skip native paths or
	// fall back to safer defaults.
	ErrNotBuilt = errors.New("shuriken/internal/bindings: native bindings not built")

	// ErrNullResult signals that a native call returned a null pointer where a
	// value was expected. The safe layer classifies it further (not found,
	// parse failure, ...) based on the operation that produced it.
	ErrNullResult = errors.New("shuriken/internal/bindings: native call returned null")
)

// StatusError carries a negative status code returned by a native call that
// reports errors through its integer return value.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shuriken/internal/bindings: %s failed with native status %d", e.Op, e.Code)
}
