package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/tablegen/config"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidRegistration indicates a callback registered for an unknown phase or key.
	ErrInvalidRegistration = errors.New("builder: invalid registration")
	// ErrDispatchFailed indicates a callback failed during a build.
	ErrDispatchFailed = errors.New("builder: dispatch failed")
)

// RegistrationError reports a rejected registration.
type RegistrationError struct {
	Phase   Phase
	Key     string
	Message string
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("builder: cannot register %s callback for %q: %s", e.Phase, e.Key, e.Message)
}

// Is reports whether the target matches the sentinel error for RegistrationError.
func (e *RegistrationError) Is(target error) bool {
	return target == ErrInvalidRegistration
}

// DispatchError wraps the error returned by a callback, together with the
// dispatch position it failed at.
type DispatchError struct {
	Phase Phase
	Key   string
	// Node is the document passed to the failing callback.
	Node  config.Document
	Cause error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	var b strings.Builder
	b.WriteString("builder: ")
	b.WriteString(e.Key)
	b.WriteString(" callback failed in phase ")
	b.WriteString(e.Phase.String())
	if e.Node != nil {
		fmt.Fprintf(&b, " on %s %q", e.Node.Kind(), config.Path(e.Node))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DispatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DispatchError.
func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}
