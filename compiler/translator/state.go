package translator

import (
	"errors"
	"strings"
)

// State is the lifecycle position of a translator.
type State uint8

// Translator states. A translator moves forward only.
const (
	Unbuilt State = iota
	Populating
	HooksApplied
	Finalized
	Failed
)

var stateNames = [...]string{
	Unbuilt:      "UNBUILT",
	Populating:   "POPULATING",
	HooksApplied: "HOOKS_APPLIED",
	Finalized:    "FINALIZED",
	Failed:       "FAILED",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "INVALID"
}

// Sentinel errors for common failure cases.
var (
	// ErrReentrant indicates Get was called while the translator was producing
	// its file, from the same goroutine or another one.
	ErrReentrant = errors.New("translator: reentrant Get")
	// ErrTranslationFailed indicates the make function or a hook failed.
	ErrTranslationFailed = errors.New("translator: translation failed")

	errNoMake        = errors.New("no make function")
	errNoDeclaration = errors.New("make returned no declaration")
)

// Error reports a failed translation.
type Error struct {
	File string
	// State is the state the translator failed in.
	State State
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("translator: ")
	b.WriteString(e.File)
	b.WriteString(" failed in state ")
	b.WriteString(e.State.String())
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for Error.
func (e *Error) Is(target error) bool {
	return target == ErrTranslationFailed
}
