package automaton

import (
	"errors"
	"fmt"
)

// ErrInvalidDefinition is wrapped by every error that rejects an automaton definition.
var ErrInvalidDefinition = errors.New("invalid automaton definition")

// DefinitionError describes why a definition was rejected.
// Line is 0 when the automaton was built programmatically.
type DefinitionError struct {
	Line   int
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s", ErrInvalidDefinition, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrInvalidDefinition, e.Reason)
}

func (e *DefinitionError) Unwrap() error { return ErrInvalidDefinition }

func invalid(format string, args ...any) error {
	return &DefinitionError{Reason: fmt.Sprintf(format, args...)}
}

// AtLine attaches a source line to a definition error. Other errors are returned as is.
func AtLine(err error, line int) error {
	var de *DefinitionError
	if errors.As(err, &de) && de.Line == 0 {
		return &DefinitionError{Line: line, Reason: de.Reason}
	}
	return err
}

// Invalid builds a definition error for adapters that reject input before it reaches a Builder.
func Invalid(line int, format string, args ...any) error {
	return &DefinitionError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
