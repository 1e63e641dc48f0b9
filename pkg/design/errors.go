package design

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure. Kinds double as sentinel errors so callers
// can write errors.Is(err, design.ErrUnknownArray).
type ErrorKind string

func (k ErrorKind) Error() string {
	return string(k)
}

const (
	// Parse kinds.
	ErrSyntax             ErrorKind = "syntax"
	ErrDuplicateFactor    ErrorKind = "duplicate_factor"
	ErrInsufficientLevels ErrorKind = "insufficient_levels"

	// Selection kinds.
	ErrUnknownArray    ErrorKind = "unknown_array"
	ErrIncompatible    ErrorKind = "incompatible"
	ErrNoSuitableArray ErrorKind = "no_suitable_array"

	// Generation kinds.
	ErrArrayTooSmall   ErrorKind = "array_too_small"
	ErrEmptyDefinition ErrorKind = "empty_definition"
	ErrInvalidArray    ErrorKind = "invalid_array"

	// Validation-only kinds.
	ErrEmptyName      ErrorKind = "empty_name"
	ErrDuplicateLevel ErrorKind = "duplicate_level"
	ErrLimits         ErrorKind = "limits"
)

// ParseError reports a definition that could not be turned into a Definition.
// Line is 1-based and zero when the decoder cannot locate the problem.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	var msg string
	switch {
	case e.Line > 0 && e.Text != "":
		msg = fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
	case e.Line > 0:
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Message)
	default:
		msg = e.Message
	}
	return fmt.Sprintf("parse error (%s): %s", e.Kind, msg)
}

// Is matches the error's kind sentinel.
func (e *ParseError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// SelectionError reports why no catalog array could be chosen.
type SelectionError struct {
	Kind    ErrorKind
	Array   string
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selection error (%s): %s", e.Kind, e.Message)
}

// Is matches the error's kind sentinel.
func (e *SelectionError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// GenerationError reports why runs could not be produced.
type GenerationError struct {
	Kind    ErrorKind
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation error (%s): %s", e.Kind, e.Message)
}

// Is matches the error's kind sentinel.
func (e *GenerationError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// ValidationError is the first structural violation found in a Definition.
// Factor names the offending factor when there is one.
type ValidationError struct {
	Kind    ErrorKind
	Factor  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Kind, e.Message)
}

// Is matches the error's kind sentinel.
func (e *ValidationError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// KindOf extracts the ErrorKind carried by err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var (
		parseErr      *ParseError
		selectionErr  *SelectionError
		generationErr *GenerationError
		validationErr *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &parseErr):
		return parseErr.Kind
	case errors.As(err, &selectionErr):
		return selectionErr.Kind
	case errors.As(err, &generationErr):
		return generationErr.Kind
	case errors.As(err, &validationErr):
		return validationErr.Kind
	default:
		return ""
	}
}

// Cause strips wrapping layers down to the typed error in err's chain. Errors
// without a kind are returned unchanged.
func Cause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil || KindOf(next) == "" {
			return err
		}
		err = next
	}
	return nil
}
