package unit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies conversion failures
type ErrorKind string

const (
	// KindMalformedInput indicates a request string that does not match the
	// expected pattern or carries an unparsable number
	KindMalformedInput ErrorKind = "malformed_input"

	// KindUnrecognizedToken indicates no family claims a unit token
	KindUnrecognizedToken ErrorKind = "unrecognized_token"

	// KindUnknownFamily indicates a lookup of a family that was never registered
	KindUnknownFamily ErrorKind = "unknown_family"

	// KindUnsupportedUnit indicates a unit that cannot be converted within a family
	KindUnsupportedUnit ErrorKind = "unsupported_unit"

	// KindUnknownPrefix indicates a magnitude prefix missing from the table
	KindUnknownPrefix ErrorKind = "unknown_prefix"

	// KindDuplicateUnit indicates a second conversion registered for a unit
	KindDuplicateUnit ErrorKind = "duplicate_unit"

	// KindDuplicateAlias indicates a token registered twice in one family
	KindDuplicateAlias ErrorKind = "duplicate_alias"

	// KindDuplicateFamily indicates two providers yielding the same family name
	KindDuplicateFamily ErrorKind = "duplicate_family"

	// KindMissingAlias indicates a converted unit no token resolves to
	KindMissingAlias ErrorKind = "missing_alias"

	// KindInvalidFormula indicates a conversion formula that failed to compile or evaluate
	KindInvalidFormula ErrorKind = "invalid_formula"

	// KindInvalidDefinition indicates a family declared with an empty name,
	// base unit or token
	KindInvalidDefinition ErrorKind = "invalid_definition"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMalformedInput    = &Error{Kind: KindMalformedInput}
	ErrUnrecognizedToken = &Error{Kind: KindUnrecognizedToken}
	ErrUnknownFamily     = &Error{Kind: KindUnknownFamily}
	ErrUnsupportedUnit   = &Error{Kind: KindUnsupportedUnit}
	ErrUnknownPrefix     = &Error{Kind: KindUnknownPrefix}
	ErrDuplicateUnit     = &Error{Kind: KindDuplicateUnit}
	ErrDuplicateAlias    = &Error{Kind: KindDuplicateAlias}
	ErrDuplicateFamily   = &Error{Kind: KindDuplicateFamily}
	ErrMissingAlias      = &Error{Kind: KindMissingAlias}
	ErrInvalidFormula    = &Error{Kind: KindInvalidFormula}
	ErrInvalidDefinition = &Error{Kind: KindInvalidDefinition}
)

// Error is the failure type returned by every operation in this module
type Error struct {
	Kind    ErrorKind
	Family  string
	Unit    string
	Token   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Family != "" {
		fmt.Fprintf(&b, " [family %s]", e.Family)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Family == "" && t.Unit == "" && t.Token == "" && t.Message == ""
}

// KindOf extracts the kind from an error chain, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, family, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Family:  family,
		Message: fmt.Sprintf(format, args...),
	}
}
