package jsonreader

import (
	"errors"
	"fmt"

	"github.com/kestrel-labs/jsonreader/token"
)

// Canonical, bit-exact error messages. Every primitive and combinator
// reports one of these (or, for lexical malformation, whatever the
// tokenizer itself produced) so that callers can match on message text
// the way the teacher's ion package matches on its own sentinel errors.
var (
	ErrWrongString          = errors.New("Invalid JSON value where a JSON string was expected.")
	ErrWrongNull            = errors.New("Invalid JSON value where a JSON null was expected.")
	ErrWrongBoolean         = errors.New("Invalid JSON value where a JSON Boolean was expected.")
	ErrWrongDateTime        = errors.New("JSON value cannot be interpreted as a date and time in ISO 8601-1 extended format.")
	ErrWrongDateTimeOffset  = errors.New("JSON value cannot be interpreted as a date and time offset in ISO 8601-1 extended format.")
	ErrWrongGuid            = errors.New("Invalid JSON value where a Guid was expected in the 'D' format (hyphen-separated).")
	ErrWrongArray           = errors.New("Invalid JSON value where a JSON array was expected.")
	ErrTupleTooFew          = errors.New("Invalid JSON value; JSON array has too few values.")
	ErrTupleTooMany         = errors.New("Invalid JSON value; JSON array has too many values.")
	ErrWrongObject          = errors.New("Invalid JSON value where a JSON object was expected.")
	ErrMissingProperty      = errors.New("Invalid JSON object.")
	ErrAlternationExhausted = errors.New("Invalid JSON value.")
	ErrValidationFailed     = errors.New("Invalid JSON value.")
	errStreamingAlternation = errors.New("Partial JSON reading is not supported. Combine with Buffer.")
)

func errWrongNumber(typeName string) error {
	return fmt.Errorf("Invalid JSON value; expecting a JSON number compatible with %s.", typeName)
}

func errInvalidEnumMember(typeName string) error {
	return fmt.Errorf("Invalid member for %s.", typeName)
}

// MissingPropertyError is ErrMissingProperty with the offending
// property name attached out of band: spec.md's canonical error
// strings are bit-exact, so the name can't be interpolated into
// Error() itself, but callers that want it for diagnostics can type-
// assert or errors.As past the canonical text.
type MissingPropertyError struct {
	Name string
}

func (e *MissingPropertyError) Error() string { return ErrMissingProperty.Error() }

func (e *MissingPropertyError) Unwrap() error { return ErrMissingProperty }

// DecodeError is the terminal error a stream driver raises when a
// Reader reports Err or when the tokenizer itself cannot make
// progress. It carries enough position context to locate the failure
// in the source, the way jsonrl/parser.go wraps a lex failure with the
// surrounding text.
type DecodeError struct {
	Message string
	Token   token.Kind
	Offset  int64

	cause error // the error annotate wrapped, if any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s See token %q at offset %d.", e.Message, e.Token.String(), e.Offset)
}

func (e *DecodeError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return errors.New(e.Message)
}

// annotate wraps err with the current token kind and byte offset,
// unless err is already a *DecodeError (the single-annotation-point
// policy: an error is stamped with position exactly once, at the
// outermost driver, never re-wrapped as it propagates back up through
// nested combinators).
func annotate(err error, tokKind token.Kind, offset int64) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return &DecodeError{Message: err.Error(), Token: tokKind, Offset: offset, cause: err}
}
