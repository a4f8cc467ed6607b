package egret

import (
	"errors"
	"fmt"

	"github.com/purduedualitylab/egret/internal/span"
)

// Sentinel errors for the fatal-error channel (spec §7.1). Generate and
// Check always return one of these, never a partial result: ErrBadArguments
// directly, ErrParse wrapped in a *ParseError whose Loc is span.None when
// no source location is known.
var (
	// ErrBadArguments is returned when base_substring fails validation:
	// fewer than two characters, or a non-alphabetic character.
	ErrBadArguments = errors.New("egret: bad arguments")

	// ErrParse is returned for any malformed-regex condition: scanner
	// error, unexpected token, unterminated group, unresolved
	// backreference, or pointless alternation.
	ErrParse = errors.New("egret: parse error")
)

// ParseError wraps a fatal parse-time failure with the source location
// that triggered it, when one is known.
type ParseError struct {
	Loc     span.Location
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Loc.IsNone() {
		return fmt.Sprintf("egret: %s", e.Message)
	}
	return fmt.Sprintf("egret: %s (at offset %d)", e.Message, e.Loc.Start)
}

// Unwrap allows errors.Is(err, ErrParse) to succeed for any ParseError.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

func parseErrorf(loc span.Location, format string, args ...any) error {
	return &ParseError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}
