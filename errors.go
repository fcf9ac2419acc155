package puzzled

import (
	"errors"
	"fmt"
)

// Sentinel errors for the puzzled package.
var (
	// Construction errors
	ErrConfiguration = errors.New("puzzled: inconsistent puzzle topology")
	ErrUnknownFace   = errors.New("puzzled: unknown face")

	// Notation errors
	ErrMalformedNotation = errors.New("puzzled: malformed move notation")
	ErrResourceExhausted = errors.New("puzzled: move exceeds configured limits")

	// State errors
	ErrUnknownSticker = errors.New("puzzled: unknown sticker location")
)

// NotationError describes a rejected notation character or token.
// It unwraps to ErrMalformedNotation or ErrResourceExhausted.
type NotationError struct {
	Input  string // Token or fragment being processed
	Pos    int    // Byte offset of the offending character, -1 if not applicable
	Reason string // Human-readable reason
	Err    error  // Sentinel
}

func (e *NotationError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v: %s at %d in %q", e.Err, e.Reason, e.Pos, e.Input)
	}
	return fmt.Sprintf("%v: %s in %q", e.Err, e.Reason, e.Input)
}

func (e *NotationError) Unwrap() error {
	return e.Err
}

func malformed(input string, pos int, reason string) error {
	return &NotationError{Input: input, Pos: pos, Reason: reason, Err: ErrMalformedNotation}
}

func exhausted(input string, pos int, reason string) error {
	return &NotationError{Input: input, Pos: pos, Reason: reason, Err: ErrResourceExhausted}
}

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
