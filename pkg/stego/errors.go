package stego

import (
	"errors"
	"fmt"
)

// ErrorCode classifies codec failures. Every failure of a codec operation
// is terminal for that operation; the codec never retries internally.
type ErrorCode int

const (
	// ErrCapacityExceeded indicates the plaintext or ciphertext does not fit
	// in the carrier's body channels.
	ErrCapacityExceeded ErrorCode = iota + 1

	// ErrNoSignature indicates the carrier holds no recognized 16-bit magic.
	ErrNoSignature

	// ErrCorruptHeader indicates the declared payload length is zero, not a
	// multiple of 8, or exceeds the body capacity.
	ErrCorruptHeader

	// ErrWrongPasswordOrTampered indicates AEAD tag verification failed.
	// Wrong password and carrier tampering are deliberately not distinguished.
	ErrWrongPasswordOrTampered

	// ErrCorruptPlaintext indicates the decrypted bytes are not valid UTF-8.
	ErrCorruptPlaintext

	// ErrScatterDivergence indicates the scatter emit loop tripped its
	// divergence guard. Unreachable under the Hull-Dobell parameters;
	// surfacing it means an implementation bug.
	ErrScatterDivergence

	// ErrOutOfRange indicates an internal bounds check failed, such as a
	// logical channel index past the end of the buffer.
	ErrOutOfRange
)

// String returns a stable, wire-safe name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrCapacityExceeded:
		return "CapacityExceeded"
	case ErrNoSignature:
		return "NoSignature"
	case ErrCorruptHeader:
		return "CorruptHeader"
	case ErrWrongPasswordOrTampered:
		return "WrongPasswordOrTampered"
	case ErrCorruptPlaintext:
		return "CorruptPlaintext"
	case ErrScatterDivergence:
		return "ScatterDivergence"
	case ErrOutOfRange:
		return "OutOfRange"
	default:
		return fmt.Sprintf("Unknown(%d)", int(e))
	}
}

// Error carries an ErrorCode plus a human-readable message. It is the error
// type of every codec outcome; a canceled operation returns the context's
// error instead, and failures of the system random source or cipher setup
// are returned as they come.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a *Error with the same code, so callers can
// match with errors.Is against sentinel instances.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err. It returns 0, false when err is
// nil or not produced by this package.
func CodeOf(err error) (ErrorCode, bool) {
	if err == nil {
		return 0, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
