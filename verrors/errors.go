// Package verrors defines the error taxonomy shared across the voice
// pipeline: config, dsp, opusenc and pcmio all return *verrors.Error
// values so callers can switch on Kind instead of matching strings.
package verrors

import "fmt"

// Kind classifies a failure at the pipeline boundary. External callers
// switch on Kind rather than comparing error strings.
type Kind int

const (
	// InternalError indicates an invariant violation that should never occur.
	InternalError Kind = iota
	// InvalidFormat indicates the input sample format could not be coerced to float32.
	InvalidFormat
	// InvalidConfig indicates a tunable is outside its documented range.
	InvalidConfig
	// IoError indicates a read/write failure on an underlying file.
	IoError
	// CodecError indicates the Opus encoder rejected a frame or Ogg framing failed.
	CodecError
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "InvalidFormat"
	case InvalidConfig:
		return "InvalidConfig"
	case IoError:
		return "IoError"
	case CodecError:
		return "CodecError"
	case InternalError:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Error wraps a Kind with a message and an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, verrors.Sentinel(verrors.InvalidConfig)) style
// checks against a Kind via a comparison-only *Error created with Sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given Kind around an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Sentinel returns a comparison-only *Error of the given Kind, for use
// with errors.Is(err, verrors.Sentinel(verrors.InvalidConfig)).
func Sentinel(kind Kind) *Error { return &Error{Kind: kind} }
