package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes a failure for retry and backoff decisions.
type Kind string

const (
	KindInvalidArg       Kind = "invalid_argument"
	KindClosed           Kind = "closed"
	KindWouldBlock       Kind = "would_block"
	KindTimedOut         Kind = "timed_out"
	KindConnRefused      Kind = "connection_refused"
	KindConnAborted      Kind = "connection_aborted"
	KindConnReset        Kind = "connection_reset"
	KindConnShut         Kind = "connection_shutdown"
	KindBusy             Kind = "busy"
	KindNotSupported     Kind = "not_supported"
	KindAddrInUse        Kind = "address_in_use"
	KindAddrInvalid      Kind = "address_invalid"
	KindBadState         Kind = "bad_state"
	KindNoEntry          Kind = "no_such_entry"
	KindProtocolError    Kind = "protocol_error"
	KindUnreachable      Kind = "unreachable"
	KindPermissionDenied Kind = "permission_denied"
	KindMessageTooLarge  Kind = "message_too_large"
	KindCanceled         Kind = "canceled"
	KindOutOfFiles       Kind = "out_of_files"
	KindOutOfSpace       Kind = "out_of_space"
	KindExists           Kind = "exists"
	KindReadOnly         Kind = "read_only"
	KindWriteOnly        Kind = "write_only"
	KindCryptoError      Kind = "crypto_error"
	KindPeerAuth         Kind = "peer_auth_failure"
	KindNoArgument       Kind = "no_argument"
	KindAmbiguous        Kind = "ambiguous"
	KindBadType          Kind = "bad_type"
	KindOutOfMemory      Kind = "out_of_memory"
	KindInterrupted      Kind = "interrupted"
	KindInternal         Kind = "internal"

	// KindUseAfterFree is raised by the binding layer before any engine call
	// when an operation touches a freed message. It never carries an engine
	// code.
	KindUseAfterFree Kind = "use_after_free"
)

// Error is the structured failure type used throughout the binding.
type Error struct {
	Cause  error
	Kind   Kind
	Op     string
	Detail string
	Code   Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Op)
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d)", int(e.Code))
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with only a Kind
// set matches any error of that kind; a target carrying a Code matches on
// both.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Code != 0 && t.Code != e.Code {
		return false
	}
	return t.Kind != "" || t.Code != 0
}

// FromCode translates an engine result code into a structured error. Passing
// a zero code is a programming error; it yields an internal-kind error rather
// than nil so it cannot be silently swallowed.
func FromCode(op string, code Code) *Error {
	if code == 0 {
		return &Error{Kind: KindInternal, Op: op, Detail: "success code reported as failure"}
	}
	return &Error{
		Kind:   KindOf(code),
		Code:   code,
		Op:     op,
		Detail: Strerror(code),
	}
}

// Closed reports an operation attempted on a closed socket. The check runs
// in the binding layer so a dead handle never reaches the engine.
func Closed(op string) *Error {
	return &Error{Kind: KindClosed, Code: ECLOSED, Op: op, Detail: Strerror(ECLOSED)}
}

// UseAfterFree reports an operation attempted on a freed message.
func UseAfterFree(op string) *Error {
	return &Error{Kind: KindUseAfterFree, Op: op, Detail: "message already freed"}
}

// InvalidArg reports an argument rejected before any engine call.
func InvalidArg(op, detail string) *Error {
	return &Error{Kind: KindInvalidArg, Code: EINVAL, Op: op, Detail: detail}
}

// Busy reports an operation rejected because another one is outstanding.
func Busy(op string) *Error {
	return &Error{Kind: KindBusy, Code: EBUSY, Op: op, Detail: Strerror(EBUSY)}
}

// Canceled reports an operation canceled before completion.
func Canceled(op string) *Error {
	return &Error{Kind: KindCanceled, Code: ECANCELED, Op: op, Detail: Strerror(ECANCELED)}
}

// IsKind reports whether err is a binding error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
