package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "translated engine code",
			err:      FromCode("nng_dial", ECONNREFUSED),
			contains: []string{"[nng_dial]", "connection_refused", "connection refused", "code 6"},
		},
		{
			name:     "binding layer check",
			err:      UseAfterFree("msg_append"),
			contains: []string{"[msg_append]", "use_after_free", "already freed"},
		},
		{
			name: "wrapped cause",
			err: &Error{
				Kind:  KindInternal,
				Op:    "recv",
				Cause: errors.New("boom"),
			},
			contains: []string{"[recv]", "internal", "caused by: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{EINVAL, KindInvalidArg},
		{ECLOSED, KindClosed},
		{EAGAIN, KindWouldBlock},
		{ETIMEDOUT, KindTimedOut},
		{ECONNREFUSED, KindConnRefused},
		{ECONNABORTED, KindConnAborted},
		{ECONNRESET, KindConnReset},
		{ECONNSHUT, KindConnShut},
		{EBUSY, KindBusy},
		{ENOTSUP, KindNotSupported},
		{EADDRINUSE, KindAddrInUse},
		{EADDRINVAL, KindAddrInvalid},
		{ESTATE, KindBadState},
		{ENOENT, KindNoEntry},
		{EPROTO, KindProtocolError},
		{EUNREACHABLE, KindUnreachable},
		{EPERM, KindPermissionDenied},
		{EMSGSIZE, KindMessageTooLarge},
		{ECANCELED, KindCanceled},
		{ENOFILES, KindOutOfFiles},
		{ENOSPC, KindOutOfSpace},
		{EEXIST, KindExists},
		{EREADONLY, KindReadOnly},
		{EWRITEONLY, KindWriteOnly},
		{ECRYPTO, KindCryptoError},
		{EPEERAUTH, KindPeerAuth},
		{ENOARG, KindNoArgument},
		{EAMBIGUOUS, KindAmbiguous},
		{EBADTYPE, KindBadType},
		{ENOMEM, KindOutOfMemory},
		{EINTR, KindInterrupted},
		{EINTERNAL, KindInternal},
		{Code(424242), KindInternal},
		{ESYSERR | 13, KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.code); got != tt.want {
			t.Errorf("KindOf(%d) = %s, want %s", int(tt.code), got, tt.want)
		}
	}
}

func TestStrerror(t *testing.T) {
	if got := Strerror(ECLOSED); got != "object closed" {
		t.Errorf("Strerror(ECLOSED) = %q", got)
	}
	if got := Strerror(ESYSERR | 13); !strings.Contains(got, "system error #13") {
		t.Errorf("Strerror(ESYSERR|13) = %q", got)
	}
	if got := Strerror(ETRANERR | 7); !strings.Contains(got, "transport error #7") {
		t.Errorf("Strerror(ETRANERR|7) = %q", got)
	}
	if got := Strerror(Code(424242)); !strings.Contains(got, "unknown error") {
		t.Errorf("Strerror(424242) = %q", got)
	}
}

func TestError_Is(t *testing.T) {
	err := FromCode("send", ETIMEDOUT)

	if !errors.Is(err, &Error{Kind: KindTimedOut}) {
		t.Error("expected kind match")
	}
	if !errors.Is(err, &Error{Code: ETIMEDOUT}) {
		t.Error("expected code match")
	}
	if errors.Is(err, &Error{Kind: KindClosed}) {
		t.Error("unexpected kind match")
	}
	if errors.Is(err, &Error{}) {
		t.Error("empty target must not match")
	}
	if errors.Is(err, errors.New("timed out")) {
		t.Error("plain error must not match")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Kind: KindInternal, Op: "open", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected unwrap to reach the cause")
	}
}

func TestFromCode_ZeroCode(t *testing.T) {
	err := FromCode("noop", 0)
	if err == nil {
		t.Fatal("expected non-nil error for zero code")
	}
	if err.Kind != KindInternal {
		t.Errorf("Kind = %s, want internal", err.Kind)
	}
}
