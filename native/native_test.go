package native

import (
	"testing"

	"github.com/scalemsg/spbind"
	"github.com/scalemsg/spbind/errors"
)

func TestOpen_AllProtocols(t *testing.T) {
	for _, proto := range spbind.Protocols() {
		for _, raw := range []bool{false, true} {
			s, code := Open(proto, raw)
			if code != 0 {
				t.Fatalf("Open(%s, raw=%v) code %d", proto, raw, code)
			}
			if !s.Valid() {
				t.Fatalf("Open(%s, raw=%v) returned zero handle", proto, raw)
			}
			Close(s)
		}
	}
}

func TestOpen_UnknownProtocol(t *testing.T) {
	_, code := Open(spbind.Protocol(0xbeef), false)
	if code != errors.EPROTO {
		t.Fatalf("code = %d, want EPROTO", code)
	}
}

func TestClose_Idempotent(t *testing.T) {
	s, code := Open(spbind.Pair0, false)
	if code != 0 {
		t.Fatal(code)
	}
	Close(s)
	Close(s) // must be a no-op

	if c := Listen(s, "inproc://closed-handle", 0); c != errors.ECLOSED {
		t.Fatalf("Listen on dead handle = %d, want ECLOSED", c)
	}
	if c := Send(s, []byte("x"), 0); c != errors.ECLOSED {
		t.Fatalf("Send on dead handle = %d, want ECLOSED", c)
	}
	if _, c := Recv(s, 0); c != errors.ECLOSED {
		t.Fatalf("Recv on dead handle = %d, want ECLOSED", c)
	}
}

func TestListen_BadScheme(t *testing.T) {
	s, _ := Open(spbind.Pair0, false)
	defer Close(s)

	if code := Listen(s, "bogus://nowhere", 0); code != errors.ENOTSUP && code != errors.EADDRINVAL {
		t.Fatalf("Listen bad scheme = %d, want ENOTSUP or EADDRINVAL", code)
	}
}

func TestListen_AddrInUse(t *testing.T) {
	a, _ := Open(spbind.Pair0, false)
	defer Close(a)
	b, _ := Open(spbind.Pair0, false)
	defer Close(b)

	url := "inproc://native-addr-in-use"
	if code := Listen(a, url, 0); code != 0 {
		t.Fatalf("first listen: %d", code)
	}
	if code := Listen(b, url, 0); code != errors.EADDRINUSE {
		t.Fatalf("second listen = %d, want EADDRINUSE", code)
	}
}

func TestReqRep_StateTracking(t *testing.T) {
	rq, code := Open(spbind.Req, false)
	if code != 0 {
		t.Fatal(code)
	}
	defer Close(rq)

	// Receive with no request outstanding.
	if _, c := Recv(rq, 0); c != errors.ESTATE {
		t.Fatalf("req recv with no request = %d, want ESTATE", c)
	}

	if c := Send(rq, []byte("Q"), 0); c != 0 {
		t.Fatalf("first send: %d", c)
	}
	// Second request before the reply arrived.
	if c := Send(rq, []byte("Q2"), 0); c != errors.ESTATE {
		t.Fatalf("second send = %d, want ESTATE", c)
	}

	rp, code := Open(spbind.Rep, false)
	if code != 0 {
		t.Fatal(code)
	}
	defer Close(rp)

	// Reply with no request received.
	if c := Send(rp, []byte("A"), 0); c != errors.ESTATE {
		t.Fatalf("rep send with no request = %d, want ESTATE", c)
	}
}

func TestRawSocket_NoStateTracking(t *testing.T) {
	rq, code := Open(spbind.Req, true)
	if code != 0 {
		t.Fatal(code)
	}
	defer Close(rq)

	// Raw mode leaves exchange sequencing to the application.
	if c := st(t, rq).beginSend(); c != 0 {
		t.Fatalf("raw beginSend = %d, want 0", c)
	}
	if c := st(t, rq).beginRecv(); c != 0 {
		t.Fatalf("raw beginRecv = %d, want 0", c)
	}
}

func st(t *testing.T, s Socket) *sockState {
	t.Helper()
	state, ok := sockets.get(s.ID)
	if !ok {
		t.Fatal("socket state missing")
	}
	return state
}

func TestOptions_Roundtrip(t *testing.T) {
	s, _ := Open(spbind.Pair0, false)
	defer Close(s)

	if code := SocketSetMs(s, OptSendTimeout, 1000); code != 0 {
		t.Fatalf("set send-timeout: %d", code)
	}
	ms, code := SocketGetMs(s, OptSendTimeout)
	if code != 0 || ms != 1000 {
		t.Fatalf("get send-timeout = (%d, %d), want (1000, 0)", ms, code)
	}

	if code := SocketSetInt(s, OptRecvBuffer, 16); code != 0 {
		t.Fatalf("set recv-buffer: %d", code)
	}
	n, code := SocketGetInt(s, OptRecvBuffer)
	if code != 0 || n != 16 {
		t.Fatalf("get recv-buffer = (%d, %d)", n, code)
	}

	if code := SocketSetSize(s, OptRecvSizeMax, 4096); code != 0 {
		t.Fatalf("set recv-size-max: %d", code)
	}
	sz, code := SocketGetSize(s, OptRecvSizeMax)
	if code != 0 || sz != 4096 {
		t.Fatalf("get recv-size-max = (%d, %d)", sz, code)
	}
}

func TestOptions_ReadOnlyAndUnknown(t *testing.T) {
	s, _ := Open(spbind.Req, false)
	defer Close(s)

	if code := SocketSetBool(s, OptRaw, true); code != errors.EREADONLY {
		t.Fatalf("set raw = %d, want EREADONLY", code)
	}
	raw, code := SocketGetBool(s, OptRaw)
	if code != 0 || raw {
		t.Fatalf("get raw = (%v, %d), want (false, 0)", raw, code)
	}

	if code := SocketSetInt(s, OptProtocol, 1); code != errors.EREADONLY {
		t.Fatalf("set protocol = %d, want EREADONLY", code)
	}
	n, code := SocketGetInt(s, OptProtocol)
	if code != 0 || n != int(spbind.Req) {
		t.Fatalf("get protocol = (%d, %d), want (%d, 0)", n, code, int(spbind.Req))
	}

	name, code := SocketGetString(s, OptProtocolName)
	if code != 0 || name == "" {
		t.Fatalf("get protocol-name = (%q, %d)", name, code)
	}

	if code := SocketSetInt(s, "no-such-option", 1); code != errors.ENOTSUP {
		t.Fatalf("set unknown = %d, want ENOTSUP", code)
	}
	if _, code := SocketGetBool(s, "no-such-option"); code != errors.ENOTSUP {
		t.Fatalf("get unknown = %d, want ENOTSUP", code)
	}
}

func TestOptions_NegativeMsMeansNoDeadline(t *testing.T) {
	s, _ := Open(spbind.Pair0, false)
	defer Close(s)

	if code := SocketSetMs(s, OptRecvTimeout, -1); code != 0 {
		t.Fatalf("set recv-timeout -1 = %d, want 0", code)
	}
	ms, code := SocketGetMs(s, OptRecvTimeout)
	if code != 0 || ms != 0 {
		t.Fatalf("get recv-timeout = (%d, %d), want (0, 0)", ms, code)
	}
}

func TestOptions_ProtocolNumberMatchesOpen(t *testing.T) {
	// pair1 shares the engine's pair implementation; the protocol option
	// must still report the number the socket was opened with.
	s, _ := Open(spbind.Pair1, false)
	defer Close(s)

	n, code := SocketGetInt(s, OptProtocol)
	if code != 0 || n != int(spbind.Pair1) {
		t.Fatalf("protocol = (%#x, %d), want (%#x, 0)", n, code, int(spbind.Pair1))
	}
}

func TestOptions_Uint64PathRejectsKnownNames(t *testing.T) {
	s, _ := Open(spbind.Pair0, false)
	defer Close(s)

	if code := SocketSetUint64(s, OptSendTimeout, 1); code != errors.EBADTYPE {
		t.Fatalf("uint64 set on duration option = %d, want EBADTYPE", code)
	}
	if code := SocketSetUint64(s, "no-such-option", 1); code != errors.ENOTSUP {
		t.Fatalf("uint64 set on unknown option = %d, want ENOTSUP", code)
	}
}

func TestOptions_SocketName(t *testing.T) {
	s, _ := Open(spbind.Pair0, false)
	defer Close(s)

	name, code := SocketGetString(s, OptSocketName)
	if code != 0 || name == "" {
		t.Fatalf("default socket-name = (%q, %d)", name, code)
	}
	if code := SocketSetString(s, OptSocketName, "frontend"); code != 0 {
		t.Fatalf("set socket-name: %d", code)
	}
	name, _ = SocketGetString(s, OptSocketName)
	if name != "frontend" {
		t.Fatalf("socket-name = %q, want frontend", name)
	}
}

func TestEndpoint_Lifecycle(t *testing.T) {
	s, _ := Open(spbind.Pair0, false)
	defer Close(s)

	url := "inproc://native-endpoint-lifecycle"
	l, code := ListenerCreate(s, url)
	if code != 0 {
		t.Fatalf("listener create: %d", code)
	}
	if code := ListenerStart(l, 0); code != 0 {
		t.Fatalf("listener start: %d", code)
	}
	addr, code := ListenerAddress(l)
	if code != 0 || addr != url {
		t.Fatalf("listener address = (%q, %d)", addr, code)
	}

	p, _ := Open(spbind.Pair0, false)
	defer Close(p)
	d, code := DialerCreate(p, url)
	if code != 0 {
		t.Fatalf("dialer create: %d", code)
	}
	if code := DialerStart(d, spbind.FlagNonblock); code != 0 {
		t.Fatalf("dialer start: %d", code)
	}
	addr, code = DialerAddress(d)
	if code != 0 || addr != url {
		t.Fatalf("dialer address = (%q, %d)", addr, code)
	}

	DialerClose(d)
	DialerClose(d) // no-op
	ListenerClose(l)
	ListenerClose(l) // no-op

	if code := DialerStart(d, 0); code != errors.ECLOSED {
		t.Fatalf("start after close = %d, want ECLOSED", code)
	}
	if code := ListenerStart(l, 0); code != errors.ECLOSED {
		t.Fatalf("start after close = %d, want ECLOSED", code)
	}
}
