package native

import (
	goerrors "errors"
	"strconv"
	"sync"
	"syscall"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/bus"
	"go.nanomsg.org/mangos/v3/protocol/pair"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	"go.nanomsg.org/mangos/v3/protocol/pull"
	"go.nanomsg.org/mangos/v3/protocol/push"
	"go.nanomsg.org/mangos/v3/protocol/rep"
	"go.nanomsg.org/mangos/v3/protocol/req"
	"go.nanomsg.org/mangos/v3/protocol/respondent"
	"go.nanomsg.org/mangos/v3/protocol/sub"
	"go.nanomsg.org/mangos/v3/protocol/surveyor"
	"go.nanomsg.org/mangos/v3/protocol/xbus"
	"go.nanomsg.org/mangos/v3/protocol/xpair"
	"go.nanomsg.org/mangos/v3/protocol/xpub"
	"go.nanomsg.org/mangos/v3/protocol/xpull"
	"go.nanomsg.org/mangos/v3/protocol/xpush"
	"go.nanomsg.org/mangos/v3/protocol/xrep"
	"go.nanomsg.org/mangos/v3/protocol/xreq"
	"go.nanomsg.org/mangos/v3/protocol/xrespondent"
	"go.nanomsg.org/mangos/v3/protocol/xsub"
	"go.nanomsg.org/mangos/v3/protocol/xsurveyor"
	"go.uber.org/zap"

	"github.com/scalemsg/spbind"
	"github.com/scalemsg/spbind/errors"

	// Register all transports (tcp, ipc, inproc, ws, wss, tls+tcp).
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// Value-type handles. Equality is by ID; the zero ID is invalid. A handle
// does not own its resource by itself — ownership lives with the tables in
// this package and with exactly one high-level wrapper.
type (
	Socket   struct{ ID uint32 }
	Dialer   struct{ ID uint32 }
	Listener struct{ ID uint32 }
	Msg      struct{ ID uint32 }

	// Ctx and Pipe exist for ABI completeness; the blocking surface does not
	// expose operations on them.
	Ctx  struct{ ID uint32 }
	Pipe struct{ ID uint32 }
)

// Valid reports whether the handle carries a non-zero ID. It says nothing
// about whether the resource is still live.
func (s Socket) Valid() bool   { return s.ID != 0 }
func (d Dialer) Valid() bool   { return d.ID != 0 }
func (l Listener) Valid() bool { return l.ID != 0 }
func (m Msg) Valid() bool      { return m.ID != 0 }

// sockState is the live engine object behind a socket handle, plus the
// binding-local option state and the req/rep exchange tracking.
type sockState struct {
	sock  mangos.Socket
	proto spbind.Protocol
	raw   bool

	mu         sync.Mutex
	name       string
	reqPending bool // req: request sent, reply not yet received
	repPending bool // rep: request received, reply not yet sent
}

var (
	sockets   = newTable[*sockState]()
	msgs      = newTable[*mangos.Message]()
	dialers   = newTable[mangos.Dialer]()
	listeners = newTable[mangos.Listener]()
)

func newEngineSocket(proto spbind.Protocol, raw bool) (mangos.Socket, error) {
	switch proto {
	// The engine has a single pair implementation; monogamous pair1 is
	// wire-compatible with pair0.
	case spbind.Pair0, spbind.Pair1:
		if raw {
			return xpair.NewSocket()
		}
		return pair.NewSocket()
	case spbind.Pub:
		if raw {
			return xpub.NewSocket()
		}
		return pub.NewSocket()
	case spbind.Sub:
		if raw {
			return xsub.NewSocket()
		}
		return sub.NewSocket()
	case spbind.Req:
		if raw {
			return xreq.NewSocket()
		}
		return req.NewSocket()
	case spbind.Rep:
		if raw {
			return xrep.NewSocket()
		}
		return rep.NewSocket()
	case spbind.Push:
		if raw {
			return xpush.NewSocket()
		}
		return push.NewSocket()
	case spbind.Pull:
		if raw {
			return xpull.NewSocket()
		}
		return pull.NewSocket()
	case spbind.Surveyor:
		if raw {
			return xsurveyor.NewSocket()
		}
		return surveyor.NewSocket()
	case spbind.Respondent:
		if raw {
			return xrespondent.NewSocket()
		}
		return respondent.NewSocket()
	case spbind.Bus:
		if raw {
			return xbus.NewSocket()
		}
		return bus.NewSocket()
	default:
		return nil, mangos.ErrBadProto
	}
}

// Open allocates an engine socket for the given protocol and returns its
// handle.
func Open(proto spbind.Protocol, raw bool) (Socket, errors.Code) {
	sock, err := newEngineSocket(proto, raw)
	if err != nil {
		return Socket{}, translate(err)
	}

	st := &sockState{sock: sock, proto: proto, raw: raw}
	id := sockets.insert(st)
	st.name = strconv.FormatUint(uint64(id), 10)

	Logger().Debug("socket opened",
		zap.Uint32("id", id),
		zap.Stringer("protocol", proto),
		zap.Bool("raw", raw))
	return Socket{ID: id}, 0
}

// Close releases the engine socket behind the handle. Closing an already
// closed or unknown handle is a no-op.
func Close(s Socket) {
	st, ok := sockets.remove(s.ID)
	if !ok {
		return
	}
	if err := st.sock.Close(); err != nil {
		Logger().Debug("socket close reported error",
			zap.Uint32("id", s.ID), zap.Error(err))
	}
	Logger().Debug("socket closed", zap.Uint32("id", s.ID))
}

// OpenSockets returns the number of live socket handles.
func OpenSockets() int { return sockets.size() }

// OpenMsgs returns the number of live message handles.
func OpenMsgs() int { return msgs.size() }

// translate maps an engine error value to a result code. Unknown errors
// collapse into the system-error band rather than being swallowed.
func translate(err error) errors.Code {
	if err == nil {
		return 0
	}

	switch {
	case goerrors.Is(err, mangos.ErrClosed):
		return errors.ECLOSED
	case goerrors.Is(err, mangos.ErrSendTimeout), goerrors.Is(err, mangos.ErrRecvTimeout):
		return errors.ETIMEDOUT
	case goerrors.Is(err, mangos.ErrProtoState):
		return errors.ESTATE
	case goerrors.Is(err, mangos.ErrProtoOp):
		return errors.ENOTSUP
	case goerrors.Is(err, mangos.ErrBadTran):
		return errors.ENOTSUP
	case goerrors.Is(err, mangos.ErrBadOption):
		return errors.ENOTSUP
	case goerrors.Is(err, mangos.ErrBadAddr):
		return errors.EADDRINVAL
	case goerrors.Is(err, mangos.ErrAddrInUse):
		return errors.EADDRINUSE
	case goerrors.Is(err, mangos.ErrTooLong):
		return errors.EMSGSIZE
	case goerrors.Is(err, mangos.ErrTooShort),
		goerrors.Is(err, mangos.ErrBadHeader),
		goerrors.Is(err, mangos.ErrBadVersion),
		goerrors.Is(err, mangos.ErrGarbled),
		goerrors.Is(err, mangos.ErrBadProto):
		return errors.EPROTO
	case goerrors.Is(err, mangos.ErrBadValue):
		return errors.EINVAL
	case goerrors.Is(err, mangos.ErrConnRefused):
		return errors.ECONNREFUSED
	case goerrors.Is(err, mangos.ErrCanceled):
		return errors.ECANCELED
	}

	switch {
	case goerrors.Is(err, syscall.ECONNREFUSED):
		return errors.ECONNREFUSED
	case goerrors.Is(err, syscall.ECONNRESET):
		return errors.ECONNRESET
	case goerrors.Is(err, syscall.ECONNABORTED):
		return errors.ECONNABORTED
	case goerrors.Is(err, syscall.EADDRINUSE):
		return errors.EADDRINUSE
	case goerrors.Is(err, syscall.EADDRNOTAVAIL):
		return errors.EADDRINVAL
	case goerrors.Is(err, syscall.EHOSTUNREACH), goerrors.Is(err, syscall.ENETUNREACH):
		return errors.EUNREACHABLE
	case goerrors.Is(err, syscall.EACCES), goerrors.Is(err, syscall.EPERM):
		return errors.EPERM
	case goerrors.Is(err, syscall.EMFILE), goerrors.Is(err, syscall.ENFILE):
		return errors.ENOFILES
	case goerrors.Is(err, syscall.ENOSPC):
		return errors.ENOSPC
	case goerrors.Is(err, syscall.ENOMEM):
		return errors.ENOMEM
	case goerrors.Is(err, syscall.ENOENT):
		return errors.ENOENT
	case goerrors.Is(err, syscall.EEXIST):
		return errors.EEXIST
	}

	Logger().Debug("untranslated engine error", zap.Error(err))
	return errors.ESYSERR
}
