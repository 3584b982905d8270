package native

import (
	"time"

	"go.nanomsg.org/mangos/v3"

	"github.com/scalemsg/spbind"
	"github.com/scalemsg/spbind/errors"
)

// nonblockDeadline is the deadline swapped in for the duration of a call
// carrying FlagNonblock. The engine has no per-call non-blocking mode, only
// per-socket deadlines; sockets are documented as single-caller, so the
// temporary swap is not observable by a correct application.
const nonblockDeadline = time.Millisecond

// SocketID returns the numeric identifier of the handle. Non-fallible.
func SocketID(s Socket) uint32 { return s.ID }

// Listen binds the socket to a transport URL. The URL is forwarded to the
// engine without validation.
func Listen(s Socket, url string, flags int) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	_ = flags
	return translate(st.sock.Listen(url))
}

// Dial connects the socket outbound. The dial is accepted for background
// completion; success does not mean a peer is connected yet.
func Dial(s Socket, url string, flags int) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	_ = flags
	opts := map[string]interface{}{mangos.OptionDialAsynch: true}
	return translate(st.sock.DialOptions(url, opts))
}

// Send transmits a copy of data on the socket.
func Send(s Socket, data []byte, flags int) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	if c := st.beginSend(); c != 0 {
		return c
	}

	restore, err := pushDeadline(st.sock, mangos.OptionSendDeadline, flags)
	if err != nil {
		return translate(err)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	err = st.sock.Send(buf)
	restore()

	if err != nil {
		return flagCode(translate(err), flags)
	}
	st.sendDone()
	return 0
}

// SendMsg transmits a message object. On success the message handle is
// retired: ownership has transferred to the engine and the object must not
// be freed again. On failure the caller keeps ownership.
func SendMsg(s Socket, m Msg, flags int) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	if c := st.beginSend(); c != 0 {
		return c
	}

	restore, err := pushDeadline(st.sock, mangos.OptionSendDeadline, flags)
	if err != nil {
		return translate(err)
	}
	err = st.sock.SendMsg(msg)
	restore()

	if err != nil {
		return flagCode(translate(err), flags)
	}
	msgs.remove(m.ID)
	st.sendDone()
	return 0
}

// Recv receives the next message body into a freshly allocated buffer. The
// engine's staging message is released before returning.
func Recv(s Socket, flags int) ([]byte, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return nil, errors.ECLOSED
	}
	if c := st.beginRecv(); c != 0 {
		return nil, c
	}

	restore, err := pushDeadline(st.sock, mangos.OptionRecvDeadline, flags)
	if err != nil {
		return nil, translate(err)
	}
	msg, err := st.sock.RecvMsg()
	restore()

	if err != nil {
		return nil, flagCode(translate(err), flags)
	}

	data := make([]byte, len(msg.Body))
	copy(data, msg.Body)
	msg.Free()
	st.recvDone()
	return data, 0
}

// RecvMsg receives the next message as an owned message handle.
func RecvMsg(s Socket, flags int) (Msg, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return Msg{}, errors.ECLOSED
	}
	if c := st.beginRecv(); c != 0 {
		return Msg{}, c
	}

	restore, err := pushDeadline(st.sock, mangos.OptionRecvDeadline, flags)
	if err != nil {
		return Msg{}, translate(err)
	}
	msg, err := st.sock.RecvMsg()
	restore()

	if err != nil {
		return Msg{}, flagCode(translate(err), flags)
	}
	st.recvDone()
	return Msg{ID: msgs.insert(msg)}, 0
}

// beginSend enforces the req/rep exchange contract before the engine sees
// the message: a requester may not send while a request is outstanding, and
// a replier may not send without a pending request.
func (st *sockState) beginSend() errors.Code {
	if st.raw {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.proto {
	case spbind.Req:
		if st.reqPending {
			return errors.ESTATE
		}
	case spbind.Rep:
		if !st.repPending {
			return errors.ESTATE
		}
	}
	return 0
}

// beginRecv rejects a requester receive with no request outstanding.
func (st *sockState) beginRecv() errors.Code {
	if st.raw {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.proto == spbind.Req && !st.reqPending {
		return errors.ESTATE
	}
	return 0
}

func (st *sockState) sendDone() {
	if st.raw {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.proto {
	case spbind.Req:
		st.reqPending = true
	case spbind.Rep:
		st.repPending = false
	}
}

func (st *sockState) recvDone() {
	if st.raw {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.proto {
	case spbind.Req:
		st.reqPending = false
	case spbind.Rep:
		st.repPending = true
	}
}

// pushDeadline swaps in the non-blocking deadline when the flag asks for it
// and returns a func restoring the configured one.
func pushDeadline(sock mangos.Socket, opt string, flags int) (func(), error) {
	if flags&spbind.FlagNonblock == 0 {
		return func() {}, nil
	}
	prev, err := sock.GetOption(opt)
	if err != nil {
		return nil, err
	}
	if err := sock.SetOption(opt, nonblockDeadline); err != nil {
		return nil, err
	}
	return func() { _ = sock.SetOption(opt, prev) }, nil
}

// flagCode rewrites a deadline expiry into would-block under FlagNonblock.
func flagCode(c errors.Code, flags int) errors.Code {
	if flags&spbind.FlagNonblock != 0 && c == errors.ETIMEDOUT {
		return errors.EAGAIN
	}
	return c
}
