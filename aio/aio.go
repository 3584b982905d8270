package aio

import (
	"sync"
	"time"

	"github.com/scalemsg/spbind/errors"
	"github.com/scalemsg/spbind/message"
	"github.com/scalemsg/spbind/native"
	"github.com/scalemsg/spbind/socket"
)

// AIO runs one send or receive at a time in the background on behalf of a
// socket. It has its own explicit lifecycle: New, SetTimeout, Send/Recv,
// Wait, Cancel, Free. Beginning an operation while another is outstanding
// fails with busy.
//
// While an operation is in flight the AIO temporarily applies its own
// timeout to the socket; the socket must not be used from elsewhere until
// the operation completes (sockets are single-caller by contract).
//
// Cancel is best-effort: it abandons the operation's result but does not
// interrupt the engine call, which keeps running until the socket's timeout
// expires or the socket is closed. A received message abandoned by Cancel is
// freed, never leaked.
type AIO struct {
	sock *socket.Socket

	mu       sync.Mutex
	timeout  time.Duration
	freed    bool
	busy     bool
	canceled bool
	done     chan struct{}
	msg      *message.Message
	err      error
}

// New creates an AIO bound to the socket. The socket's lifetime must cover
// the AIO's.
func New(s *socket.Socket) *AIO {
	return &AIO{sock: s}
}

// SetTimeout sets the per-operation timeout. Zero means the socket's own
// configured timeouts apply.
func (a *AIO) SetTimeout(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeout = d
}

// Send begins transmitting the message in the background. On eventual
// success the message is consumed; on failure the caller still owns it and
// must free it.
func (a *AIO) Send(m *message.Message) error {
	if m.Freed() {
		return errors.UseAfterFree("aio_send")
	}
	return a.begin("aio_send", m, false)
}

// Recv begins receiving in the background. On success the message is
// available from Msg after Wait returns.
func (a *AIO) Recv() error {
	return a.begin("aio_recv", nil, true)
}

func (a *AIO) begin(op string, m *message.Message, recv bool) error {
	a.mu.Lock()
	if a.freed {
		a.mu.Unlock()
		return errors.Closed(op)
	}
	if a.busy {
		a.mu.Unlock()
		return errors.Busy(op)
	}
	a.busy = true
	a.canceled = false
	a.err = nil
	if a.msg != nil {
		a.msg.Free()
		a.msg = nil
	}
	done := make(chan struct{})
	a.done = done
	timeout := a.timeout
	a.mu.Unlock()

	go a.run(m, recv, timeout, done)
	return nil
}

func (a *AIO) run(m *message.Message, recv bool, timeout time.Duration, done chan struct{}) {
	restore := a.applyTimeout(recv, timeout)

	var msg *message.Message
	var err error
	if recv {
		msg, err = a.sock.RecvMsg(0)
	} else {
		err = a.sock.SendMsg(m, 0)
	}
	restore()

	a.mu.Lock()
	if a.canceled || a.freed {
		if msg != nil {
			msg.Free()
		}
	} else {
		a.msg = msg
		a.err = err
	}
	a.busy = false
	a.mu.Unlock()
	close(done)
}

// applyTimeout swaps the AIO timeout onto the socket for the duration of the
// operation and returns a func restoring the configured value.
func (a *AIO) applyTimeout(recv bool, timeout time.Duration) func() {
	if timeout <= 0 {
		return func() {}
	}
	name := native.OptSendTimeout
	if recv {
		name = native.OptRecvTimeout
	}
	prev, err := a.sock.GetOptionMs(name)
	if err != nil {
		return func() {}
	}
	if err := a.sock.SetOption(name, timeout); err != nil {
		return func() {}
	}
	return func() { _ = a.sock.SetOptionTyped(name, socket.OptMs, prev) }
}

// Wait blocks until the outstanding operation completes and returns its
// result. After a Cancel it returns canceled without waiting for the engine
// call. With nothing outstanding it returns immediately with the last
// result.
func (a *AIO) Wait() error {
	a.mu.Lock()
	if a.freed {
		a.mu.Unlock()
		return errors.Closed("aio_wait")
	}
	done := a.done
	canceled := a.canceled
	err := a.err
	a.mu.Unlock()

	if done == nil {
		return err
	}
	if canceled {
		return errors.Canceled("aio_wait")
	}

	<-done

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.canceled {
		return errors.Canceled("aio_wait")
	}
	return a.err
}

// Msg takes ownership of the message received by the last completed Recv, or
// nil if there is none. A second call returns nil.
func (a *AIO) Msg() *message.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.msg
	a.msg = nil
	return m
}

// Cancel abandons the outstanding operation, if any. Canceling a completed
// or idle AIO is a no-op.
func (a *AIO) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		a.canceled = true
	}
}

// Free cancels any outstanding operation, releases a held result message,
// and retires the AIO. Idempotent, never fails.
func (a *AIO) Free() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.freed {
		return
	}
	a.freed = true
	if a.busy {
		a.canceled = true
	}
	if a.msg != nil {
		a.msg.Free()
		a.msg = nil
	}
}
