package socket

import (
	"sync/atomic"

	"github.com/scalemsg/spbind"
	"github.com/scalemsg/spbind/errors"
	"github.com/scalemsg/spbind/message"
	"github.com/scalemsg/spbind/native"
)

// Socket owns exactly one engine socket handle. Its lifecycle is a single
// irreversible transition from open to closed; once closed, every operation
// except Closed and Close fails with a closed error.
//
// A Socket is not safe for concurrent use from multiple goroutines without
// external synchronization, with one exception: Close may be called from
// another goroutine and causes outstanding blocking calls to fail with a
// closed or canceled error.
type Socket struct {
	h      native.Socket
	proto  spbind.Protocol
	raw    bool
	closed atomic.Bool
}

// ID returns the numeric identifier of the underlying handle.
func (s *Socket) ID() uint32 {
	return native.SocketID(s.h)
}

// Protocol returns the protocol the socket was opened with.
func (s *Socket) Protocol() spbind.Protocol {
	return s.proto
}

// Raw reports whether the socket was opened in raw mode.
func (s *Socket) Raw() bool {
	return s.raw
}

// Closed reports whether Close has been called.
func (s *Socket) Closed() bool {
	return s.closed.Load()
}

// Close releases the engine socket exactly once. It is idempotent and never
// fails.
func (s *Socket) Close() {
	if s.closed.CompareAndSwap(false, true) {
		native.Close(s.h)
	}
}

func (s *Socket) guard(op string) error {
	if s.closed.Load() {
		return errors.Closed(op)
	}
	return nil
}

// Listen binds the socket to a transport URL such as "tcp://host:port" or
// "ipc:///path". The URL is opaque to the binding; validation happens in the
// engine.
func (s *Socket) Listen(url string) error {
	if err := s.guard("listen"); err != nil {
		return err
	}
	if code := native.Listen(s.h, url, 0); code != 0 {
		return errors.FromCode("listen", code)
	}
	return nil
}

// Dial connects the socket outbound. A nil return means the dial was
// accepted for background completion, not that a peer is connected; callers
// may need to wait or retry sends.
func (s *Socket) Dial(url string) error {
	if err := s.guard("dial"); err != nil {
		return err
	}
	if code := native.Dial(s.h, url, 0); code != 0 {
		return errors.FromCode("dial", code)
	}
	return nil
}

// Send transmits data. The caller keeps ownership of the slice. With
// FlagNonblock the call fails with a would_block error instead of waiting.
func (s *Socket) Send(data []byte, flags int) error {
	if err := s.guard("send"); err != nil {
		return err
	}
	if code := native.Send(s.h, data, flags); code != 0 {
		return errors.FromCode("send", code)
	}
	return nil
}

// SendMsg transmits a message object. On success the message is consumed:
// ownership transfers to the engine and any further use of it fails with
// use_after_free. On failure the caller keeps ownership.
func (s *Socket) SendMsg(m *message.Message, flags int) error {
	if err := s.guard("send_msg"); err != nil {
		return err
	}
	if m.Freed() {
		return errors.UseAfterFree("send_msg")
	}
	if code := native.SendMsg(s.h, m.Handle(), flags); code != 0 {
		return errors.FromCode("send_msg", code)
	}
	m.Consume()
	return nil
}

// Recv waits for the next message and returns its body in a buffer owned by
// the caller. With FlagNonblock it fails immediately with a would_block
// error when nothing is pending; with a configured recv-timeout it fails
// with timed_out on expiry.
func (s *Socket) Recv(flags int) ([]byte, error) {
	if err := s.guard("recv"); err != nil {
		return nil, err
	}
	data, code := native.Recv(s.h, flags)
	if code != 0 {
		return nil, errors.FromCode("recv", code)
	}
	return data, nil
}

// RecvMsg waits for the next message and returns it as an owned Message.
// The caller is responsible for freeing it.
func (s *Socket) RecvMsg(flags int) (*message.Message, error) {
	if err := s.guard("recv_msg"); err != nil {
		return nil, err
	}
	h, code := native.RecvMsg(s.h, flags)
	if code != 0 {
		return nil, errors.FromCode("recv_msg", code)
	}
	return message.FromHandle(h), nil
}

// Subscribe adds a topic filter. Only meaningful on sub sockets; other
// protocols fail with not_supported.
func (s *Socket) Subscribe(topic []byte) error {
	return s.SetOption(native.OptSubscribe, topic)
}

// Unsubscribe removes a topic filter.
func (s *Socket) Unsubscribe(topic []byte) error {
	return s.SetOption(native.OptUnsubscribe, topic)
}

// NewDialer creates an endpoint object for the URL without starting it.
func (s *Socket) NewDialer(url string) (*EndpointDialer, error) {
	if err := s.guard("dialer_create"); err != nil {
		return nil, err
	}
	h, code := native.DialerCreate(s.h, url)
	if code != 0 {
		return nil, errors.FromCode("dialer_create", code)
	}
	return &EndpointDialer{h: h}, nil
}

// NewListener creates an endpoint object for the URL without binding it.
func (s *Socket) NewListener(url string) (*EndpointListener, error) {
	if err := s.guard("listener_create"); err != nil {
		return nil, err
	}
	h, code := native.ListenerCreate(s.h, url)
	if code != 0 {
		return nil, errors.FromCode("listener_create", code)
	}
	return &EndpointListener{h: h}, nil
}
