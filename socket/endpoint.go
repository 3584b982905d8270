package socket

import (
	"sync/atomic"

	"github.com/scalemsg/spbind/errors"
	"github.com/scalemsg/spbind/native"
)

// EndpointDialer is an outbound endpoint created detached from its start.
// It owns one engine dialer object.
type EndpointDialer struct {
	h      native.Dialer
	closed atomic.Bool
}

// Start begins connecting. With FlagNonblock the connection completes in the
// background.
func (d *EndpointDialer) Start(flags int) error {
	if d.closed.Load() {
		return errors.Closed("dialer_start")
	}
	if code := native.DialerStart(d.h, flags); code != 0 {
		return errors.FromCode("dialer_start", code)
	}
	return nil
}

// Address returns the endpoint URL.
func (d *EndpointDialer) Address() (string, error) {
	if d.closed.Load() {
		return "", errors.Closed("dialer_address")
	}
	addr, code := native.DialerAddress(d.h)
	if code != 0 {
		return "", errors.FromCode("dialer_address", code)
	}
	return addr, nil
}

// Close releases the dialer exactly once. Idempotent, never fails.
func (d *EndpointDialer) Close() {
	if d.closed.CompareAndSwap(false, true) {
		native.DialerClose(d.h)
	}
}

// EndpointListener is an inbound endpoint created detached from its start.
// It owns one engine listener object.
type EndpointListener struct {
	h      native.Listener
	closed atomic.Bool
}

// Start binds the endpoint and begins accepting peers.
func (l *EndpointListener) Start(flags int) error {
	if l.closed.Load() {
		return errors.Closed("listener_start")
	}
	if code := native.ListenerStart(l.h, flags); code != 0 {
		return errors.FromCode("listener_start", code)
	}
	return nil
}

// Address returns the endpoint URL.
func (l *EndpointListener) Address() (string, error) {
	if l.closed.Load() {
		return "", errors.Closed("listener_address")
	}
	addr, code := native.ListenerAddress(l.h)
	if code != 0 {
		return "", errors.FromCode("listener_address", code)
	}
	return addr, nil
}

// Close releases the listener exactly once. Idempotent, never fails.
func (l *EndpointListener) Close() {
	if l.closed.CompareAndSwap(false, true) {
		native.ListenerClose(l.h)
	}
}
