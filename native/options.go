package native

import (
	"time"

	"go.nanomsg.org/mangos/v3"

	"github.com/scalemsg/spbind/errors"
)

// Option names. The namespace follows the nng convention the binding's
// callers expect; the facade maps each name onto the engine's option.
const (
	OptSendTimeout  = "send-timeout"
	OptRecvTimeout  = "recv-timeout"
	OptSendBuffer   = "send-buffer"
	OptRecvBuffer   = "recv-buffer"
	OptRecvSizeMax  = "recv-size-max"
	OptReconnMin    = "reconnect-time-min"
	OptReconnMax    = "reconnect-time-max"
	OptSocketName   = "socket-name"
	OptRaw          = "raw"
	OptProtocol     = "protocol"
	OptPeer         = "peer"
	OptProtocolName = "protocol-name"
	OptPeerName     = "peer-name"
	OptSurveyTime   = "surveyor:survey-time"
	OptResendTime   = "req:resend-time"
	OptSubscribe    = "sub:subscribe"
	OptUnsubscribe  = "sub:unsubscribe"
	OptMaxTTL       = "ttl-max"
	OptTCPNoDelay   = "tcp-nodelay"
	OptTCPKeepAlive = "tcp-keepalive"
)

var msOptions = map[string]string{
	OptSendTimeout: mangos.OptionSendDeadline,
	OptRecvTimeout: mangos.OptionRecvDeadline,
	OptReconnMin:   mangos.OptionReconnectTime,
	OptReconnMax:   mangos.OptionMaxReconnectTime,
	OptSurveyTime:  mangos.OptionSurveyTime,
	OptResendTime:  mangos.OptionRetryTime,
}

var intOptions = map[string]string{
	OptSendBuffer: mangos.OptionWriteQLen,
	OptRecvBuffer: mangos.OptionReadQLen,
	OptMaxTTL:     mangos.OptionTTL,
}

var boolOptions = map[string]string{
	OptTCPNoDelay:   mangos.OptionNoDelay,
	OptTCPKeepAlive: mangos.OptionKeepAlive,
}

// SocketSetMs sets a duration option, in milliseconds. Negative values follow
// the option namespace convention for "no deadline" and map to the engine's
// unlimited duration.
func SocketSetMs(s Socket, name string, ms int) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	opt, ok := msOptions[name]
	if !ok {
		return errors.ENOTSUP
	}
	if ms < 0 {
		ms = 0
	}
	return translate(st.sock.SetOption(opt, time.Duration(ms)*time.Millisecond))
}

// SocketGetMs reads a duration option, in milliseconds.
func SocketGetMs(s Socket, name string) (int, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return 0, errors.ECLOSED
	}
	opt, ok := msOptions[name]
	if !ok {
		return 0, errors.ENOTSUP
	}
	v, err := st.sock.GetOption(opt)
	if err != nil {
		return 0, translate(err)
	}
	d, ok := v.(time.Duration)
	if !ok {
		return 0, errors.EBADTYPE
	}
	return int(d / time.Millisecond), 0
}

// SocketSetInt sets an integer option.
func SocketSetInt(s Socket, name string, value int) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	switch name {
	case OptProtocol, OptPeer:
		return errors.EREADONLY
	}
	opt, ok := intOptions[name]
	if !ok {
		return errors.ENOTSUP
	}
	return translate(st.sock.SetOption(opt, value))
}

// SocketGetInt reads an integer option. The protocol and peer numbers come
// from the engine's protocol info.
func SocketGetInt(s Socket, name string) (int, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return 0, errors.ECLOSED
	}
	switch name {
	case OptProtocol:
		// The opened protocol number, not the engine's. They differ where
		// the facade aliases protocols onto one engine implementation.
		return int(st.proto), 0
	case OptPeer:
		return int(st.sock.Info().Peer), 0
	}
	opt, ok := intOptions[name]
	if !ok {
		return 0, errors.ENOTSUP
	}
	v, err := st.sock.GetOption(opt)
	if err != nil {
		return 0, translate(err)
	}
	n, ok := v.(int)
	if !ok {
		return 0, errors.EBADTYPE
	}
	return n, 0
}

// SocketSetSize sets a size option.
func SocketSetSize(s Socket, name string, value int64) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	if name != OptRecvSizeMax {
		return errors.ENOTSUP
	}
	if value < 0 {
		return errors.EINVAL
	}
	return translate(st.sock.SetOption(mangos.OptionMaxRecvSize, int(value)))
}

// SocketGetSize reads a size option.
func SocketGetSize(s Socket, name string) (int64, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return 0, errors.ECLOSED
	}
	if name != OptRecvSizeMax {
		return 0, errors.ENOTSUP
	}
	v, err := st.sock.GetOption(mangos.OptionMaxRecvSize)
	if err != nil {
		return 0, translate(err)
	}
	n, ok := v.(int)
	if !ok {
		return 0, errors.EBADTYPE
	}
	return int64(n), 0
}

// SocketSetBool sets a boolean option.
func SocketSetBool(s Socket, name string, value bool) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	if name == OptRaw {
		return errors.EREADONLY
	}
	opt, ok := boolOptions[name]
	if !ok {
		return errors.ENOTSUP
	}
	return translate(st.sock.SetOption(opt, value))
}

// SocketGetBool reads a boolean option.
func SocketGetBool(s Socket, name string) (bool, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return false, errors.ECLOSED
	}
	if name == OptRaw {
		return st.raw, 0
	}
	opt, ok := boolOptions[name]
	if !ok {
		return false, errors.ENOTSUP
	}
	v, err := st.sock.GetOption(opt)
	if err != nil {
		return false, translate(err)
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.EBADTYPE
	}
	return b, 0
}

// SocketSetUint64 sets a 64-bit unsigned option. The engine exposes no
// writable uint64 socket options, so known names fail with EBADTYPE and
// unknown names with ENOTSUP, always before an engine call.
func SocketSetUint64(s Socket, name string, value uint64) errors.Code {
	_, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	_ = value
	if isKnownOption(name) {
		return errors.EBADTYPE
	}
	return errors.ENOTSUP
}

// SocketGetUint64 reads a 64-bit unsigned option.
func SocketGetUint64(s Socket, name string) (uint64, errors.Code) {
	_, ok := sockets.get(s.ID)
	if !ok {
		return 0, errors.ECLOSED
	}
	if isKnownOption(name) {
		return 0, errors.EBADTYPE
	}
	return 0, errors.ENOTSUP
}

// SocketSetString sets a string option. Subscription options route to the
// engine's topic filters.
func SocketSetString(s Socket, name, value string) errors.Code {
	st, ok := sockets.get(s.ID)
	if !ok {
		return errors.ECLOSED
	}
	switch name {
	case OptSocketName:
		st.mu.Lock()
		st.name = value
		st.mu.Unlock()
		return 0
	case OptSubscribe:
		return translate(st.sock.SetOption(mangos.OptionSubscribe, []byte(value)))
	case OptUnsubscribe:
		return translate(st.sock.SetOption(mangos.OptionUnsubscribe, []byte(value)))
	case OptProtocolName, OptPeerName:
		return errors.EREADONLY
	}
	return errors.ENOTSUP
}

// SocketGetString reads a string option. The returned string is a fresh copy
// owned by the caller; nothing engine-owned escapes.
func SocketGetString(s Socket, name string) (string, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return "", errors.ECLOSED
	}
	switch name {
	case OptSocketName:
		st.mu.Lock()
		defer st.mu.Unlock()
		return st.name, 0
	case OptProtocolName:
		return st.sock.Info().SelfName, 0
	case OptPeerName:
		return st.sock.Info().PeerName, 0
	case OptSubscribe, OptUnsubscribe:
		return "", errors.EWRITEONLY
	}
	return "", errors.ENOTSUP
}

func isKnownOption(name string) bool {
	if _, ok := msOptions[name]; ok {
		return true
	}
	if _, ok := intOptions[name]; ok {
		return true
	}
	if _, ok := boolOptions[name]; ok {
		return true
	}
	switch name {
	case OptRecvSizeMax, OptSocketName, OptRaw, OptProtocol, OptPeer,
		OptProtocolName, OptPeerName, OptSubscribe, OptUnsubscribe:
		return true
	}
	return false
}
