package socket

import (
	"fmt"

	"github.com/scalemsg/spbind"
	"github.com/scalemsg/spbind/errors"
	"github.com/scalemsg/spbind/native"
)

// Open allocates a socket for the given protocol. Protocols outside the
// enumerated set fail with invalid_argument before any engine call.
func Open(proto spbind.Protocol, raw bool) (*Socket, error) {
	if !proto.Valid() {
		return nil, errors.InvalidArg("open", fmt.Sprintf("unknown protocol %#x", uint16(proto)))
	}
	h, code := native.Open(proto, raw)
	if code != 0 {
		return nil, errors.FromCode("open", code)
	}
	return &Socket{h: h, proto: proto, raw: raw}, nil
}

// OpenName is Open keyed by protocol name ("pair0", "req", "bus", ...).
func OpenName(name string, raw bool) (*Socket, error) {
	proto, ok := spbind.ParseProtocol(name)
	if !ok {
		return nil, errors.InvalidArg("open", fmt.Sprintf("unknown protocol %q", name))
	}
	return Open(proto, raw)
}

// Cooked-mode convenience constructors, one per protocol.

func NewPair0() (*Socket, error)      { return Open(spbind.Pair0, false) }
func NewPair1() (*Socket, error)      { return Open(spbind.Pair1, false) }
func NewPub() (*Socket, error)        { return Open(spbind.Pub, false) }
func NewSub() (*Socket, error)        { return Open(spbind.Sub, false) }
func NewReq() (*Socket, error)        { return Open(spbind.Req, false) }
func NewRep() (*Socket, error)        { return Open(spbind.Rep, false) }
func NewPush() (*Socket, error)       { return Open(spbind.Push, false) }
func NewPull() (*Socket, error)       { return Open(spbind.Pull, false) }
func NewSurveyor() (*Socket, error)   { return Open(spbind.Surveyor, false) }
func NewRespondent() (*Socket, error) { return Open(spbind.Respondent, false) }
func NewBus() (*Socket, error)        { return Open(spbind.Bus, false) }
