package native

import (
	"go.nanomsg.org/mangos/v3"
	"go.uber.org/zap"

	"github.com/scalemsg/spbind/errors"
)

// MsgAlloc allocates a message object with a zero-filled body of the given
// size.
func MsgAlloc(size int) (Msg, errors.Code) {
	if size < 0 {
		return Msg{}, errors.EINVAL
	}
	msg := mangos.NewMessage(size)
	if size > 0 {
		msg.Body = append(msg.Body, make([]byte, size)...)
	}
	id := msgs.insert(msg)
	Logger().Debug("message allocated", zap.Uint32("id", id), zap.Int("size", size))
	return Msg{ID: id}, 0
}

// MsgFree releases a message object. Freeing an unknown or already retired
// handle is a no-op.
func MsgFree(m Msg) {
	msg, ok := msgs.remove(m.ID)
	if !ok {
		return
	}
	msg.Free()
	Logger().Debug("message freed", zap.Uint32("id", m.ID))
}

// MsgDup produces an independent copy of the message. Freeing either copy
// has no effect on the other.
func MsgDup(m Msg) (Msg, errors.Code) {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return Msg{}, errors.EINVAL
	}
	return Msg{ID: msgs.insert(msg.Dup())}, 0
}

// MsgLen returns the body length.
func MsgLen(m Msg) (int, errors.Code) {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return 0, errors.EINVAL
	}
	return len(msg.Body), 0
}

// MsgBody returns the live body slice. The slice aliases engine-owned memory
// and is invalidated by any mutation or free; callers wanting stable bytes
// must copy.
func MsgBody(m Msg) ([]byte, errors.Code) {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return nil, errors.EINVAL
	}
	return msg.Body, 0
}

// MsgAppend appends data to the body.
func MsgAppend(m Msg, data []byte) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	msg.Body = append(msg.Body, data...)
	return 0
}

// MsgInsert prepends data to the body.
func MsgInsert(m Msg, data []byte) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	msg.Body = prepend(msg.Body, data)
	return 0
}

// MsgTrim removes n bytes from the front of the body.
func MsgTrim(m Msg, n int) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	if n < 0 || n > len(msg.Body) {
		return errors.EINVAL
	}
	msg.Body = msg.Body[n:]
	return 0
}

// MsgChop removes n bytes from the end of the body.
func MsgChop(m Msg, n int) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	if n < 0 || n > len(msg.Body) {
		return errors.EINVAL
	}
	msg.Body = msg.Body[:len(msg.Body)-n]
	return 0
}

// MsgClear empties the body.
func MsgClear(m Msg) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	msg.Body = msg.Body[:0]
	return 0
}

// Header mirrors of the body operations.

func MsgHeaderLen(m Msg) (int, errors.Code) {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return 0, errors.EINVAL
	}
	return len(msg.Header), 0
}

func MsgHeader(m Msg) ([]byte, errors.Code) {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return nil, errors.EINVAL
	}
	return msg.Header, 0
}

func MsgHeaderAppend(m Msg, data []byte) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	msg.Header = append(msg.Header, data...)
	return 0
}

func MsgHeaderInsert(m Msg, data []byte) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	msg.Header = prepend(msg.Header, data)
	return 0
}

func MsgHeaderTrim(m Msg, n int) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	if n < 0 || n > len(msg.Header) {
		return errors.EINVAL
	}
	msg.Header = msg.Header[n:]
	return 0
}

func MsgHeaderChop(m Msg, n int) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	if n < 0 || n > len(msg.Header) {
		return errors.EINVAL
	}
	msg.Header = msg.Header[:len(msg.Header)-n]
	return 0
}

func MsgHeaderClear(m Msg) errors.Code {
	msg, ok := msgs.get(m.ID)
	if !ok {
		return errors.EINVAL
	}
	msg.Header = msg.Header[:0]
	return 0
}

func prepend(dst, data []byte) []byte {
	if len(data) == 0 {
		return dst
	}
	out := make([]byte, 0, len(data)+len(dst))
	out = append(out, data...)
	return append(out, dst...)
}
