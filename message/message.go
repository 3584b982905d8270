package message

import (
	"fmt"

	"github.com/scalemsg/spbind/errors"
	"github.com/scalemsg/spbind/native"
)

// Message owns exactly one engine message object. It is created by Alloc, by
// Dup, or by adopting the result of a receive; it is destroyed exactly once,
// either by Free or by being consumed by a successful send.
//
// A Message is not safe for concurrent use from multiple goroutines.
type Message struct {
	h     native.Msg
	freed bool
}

// Alloc allocates a message with a zero-filled body of the given size.
func Alloc(size int) (*Message, error) {
	h, code := native.MsgAlloc(size)
	if code != 0 {
		return nil, errors.FromCode("msg_alloc", code)
	}
	return &Message{h: h}, nil
}

// FromHandle adopts an engine message handed over by a receive operation.
// No reallocation happens; the new Message simply takes ownership.
func FromHandle(h native.Msg) *Message {
	return &Message{h: h}
}

// Handle returns the underlying engine handle. The Message retains
// ownership.
func (m *Message) Handle() native.Msg {
	return m.h
}

// Freed reports whether the message has been freed or consumed.
func (m *Message) Freed() bool {
	return m.freed
}

// Free releases the engine object. It is idempotent; freeing twice is a
// no-op and never fails.
func (m *Message) Free() {
	if m.freed {
		return
	}
	native.MsgFree(m.h)
	m.freed = true
}

// Consume marks the message as transferred to the engine. Socket send
// operations call it after a successful ownership handoff; afterwards the
// message behaves exactly like a freed one.
func (m *Message) Consume() {
	m.freed = true
}

func (m *Message) guard(op string) error {
	if m.freed {
		return errors.UseAfterFree(op)
	}
	return nil
}

func (m *Message) code(op string, code errors.Code) error {
	if code == 0 {
		return nil
	}
	return errors.FromCode(op, code)
}

// Len returns the body length.
func (m *Message) Len() (int, error) {
	if err := m.guard("msg_len"); err != nil {
		return 0, err
	}
	n, code := native.MsgLen(m.h)
	return n, m.code("msg_len", code)
}

// Body returns a copy of the body owned by the caller.
func (m *Message) Body() ([]byte, error) {
	if err := m.guard("msg_body"); err != nil {
		return nil, err
	}
	raw, code := native.MsgBody(m.h)
	if code != 0 {
		return nil, errors.FromCode("msg_body", code)
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// SetBody replaces the body (clear then append).
func (m *Message) SetBody(data []byte) error {
	if err := m.guard("msg_set_body"); err != nil {
		return err
	}
	if code := native.MsgClear(m.h); code != 0 {
		return errors.FromCode("msg_set_body", code)
	}
	return m.code("msg_set_body", native.MsgAppend(m.h, data))
}

// Append adds data to the end of the body.
func (m *Message) Append(data []byte) error {
	if err := m.guard("msg_append"); err != nil {
		return err
	}
	return m.code("msg_append", native.MsgAppend(m.h, data))
}

// Insert adds data to the front of the body.
func (m *Message) Insert(data []byte) error {
	if err := m.guard("msg_insert"); err != nil {
		return err
	}
	return m.code("msg_insert", native.MsgInsert(m.h, data))
}

// Trim removes n bytes from the front of the body.
func (m *Message) Trim(n int) error {
	if err := m.guard("msg_trim"); err != nil {
		return err
	}
	return m.code("msg_trim", native.MsgTrim(m.h, n))
}

// Chop removes n bytes from the end of the body.
func (m *Message) Chop(n int) error {
	if err := m.guard("msg_chop"); err != nil {
		return err
	}
	return m.code("msg_chop", native.MsgChop(m.h, n))
}

// Clear empties the body.
func (m *Message) Clear() error {
	if err := m.guard("msg_clear"); err != nil {
		return err
	}
	return m.code("msg_clear", native.MsgClear(m.h))
}

// HeaderLen returns the header length.
func (m *Message) HeaderLen() (int, error) {
	if err := m.guard("msg_header_len"); err != nil {
		return 0, err
	}
	n, code := native.MsgHeaderLen(m.h)
	return n, m.code("msg_header_len", code)
}

// Header returns a copy of the header owned by the caller.
func (m *Message) Header() ([]byte, error) {
	if err := m.guard("msg_header"); err != nil {
		return nil, err
	}
	raw, code := native.MsgHeader(m.h)
	if code != 0 {
		return nil, errors.FromCode("msg_header", code)
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// SetHeader replaces the header (clear then append).
func (m *Message) SetHeader(data []byte) error {
	if err := m.guard("msg_set_header"); err != nil {
		return err
	}
	if code := native.MsgHeaderClear(m.h); code != 0 {
		return errors.FromCode("msg_set_header", code)
	}
	return m.code("msg_set_header", native.MsgHeaderAppend(m.h, data))
}

// HeaderAppend adds data to the end of the header.
func (m *Message) HeaderAppend(data []byte) error {
	if err := m.guard("msg_header_append"); err != nil {
		return err
	}
	return m.code("msg_header_append", native.MsgHeaderAppend(m.h, data))
}

// HeaderInsert adds data to the front of the header.
func (m *Message) HeaderInsert(data []byte) error {
	if err := m.guard("msg_header_insert"); err != nil {
		return err
	}
	return m.code("msg_header_insert", native.MsgHeaderInsert(m.h, data))
}

// HeaderTrim removes n bytes from the front of the header.
func (m *Message) HeaderTrim(n int) error {
	if err := m.guard("msg_header_trim"); err != nil {
		return err
	}
	return m.code("msg_header_trim", native.MsgHeaderTrim(m.h, n))
}

// HeaderChop removes n bytes from the end of the header.
func (m *Message) HeaderChop(n int) error {
	if err := m.guard("msg_header_chop"); err != nil {
		return err
	}
	return m.code("msg_header_chop", native.MsgHeaderChop(m.h, n))
}

// HeaderClear empties the header.
func (m *Message) HeaderClear() error {
	if err := m.guard("msg_header_clear"); err != nil {
		return err
	}
	return m.code("msg_header_clear", native.MsgHeaderClear(m.h))
}

// String renders a short debug description. It never fails; a freed message
// renders as such.
func (m *Message) String() string {
	if m.freed {
		return "message(freed)"
	}
	hn, _ := native.MsgHeaderLen(m.h)
	bn, _ := native.MsgLen(m.h)
	return fmt.Sprintf("message(id=%d header=%dB body=%dB)", m.h.ID, hn, bn)
}

// Dup produces an independent message with the same header and body.
// Freeing one has no effect on the other.
func (m *Message) Dup() (*Message, error) {
	if err := m.guard("msg_dup"); err != nil {
		return nil, err
	}
	h, code := native.MsgDup(m.h)
	if code != 0 {
		return nil, errors.FromCode("msg_dup", code)
	}
	return &Message{h: h}, nil
}
