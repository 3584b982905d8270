package native

import (
	"go.nanomsg.org/mangos/v3"
	"go.uber.org/zap"

	"github.com/scalemsg/spbind"
	"github.com/scalemsg/spbind/errors"
)

// Dialer and listener objects give callers endpoint-level lifecycle control:
// create first, start later, close independently of the socket.

// DialerCreate allocates a dialer for the URL without starting it.
func DialerCreate(s Socket, url string) (Dialer, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return Dialer{}, errors.ECLOSED
	}
	d, err := st.sock.NewDialer(url, nil)
	if err != nil {
		return Dialer{}, translate(err)
	}
	id := dialers.insert(d)
	Logger().Debug("dialer created", zap.Uint32("id", id), zap.String("url", url))
	return Dialer{ID: id}, 0
}

// DialerStart begins connecting. With FlagNonblock the connection is
// established in the background and failures surface on later operations.
func DialerStart(d Dialer, flags int) errors.Code {
	dl, ok := dialers.get(d.ID)
	if !ok {
		return errors.ECLOSED
	}
	if flags&spbind.FlagNonblock != 0 {
		if err := dl.SetOption(mangos.OptionDialAsynch, true); err != nil {
			return translate(err)
		}
	}
	return translate(dl.Dial())
}

// DialerAddress returns the dialer's URL.
func DialerAddress(d Dialer) (string, errors.Code) {
	dl, ok := dialers.get(d.ID)
	if !ok {
		return "", errors.ECLOSED
	}
	return dl.Address(), 0
}

// DialerClose releases the dialer. Closing an unknown handle is a no-op.
func DialerClose(d Dialer) {
	dl, ok := dialers.remove(d.ID)
	if !ok {
		return
	}
	if err := dl.Close(); err != nil {
		Logger().Debug("dialer close reported error", zap.Uint32("id", d.ID), zap.Error(err))
	}
}

// ListenerCreate allocates a listener for the URL without binding it.
func ListenerCreate(s Socket, url string) (Listener, errors.Code) {
	st, ok := sockets.get(s.ID)
	if !ok {
		return Listener{}, errors.ECLOSED
	}
	l, err := st.sock.NewListener(url, nil)
	if err != nil {
		return Listener{}, translate(err)
	}
	id := listeners.insert(l)
	Logger().Debug("listener created", zap.Uint32("id", id), zap.String("url", url))
	return Listener{ID: id}, 0
}

// ListenerStart binds and begins accepting.
func ListenerStart(l Listener, flags int) errors.Code {
	ls, ok := listeners.get(l.ID)
	if !ok {
		return errors.ECLOSED
	}
	_ = flags
	return translate(ls.Listen())
}

// ListenerAddress returns the listener's URL.
func ListenerAddress(l Listener) (string, errors.Code) {
	ls, ok := listeners.get(l.ID)
	if !ok {
		return "", errors.ECLOSED
	}
	return ls.Address(), 0
}

// ListenerClose releases the listener. Closing an unknown handle is a no-op.
func ListenerClose(l Listener) {
	ls, ok := listeners.remove(l.ID)
	if !ok {
		return
	}
	if err := ls.Close(); err != nil {
		Logger().Debug("listener close reported error", zap.Uint32("id", l.ID), zap.Error(err))
	}
}
