// Package aio provides an optional asynchronous I/O capability on top of the
// blocking socket surface.
//
// The core binding is synchronous; nothing in the socket or message packages
// depends on this one. An AIO wraps one socket and runs at most one send or
// receive at a time in a background goroutine, with its own timeout and an
// explicit allocate/begin/wait/cancel/free lifecycle:
//
//	op := aio.New(sock)
//	defer op.Free()
//
//	op.SetTimeout(time.Second)
//	if err := op.Recv(); err != nil { ... }
//	if err := op.Wait(); err != nil { ... }
//	msg := op.Msg()
package aio
