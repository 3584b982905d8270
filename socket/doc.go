// Package socket provides protocol endpoints over the native facade: the
// protocol opener, synchronous send/receive, typed option marshaling, and
// endpoint (dialer/listener) objects.
//
// Sockets block on the calling goroutine; there is no background scheduler
// in this layer. Non-blocking behavior is opt-in per call with
// spbind.FlagNonblock, and timeouts are per-socket options (send-timeout,
// recv-timeout) rather than per-call parameters.
//
//	sock, err := socket.NewReq()
//	if err != nil { ... }
//	defer sock.Close()
//
//	if err := sock.Dial("tcp://127.0.0.1:5555"); err != nil { ... }
//	if err := sock.SetOption("recv-timeout", 2*time.Second); err != nil { ... }
//
//	if err := sock.Send([]byte("Q"), 0); err != nil { ... }
//	reply, err := sock.Recv(0)
//
// A Socket is not safe for unsynchronized concurrent use, except that Close
// may be called from another goroutine to abort outstanding blocking calls.
package socket
