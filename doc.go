// Package spbind provides a safe Go binding layer for Scalability Protocols
// messaging (pair, push/pull, pub/sub, req/rep, surveyor/respondent, bus)
// over pluggable transports (tcp, ipc, inproc, ws, tls).
//
// The protocol state machines and transport stacks themselves live in the
// messaging engine; this library owns the binding concerns on top of it:
// handle lifecycle, message buffer ownership, typed option marshaling, and
// translation of engine result codes into a structured failure taxonomy.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	spbind/          Root package with protocol and flag constants
//	├── errors/      Result codes and the structured failure taxonomy
//	├── native/      Handle-based facade over the messaging engine
//	├── message/     Owned message buffers with explicit free
//	├── socket/      Sockets, the protocol opener, and the option codec
//	└── aio/         Optional asynchronous I/O capability
//
// # Quick Start
//
// Open a socket, bind it, and exchange messages:
//
//	srv, err := socket.Open(spbind.Pair0, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//
//	if err := srv.Listen("tcp://127.0.0.1:5555"); err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := srv.Recv(0)
//
// # Ownership
//
// Sockets and messages each own exactly one engine resource. Close and Free
// are idempotent and never fail; every other operation on a closed socket or
// freed message fails with a structured error instead of touching the engine.
// A message passed to a successful send is consumed and must not be reused.
//
// Sockets and messages are not safe for concurrent use from multiple
// goroutines without external synchronization.
package spbind
