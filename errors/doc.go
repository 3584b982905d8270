// Package errors provides the structured failure taxonomy for the binding.
//
// The messaging engine reports failures as integer result codes. This package
// owns the process-wide, immutable translation table from codes to failure
// kinds and human-readable descriptions, plus the Error type surfaced to
// callers.
//
// Every Error carries the kind (for retry/backoff decisions), the raw engine
// code, the attempted operation, and a description:
//
//	err := errors.FromCode("dial", errors.ECONNREFUSED)
//	// [dial] connection_refused: connection refused (code 6)
//
// Errors support errors.Is matching by kind and code:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindConnRefused})
//
// Binding-layer checks that fire before any engine call (closed sockets,
// freed messages, unrecognized option value types) use the same Error type,
// so callers handle one taxonomy regardless of where a failure originated.
package errors
