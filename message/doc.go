// Package message provides owned message buffers with separate header and
// body regions.
//
// Each Message wraps one engine message object and a freed tombstone. Every
// accessor and mutator checks the tombstone before touching the engine, so a
// freed message fails with a use_after_free error instead of handing a dead
// handle to the engine. Free is idempotent. A message passed to a successful
// send is consumed and behaves as freed from then on.
package message
