// Package native presents the messaging engine as a handle-based ABI.
//
// Every engine resource (socket, message, dialer, listener) is identified by
// a small value-type handle carrying a uint32 ID. Handles are cheap to copy;
// copying a handle never duplicates the resource. The zero ID is always
// invalid. Operations return integer result codes from the errors package;
// zero means success.
//
// The facade owns the tables mapping live handle IDs to engine objects, the
// translation of engine error values into result codes, and the req/rep
// exchange-state checks that keep out-of-order sends from reaching the wire.
//
// Higher layers (message, socket) build the safe ownership surface on top of
// this package; applications normally never import it directly.
package native
