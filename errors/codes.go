package errors

import "fmt"

// Code is an integer result code reported by the messaging engine. Zero means
// success. The numbering follows the nng ABI so codes round-trip unchanged
// through the native boundary.
type Code int

const (
	EINTR        Code = 1
	ENOMEM       Code = 2
	EINVAL       Code = 3
	EBUSY        Code = 4
	ETIMEDOUT    Code = 5
	ECONNREFUSED Code = 6
	ECLOSED      Code = 7
	EAGAIN       Code = 8
	ENOTSUP      Code = 9
	EADDRINUSE   Code = 10
	ESTATE       Code = 11
	ENOENT       Code = 12
	EPROTO       Code = 13
	EUNREACHABLE Code = 14
	EADDRINVAL   Code = 15
	EPERM        Code = 16
	EMSGSIZE     Code = 17
	ECONNABORTED Code = 18
	ECONNRESET   Code = 19
	ECANCELED    Code = 20
	ENOFILES     Code = 21
	ENOSPC       Code = 22
	EEXIST       Code = 23
	EREADONLY    Code = 24
	EWRITEONLY   Code = 25
	ECRYPTO      Code = 26
	EPEERAUTH    Code = 27
	ENOARG       Code = 28
	EAMBIGUOUS   Code = 29
	EBADTYPE     Code = 30
	ECONNSHUT    Code = 31
	EINTERNAL    Code = 1000

	// ESYSERR and ETRANERR mark the bands reserved for raw system and
	// transport errors. The low bits carry the underlying errno.
	ESYSERR  Code = 0x10000000
	ETRANERR Code = 0x20000000
)

type codeInfo struct {
	kind Kind
	msg  string
}

// codeTable is the process-wide code translation table. It is initialized
// once and never mutated at runtime.
var codeTable = map[Code]codeInfo{
	EINTR:        {KindInterrupted, "interrupted"},
	ENOMEM:       {KindOutOfMemory, "out of memory"},
	EINVAL:       {KindInvalidArg, "invalid argument"},
	EBUSY:        {KindBusy, "resource busy"},
	ETIMEDOUT:    {KindTimedOut, "timed out"},
	ECONNREFUSED: {KindConnRefused, "connection refused"},
	ECLOSED:      {KindClosed, "object closed"},
	EAGAIN:       {KindWouldBlock, "try again"},
	ENOTSUP:      {KindNotSupported, "not supported"},
	EADDRINUSE:   {KindAddrInUse, "address in use"},
	ESTATE:       {KindBadState, "incorrect state"},
	ENOENT:       {KindNoEntry, "entry not found"},
	EPROTO:       {KindProtocolError, "protocol error"},
	EUNREACHABLE: {KindUnreachable, "destination unreachable"},
	EADDRINVAL:   {KindAddrInvalid, "address invalid"},
	EPERM:        {KindPermissionDenied, "permission denied"},
	EMSGSIZE:     {KindMessageTooLarge, "message too large"},
	ECONNABORTED: {KindConnAborted, "connection aborted"},
	ECONNRESET:   {KindConnReset, "connection reset"},
	ECANCELED:    {KindCanceled, "operation canceled"},
	ENOFILES:     {KindOutOfFiles, "out of files"},
	ENOSPC:       {KindOutOfSpace, "out of space"},
	EEXIST:       {KindExists, "resource already exists"},
	EREADONLY:    {KindReadOnly, "read only resource"},
	EWRITEONLY:   {KindWriteOnly, "write only resource"},
	ECRYPTO:      {KindCryptoError, "cryptographic error"},
	EPEERAUTH:    {KindPeerAuth, "peer could not be authenticated"},
	ENOARG:       {KindNoArgument, "option requires argument"},
	EAMBIGUOUS:   {KindAmbiguous, "ambiguous option"},
	EBADTYPE:     {KindBadType, "incorrect type"},
	ECONNSHUT:    {KindConnShut, "connection shutdown"},
	EINTERNAL:    {KindInternal, "internal error detected"},
}

// KindOf returns the failure kind for an engine result code. Codes outside
// the known set, including the system and transport error bands, collapse to
// the internal kind.
func KindOf(code Code) Kind {
	if info, ok := codeTable[code]; ok {
		return info.kind
	}
	return KindInternal
}

// Strerror returns the human-readable description of an engine result code.
func Strerror(code Code) string {
	if info, ok := codeTable[code]; ok {
		return info.msg
	}
	switch {
	case code&ESYSERR != 0:
		return fmt.Sprintf("system error #%d", code&^ESYSERR)
	case code&ETRANERR != 0:
		return fmt.Sprintf("transport error #%d", code&^ETRANERR)
	default:
		return fmt.Sprintf("unknown error #%d", code)
	}
}
