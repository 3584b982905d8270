package spbind

// Protocol identifies a scalability protocol. The numeric values follow the
// SP RFC protocol numbers, so "protocol" and "peer" option reads return them
// directly.
type Protocol uint16

const (
	Pair0      Protocol = 0x10
	Pair1      Protocol = 0x11
	Pub        Protocol = 0x20
	Sub        Protocol = 0x21
	Req        Protocol = 0x30
	Rep        Protocol = 0x31
	Push       Protocol = 0x50
	Pull       Protocol = 0x51
	Surveyor   Protocol = 0x62
	Respondent Protocol = 0x63
	Bus        Protocol = 0x70
)

var protocolNames = map[Protocol]string{
	Pair0:      "pair0",
	Pair1:      "pair1",
	Pub:        "pub",
	Sub:        "sub",
	Req:        "req",
	Rep:        "rep",
	Push:       "push",
	Pull:       "pull",
	Surveyor:   "surveyor",
	Respondent: "respondent",
	Bus:        "bus",
}

// String returns the canonical protocol name, or "unknown" for values outside
// the enumerated set.
func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether p is one of the enumerated protocols.
func (p Protocol) Valid() bool {
	_, ok := protocolNames[p]
	return ok
}

// ParseProtocol maps a protocol name to its Protocol value. Only the
// canonical names are accepted; anything else returns ok == false.
func ParseProtocol(name string) (Protocol, bool) {
	for p, n := range protocolNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// Protocols returns the enumerated protocol set.
func Protocols() []Protocol {
	return []Protocol{Pair0, Pair1, Pub, Sub, Req, Rep, Push, Pull, Surveyor, Respondent, Bus}
}

// Per-call operation flags.
const (
	// FlagAlloc requests that a receive allocate the result buffer. Raw-bytes
	// receives always allocate, so the flag is accepted and implied.
	FlagAlloc = 1 << 0

	// FlagNonblock makes a send or receive fail with a would-block error
	// instead of waiting.
	FlagNonblock = 1 << 1
)
