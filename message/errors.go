package message

// ParseError is the closed set of ways a Diameter message or AVP can fail
// to parse. Each variant carries a fixed human-readable description and a
// fixed Diameter result code, mirroring RFC 6733 §7.1's numbering.
//
// Framing errors (InvalidMessageLength, InvalidBitInHeader) are not
// recoverable: the byte stream itself cannot be resynchronized, so they
// close the connection. Semantic errors (the rest) are recovered by the
// caller, which builds an answer carrying ResultCode() instead.
type ParseError int

const (
	// InvalidMessageLength means the message header's length field was
	// less than the 20-byte header size.
	InvalidMessageLength ParseError = iota
	// InvalidBitInHeader means a reserved bit was set in the message
	// header's flags byte.
	InvalidBitInHeader
	// InvalidAvpLength means an AVP's length field put its header or
	// padded span past the end of the buffer it was parsed from, was
	// shorter than its own header, or gave an Unsigned32 payload a size
	// other than 4 bytes.
	InvalidAvpLength
	// InvalidAvpValue means an AVP's payload could not be interpreted as
	// its expected value (an empty Session-Id).
	InvalidAvpValue
	// InvalidAvpBits means a reserved bit was set in an AVP's flags byte.
	InvalidAvpBits
	// AvpOccursTooManyTimes means an at-most-once AVP appeared twice.
	AvpOccursTooManyTimes
)

var parseErrorDescriptions = map[ParseError]string{
	InvalidMessageLength:  "invalid message length",
	InvalidBitInHeader:    "invalid bit in message header",
	InvalidAvpLength:      "invalid AVP length",
	InvalidAvpValue:       "invalid AVP value",
	InvalidAvpBits:        "invalid bits in AVP header",
	AvpOccursTooManyTimes: "AVP occurs too many times",
}

var parseErrorResultCodes = map[ParseError]uint32{
	InvalidMessageLength:  5015,
	InvalidBitInHeader:    5013,
	InvalidAvpLength:      5014,
	InvalidAvpValue:       5004,
	InvalidAvpBits:        3009,
	AvpOccursTooManyTimes: 5009,
}

// Description returns the fixed, human-readable description of the error,
// suitable for a log line. It never depends on the offending input.
func (e ParseError) Description() string {
	return parseErrorDescriptions[e]
}

// ResultCode returns the Diameter result code an answer must carry when
// this error was recovered from (i.e. it occurred while decoding a CCR
// payload, not while framing the message itself).
func (e ParseError) ResultCode() uint32 {
	return parseErrorResultCodes[e]
}

// Error implements the standard error interface so ParseError can be
// returned and wrapped like any other Go error.
func (e ParseError) Error() string {
	return e.Description()
}
