// Diameter message header: the 20-byte envelope around every Diameter PDU.
package message

import (
	"github.com/dummyocs/diameter-gy/utils"
)

// HeaderLength is the fixed size, in bytes, of a Diameter message header
// (RFC 6733 §3).
const HeaderLength = 20

// ProtocolVersion is the only Diameter version this server emits. Per
// spec.md §9(a), an incoming header's version byte is not validated: the
// reference dummy OCS tolerates any version, and this implementation keeps
// that (intentionally lax) behavior.
const ProtocolVersion = uint8(1)

// Command flag bits (RFC 6733 §3).
const (
	FlagRequest             = uint8(0x80)
	FlagProxiable           = uint8(0x40)
	FlagError               = uint8(0x20)
	FlagRetransmitted       = uint8(0x10)
	reservedMessageFlagMask = uint8(0x0F)
)

// CommandId identifies a Diameter command: its code plus the application
// it belongs to. The pair, not the code alone, selects dispatch behavior,
// since the same code can mean different things in different applications.
type CommandId struct {
	Code          uint32
	ApplicationID uint32
}

// MessageHeader is the decoded form of a Diameter message's 20-byte header.
// HopByHop and EndToEnd are opaque correlation tokens: this server only
// ever copies them verbatim from request to answer, never interprets them.
type MessageHeader struct {
	Version  uint8
	Length   uint32
	Flags    uint8
	Command  CommandId
	HopByHop uint32
	EndToEnd uint32
}

// IsRequest reports whether the header's R bit is set.
func (h MessageHeader) IsRequest() bool {
	return h.Flags&FlagRequest != 0
}

// PayloadLength returns the number of AVP bytes that follow the header,
// i.e. Length minus the header itself.
func (h MessageHeader) PayloadLength() uint32 {
	return h.Length - HeaderLength
}

// ParseMessageHeader decodes a fixed 20-byte buffer into a MessageHeader.
// buf must be exactly HeaderLength bytes; callers (the connection state
// machine) read exactly that many bytes off the wire before calling this.
func ParseMessageHeader(buf []byte) (MessageHeader, error) {
	version := buf[0]
	length := utils.FromBytes(buf[0:4]) & 0x00FFFFFF
	if length < HeaderLength {
		return MessageHeader{}, InvalidMessageLength
	}

	flagsAndCode := utils.FromBytes(buf[4:8])
	flags := uint8(flagsAndCode >> 24)
	if flags&reservedMessageFlagMask != 0 {
		return MessageHeader{}, InvalidBitInHeader
	}
	code := flagsAndCode & 0x00FFFFFF

	appID := utils.FromBytes(buf[8:12])
	hopByHop := utils.FromBytes(buf[12:16])
	endToEnd := utils.FromBytes(buf[16:20])

	return MessageHeader{
		Version:  version,
		Length:   length,
		Flags:    flags,
		Command:  CommandId{Code: code, ApplicationID: appID},
		HopByHop: hopByHop,
		EndToEnd: endToEnd,
	}, nil
}
