// AVP header codec and the generic AVP stream parser.
package message

import (
	"github.com/dummyocs/diameter-gy/utils"
)

// AVP flag bits (RFC 6733 §4.1). Bits 0x1F are reserved and must be zero.
const (
	AvpFlagVendor       = uint8(0x80)
	AvpFlagMandatory    = uint8(0x40)
	AvpFlagProtected    = uint8(0x20)
	reservedAvpFlagMask = uint8(0x1F)
)

const (
	avpHeaderLength       = 8
	avpVendorHeaderLength = 12
)

// AvpId names an AVP by its code and, for vendor-specific AVPs, its vendor
// id. VendorID == 0 means an IETF base-protocol AVP.
type AvpId struct {
	Code     uint32
	VendorID uint32
}

// AvpHeader is a parsed AVP header: everything needed to know where its
// payload starts and ends, without having interpreted the payload itself.
type AvpHeader struct {
	Id     AvpId
	Flags  uint8
	Length uint32 // total on-wire length, header included, padding excluded
}

// HeaderLen returns 12 if the V bit is set, else 8.
func (h AvpHeader) HeaderLen() uint32 {
	if h.Flags&AvpFlagVendor != 0 {
		return avpVendorHeaderLength
	}
	return avpHeaderLength
}

// roundUp4 rounds n up to the next multiple of 4.
func roundUp4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// parseAvpHeader decodes an AVP header from the front of buf. buf may be
// longer than the header; only the leading 8 (or 12, if vendor-specific)
// bytes are consumed.
func parseAvpHeader(buf []byte) (AvpHeader, error) {
	if len(buf) < avpHeaderLength {
		return AvpHeader{}, InvalidAvpLength
	}

	code := utils.FromBytes(buf[0:4])
	flagsAndLength := utils.FromBytes(buf[4:8])
	flags := uint8(flagsAndLength >> 24)
	if flags&reservedAvpFlagMask != 0 {
		return AvpHeader{}, InvalidAvpBits
	}
	length := flagsAndLength & 0x00FFFFFF

	var vendorID uint32
	if flags&AvpFlagVendor != 0 {
		if len(buf) < avpVendorHeaderLength {
			return AvpHeader{}, InvalidAvpLength
		}
		vendorID = utils.FromBytes(buf[8:12])
	}

	return AvpHeader{
		Id:     AvpId{Code: code, VendorID: vendorID},
		Flags:  flags,
		Length: length,
	}, nil
}

// AvpHandler consumes one decoded AVP (its identity and unpadded payload)
// and folds it into acc, returning an error to abort the walk. Unknown
// AVPs are the handler's business to ignore; the walker never enforces the
// M bit (spec.md §4.2 — an intentional non-goal of this dummy OCS).
type AvpHandler[T any] func(id AvpId, payload []byte, acc *T) error

// WalkAVPs walks buf as a sequence of 4-byte-aligned AVP records, invoking
// handle once per AVP with its unpadded payload slice. It is generic over
// the accumulator type so the same walker drives both the top-level CCR
// parse and the nested Multiple-Services-Credit-Control parse (spec.md
// §4.5), matching the shape of original_source's parse_avps<T>.
func WalkAVPs[T any](buf []byte, handle AvpHandler[T], acc *T) error {
	pos := 0
	for pos < len(buf) {
		header, err := parseAvpHeader(buf[pos:])
		if err != nil {
			return err
		}

		headerLen := header.HeaderLen()
		if header.Length < headerLen {
			return InvalidAvpLength
		}

		padded := roundUp4(header.Length)
		if int(padded) > len(buf)-pos {
			return InvalidAvpLength
		}

		payload := buf[pos+int(headerLen) : pos+int(header.Length)]
		if err := handle(header.Id, payload, acc); err != nil {
			return err
		}

		pos += int(padded)
	}
	return nil
}

// ParseUint32Payload decodes a 4-byte AVP payload as a big-endian uint32.
// It fails unless the payload is exactly 4 bytes, matching RFC 6733's
// Unsigned32 type.
func ParseUint32Payload(payload []byte) (uint32, error) {
	if len(payload) != 4 {
		return 0, InvalidAvpLength
	}
	return utils.FromBytes(payload), nil
}
