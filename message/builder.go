// Streaming message/AVP builder with scoped length back-patching.
//
// A Diameter header or AVP header carries its own total length, but that
// length isn't known until everything nested inside it has been written.
// Rather than build a tree and serialize it afterward, this builder writes
// directly into the output buffer, reserving a placeholder length at the
// start of each scope and patching in the true value when the scope ends.
// Go has no destructor to drive that patch automatically (the source this
// was ported from relies on Rust's Drop), so every Builder returned by
// NewMessageBuilder or BeginAVP must have End called exactly once, most
// often via defer, before its parent scope is used again.
package message

import (
	"net"

	"github.com/dummyocs/diameter-gy/utils"
)

const protocolVersionWord = uint32(ProtocolVersion) << 24

// Builder writes one message or one grouped AVP into buf, starting at
// startPos. It is a linear handle: End must be called exactly once, and
// the parent Builder (if any) must not be used again until the child's End
// has run, since both alias the same underlying buffer.
type Builder struct {
	buf       *[]byte
	startPos  int
	isMessage bool
}

// NewMessageBuilder appends a 20-byte message header to the end of *buf and
// returns a Builder scoped to the whole message. Callers append AVPs via
// the Put* methods, then call End to back-patch the header's Length field.
func NewMessageBuilder(buf *[]byte, flags uint8, cmd CommandId, hopByHop, endToEnd uint32) *Builder {
	startPos := len(*buf)
	extend(buf, HeaderLength)
	writeUint32At(buf, startPos, 0) // patched by End
	writeUint32At(buf, startPos+4, flagsAndCode(flags, cmd.Code))
	writeUint32At(buf, startPos+8, cmd.ApplicationID)
	writeUint32At(buf, startPos+12, hopByHop)
	writeUint32At(buf, startPos+16, endToEnd)
	return &Builder{buf: buf, startPos: startPos, isMessage: true}
}

// BeginAVP appends a grouped AVP's header and returns a Builder scoped to
// its payload. The caller writes the group's member AVPs through the
// returned Builder, then calls End to back-patch the group's length and
// pad it to a 4-byte boundary.
func (b *Builder) BeginAVP(id AvpId, flags uint8) *Builder {
	startPos := len(*b.buf)
	b.writeAvpHeader(id, flags, 0)
	return &Builder{buf: b.buf, startPos: startPos, isMessage: false}
}

// End back-patches this scope's length field with the number of bytes
// written since it was opened, preserving whichever flags were already
// written. For an AVP scope it also pads the buffer to a 4-byte boundary.
func (b *Builder) End() {
	length := uint32(len(*b.buf) - b.startPos)
	if b.isMessage {
		writeUint32At(b.buf, b.startPos, protocolVersionWord|length)
		return
	}
	flagsPos := b.startPos + 4
	flags := (*b.buf)[flagsPos]
	writeUint32At(b.buf, flagsPos, flagsAndLength(flags, length))
	b.writePadding()
}

func (b *Builder) PutEmpty(id AvpId, flags uint8) *Builder {
	b.writeAvpHeader(id, flags, 0)
	return b
}

func (b *Builder) PutUint32(id AvpId, flags uint8, value uint32) *Builder {
	b.writeAvpHeader(id, flags, 4)
	pos := len(*b.buf)
	extend(b.buf, 4)
	writeUint32At(b.buf, pos, value)
	return b
}

// PutUint32Option writes the AVP only if value is non-nil, matching
// put_avp_u32_option in the program this builder is ported from.
func (b *Builder) PutUint32Option(id AvpId, flags uint8, value *uint32) *Builder {
	if value != nil {
		b.PutUint32(id, flags, *value)
	}
	return b
}

// PutUint32Nonzero writes the AVP only if value is non-zero. Several Gy
// AVPs (Validity-Time, CC-Time, the quota thresholds) are optional and
// conventionally omitted rather than sent as zero.
func (b *Builder) PutUint32Nonzero(id AvpId, flags uint8, value uint32) *Builder {
	if value != 0 {
		b.PutUint32(id, flags, value)
	}
	return b
}

func (b *Builder) PutUint64(id AvpId, flags uint8, value uint64) *Builder {
	b.writeAvpHeader(id, flags, 8)
	pos := len(*b.buf)
	extend(b.buf, 8)
	writeUint64At(b.buf, pos, value)
	return b
}

func (b *Builder) PutUint64Nonzero(id AvpId, flags uint8, value uint64) *Builder {
	if value != 0 {
		b.PutUint64(id, flags, value)
	}
	return b
}

func (b *Builder) PutBytes(id AvpId, flags uint8, value []byte) *Builder {
	b.writeAvpHeader(id, flags, uint32(len(value)))
	*b.buf = append(*b.buf, value...)
	b.writePadding()
	return b
}

func (b *Builder) PutBytesNonempty(id AvpId, flags uint8, value []byte) *Builder {
	if len(value) != 0 {
		b.PutBytes(id, flags, value)
	}
	return b
}

// addressFamily numbers per IANA's Address Family Numbers registry, as
// used by the Address derived AVP type (RFC 6733 §4.3.1).
const (
	addressFamilyIPv4 = uint16(1)
	addressFamilyIPv6 = uint16(2)
)

// PutAddress writes addr as an Address-typed AVP: a 2-byte address family
// followed by the raw address bytes, zero-padded to 4 bytes overall.
func (b *Builder) PutAddress(id AvpId, flags uint8, addr net.IP) *Builder {
	if v4 := addr.To4(); v4 != nil {
		b.writeAvpHeader(id, flags, 2+4)
		pos := len(*b.buf)
		extend(b.buf, 2)
		writeUint16At(b.buf, pos, addressFamilyIPv4)
		*b.buf = append(*b.buf, v4...)
	} else {
		v6 := addr.To16()
		b.writeAvpHeader(id, flags, 2+16)
		pos := len(*b.buf)
		extend(b.buf, 2)
		writeUint16At(b.buf, pos, addressFamilyIPv6)
		*b.buf = append(*b.buf, v6...)
	}
	b.writePadding()
	return b
}

func (b *Builder) writeAvpHeader(id AvpId, flags uint8, payloadLength uint32) {
	pos := len(*b.buf)
	if id.VendorID != 0 {
		extend(b.buf, avpVendorHeaderLength)
		writeUint32At(b.buf, pos, id.Code)
		writeUint32At(b.buf, pos+4, flagsAndLength(flags|AvpFlagVendor, payloadLength+avpVendorHeaderLength))
		writeUint32At(b.buf, pos+8, id.VendorID)
		return
	}
	extend(b.buf, avpHeaderLength)
	writeUint32At(b.buf, pos, id.Code)
	writeUint32At(b.buf, pos+4, flagsAndLength(flags, payloadLength+avpHeaderLength))
}

func (b *Builder) writePadding() {
	for len(*b.buf)&0x03 != 0 {
		*b.buf = append(*b.buf, 0)
	}
}

func extend(buf *[]byte, n int) {
	*buf = append(*buf, make([]byte, n)...)
}

func writeUint16At(buf *[]byte, pos int, value uint16) {
	copy((*buf)[pos:pos+2], utils.ToBytes(uint32(value), 4)[2:4])
}

func writeUint32At(buf *[]byte, pos int, value uint32) {
	copy((*buf)[pos:pos+4], utils.ToBytes(value, 4))
}

func writeUint64At(buf *[]byte, pos int, value uint64) {
	copy((*buf)[pos:pos+4], utils.ToBytes(uint32(value>>32), 4))
	copy((*buf)[pos+4:pos+8], utils.ToBytes(uint32(value), 4))
}

func flagsAndCode(flags uint8, code uint32) uint32 {
	return uint32(flags)<<24 | (code & 0x00FFFFFF)
}

func flagsAndLength(flags uint8, length uint32) uint32 {
	return uint32(flags&0xE0)<<24 | (length & 0x00FFFFFF)
}
