package message

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBasicAvp(t *testing.T) {
	// S1: a single Origin-Host u32 AVP produces exactly 32 bytes.
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutUint32(AvpId{Code: AVP_CODE_ORIGIN_HOST}, 0, 50)
	b.End()

	require.Equal(t, 32, len(buf))

	header, err := ParseMessageHeader(buf[:HeaderLength])
	require.NoError(t, err)
	assert.EqualValues(t, 32, header.Length)
	assert.Equal(t, CapabilitiesExchange, header.Command)

	avpHeader, err := parseAvpHeader(buf[HeaderLength:])
	require.NoError(t, err)
	assert.EqualValues(t, 12, avpHeader.Length)
	assert.Equal(t, AVP_CODE_ORIGIN_HOST, avpHeader.Id.Code)
}

func TestBuilderChainedAvps(t *testing.T) {
	// S2: two Origin-Host AVPs chained, total output length 44 bytes.
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutUint32(AvpId{Code: AVP_CODE_ORIGIN_HOST}, 0, 50)
	b.PutUint32(AvpId{Code: AVP_CODE_ORIGIN_HOST}, 0, 50)
	b.End()

	assert.Equal(t, 44, len(buf))
}

func TestBuilderBytesPadding(t *testing.T) {
	// S3: a 3-byte bytes AVP pads to a 12-byte record but reports an
	// 11-byte length.
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutBytes(AvpId{Code: AVP_CODE_ORIGIN_HOST}, 0, []byte{1, 2, 3})
	b.End()

	assert.Equal(t, 0, len(buf)%4, "invariant 2: buffer length always 4-aligned")

	avpHeader, err := parseAvpHeader(buf[HeaderLength:])
	require.NoError(t, err)
	assert.EqualValues(t, 11, avpHeader.Length)
	assert.EqualValues(t, 32, len(buf), "8-byte header + 3 payload bytes + 1 pad byte, inside a 20-byte message header")
}

func TestBuilderGroupedAvpBackpatch(t *testing.T) {
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0x11223344, 0x55667788)
	group := b.BeginAVP(AvpId{Code: 456}, AvpFlagMandatory)
	group.PutUint32(AvpId{Code: 439}, 0, 7)
	group.PutUint32(AvpId{Code: 432}, 0, 9)
	group.End()
	b.End()

	header, err := ParseMessageHeader(buf[:HeaderLength])
	require.NoError(t, err)
	assert.EqualValues(t, len(buf), header.Length, "invariant 1: header length matches total emitted bytes")
	assert.EqualValues(t, 0x11223344, header.HopByHop)
	assert.EqualValues(t, 0x55667788, header.EndToEnd)

	groupHeader, err := parseAvpHeader(buf[HeaderLength:])
	require.NoError(t, err)
	assert.EqualValues(t, 8+12+12, groupHeader.Length, "invariant 3: length excludes padding, includes header")
	assert.Equal(t, AvpFlagMandatory, groupHeader.Flags, "invariant 4: flag byte preserved across back-patch")
}

func TestBuilderAddress(t *testing.T) {
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutAddress(AvpId{Code: AVP_CODE_HOST_IP_ADDRESS}, 0, net.ParseIP("127.0.0.1"))
	b.End()

	avpHeader, err := parseAvpHeader(buf[HeaderLength:])
	require.NoError(t, err)
	assert.EqualValues(t, 8+6, avpHeader.Length)
}

func TestBuilderConditionalWriters(t *testing.T) {
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutUint32Nonzero(AvpId{Code: AVP_CODE_ORIGIN_HOST}, 0, 0)
	b.PutBytesNonempty(AvpId{Code: AVP_CODE_ORIGIN_REALM}, 0, nil)
	var absent *uint32
	b.PutUint32Option(AvpId{Code: AVP_CODE_VENDOR_ID}, 0, absent)
	b.End()

	assert.Equal(t, HeaderLength, len(buf), "all conditional writers must have been skipped")
}
