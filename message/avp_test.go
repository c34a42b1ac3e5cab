package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAvpHeaderBase(t *testing.T) {
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutUint32(AvpId{Code: 264}, 0, 42)
	b.End()

	header, err := parseAvpHeader(buf[HeaderLength:])
	require.NoError(t, err)
	assert.Equal(t, AvpId{Code: 264}, header.Id)
	assert.EqualValues(t, avpHeaderLength, header.HeaderLen())
}

func TestParseAvpHeaderVendor(t *testing.T) {
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutUint32(AvpId{Code: 999, VendorID: 10415}, AvpFlagVendor, 1)
	b.End()

	header, err := parseAvpHeader(buf[HeaderLength:])
	require.NoError(t, err)
	assert.Equal(t, uint32(10415), header.Id.VendorID)
	assert.EqualValues(t, avpVendorHeaderLength, header.HeaderLen())
}

func TestParseAvpHeaderReservedBits(t *testing.T) {
	// invariant 7's AVP-level counterpart: reserved bits 0x1F must fault.
	buf := []byte{0, 0, 1, 8, 0x01, 0, 0, 8}
	_, err := parseAvpHeader(buf)
	assert.Equal(t, InvalidAvpBits, err)
}

func TestParseAvpHeaderTooShort(t *testing.T) {
	_, err := parseAvpHeader([]byte{0, 0, 1, 8})
	assert.Equal(t, InvalidAvpLength, err)
}

func TestWalkAvpsStopsOnHandlerError(t *testing.T) {
	var buf []byte
	b := NewMessageBuilder(&buf, 0, CapabilitiesExchange, 0, 0)
	b.PutUint32(AvpId{Code: 1}, 0, 1)
	b.PutUint32(AvpId{Code: 2}, 0, 2)
	b.End()

	var seen []uint32
	err := WalkAVPs(buf[HeaderLength:], func(id AvpId, payload []byte, acc *int) error {
		seen = append(seen, id.Code)
		return InvalidAvpValue
	}, new(int))

	assert.Equal(t, InvalidAvpValue, err)
	assert.Equal(t, []uint32{1}, seen, "walker must stop at the first handler error")
}

func TestParseUint32Payload(t *testing.T) {
	v, err := ParseUint32Payload([]byte{0, 0, 0, 7})
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)

	_, err = ParseUint32Payload([]byte{0, 0, 7})
	assert.Equal(t, InvalidAvpLength, err)
}

func TestRoundUp4(t *testing.T) {
	cases := map[uint32]uint32{0: 0, 1: 4, 3: 4, 4: 4, 5: 8, 11: 12}
	for in, want := range cases {
		assert.Equal(t, want, roundUp4(in))
	}
}
