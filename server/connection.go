package server

import (
	"io"

	"github.com/dummyocs/diameter-gy/config"
	"github.com/dummyocs/diameter-gy/gy"
	"github.com/dummyocs/diameter-gy/message"
	"github.com/dummyocs/diameter-gy/transport"
)

// readBufferSize is the fixed per-connection payload read buffer (spec.md
// §4.6 step 2, §5). A request whose payload exceeds this is rejected with
// ReadBufferOverflow rather than grown to fit, bounding per-connection
// memory regardless of what a peer claims its message length is.
const readBufferSize = 16 * 1024

// connection is the per-peer state a single server goroutine owns for the
// lifetime of one TCP connection: one reusable CcRequest, one fixed read
// buffer, one growable write buffer (spec.md §5's "shared resources").
// None of it is shared with any other connection, so none of it is locked.
type connection struct {
	conn *transport.DiameterConnection
	cfg  *config.Config

	headerBuf [message.HeaderLength]byte
	readBuf   [readBufferSize]byte
	writeBuf  []byte
	ccr       gy.CcRequest
}

// serve drives the connection's request/answer loop until it terminates,
// per spec.md §4.6. It always returns a non-nil *ConnError describing why.
func (c *connection) serve() *ConnError {
	for {
		header, err := c.readHeader()
		if err != nil {
			return err
		}

		payload, err := c.readPayload(header)
		if err != nil {
			return err
		}

		c.writeBuf = c.writeBuf[:0]
		keepOpen := c.dispatch(header, payload)

		if len(c.writeBuf) > 0 {
			if _, err := c.conn.Write(c.writeBuf); err != nil {
				return ioError(err)
			}
		}

		if !keepOpen {
			return disconnected()
		}
	}
}

func (c *connection) readHeader() (message.MessageHeader, *ConnError) {
	if err := c.readExact(c.headerBuf[:]); err != nil {
		return message.MessageHeader{}, ioError(err)
	}
	header, err := message.ParseMessageHeader(c.headerBuf[:])
	if err != nil {
		return message.MessageHeader{}, parseError(err)
	}
	return header, nil
}

func (c *connection) readPayload(header message.MessageHeader) ([]byte, *ConnError) {
	plen := header.PayloadLength()
	if int(plen) > len(c.readBuf) {
		return nil, overflowError(plen)
	}
	buf := c.readBuf[:plen]
	if err := c.readExact(buf); err != nil {
		return nil, ioError(err)
	}
	return buf, nil
}

func (c *connection) readExact(buf []byte) error {
	for n := 0; n < len(buf); {
		m, err := c.conn.Read(buf[n:])
		if err != nil {
			if err == io.EOF && n > 0 {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		n += m
	}
	return nil
}

// dispatch builds the answer for header/payload into c.writeBuf and
// reports whether the connection should stay open, per spec.md §4.7.
func (c *connection) dispatch(header message.MessageHeader, payload []byte) bool {
	if !header.IsRequest() {
		return true
	}

	switch header.Command {
	case message.CapabilitiesExchange:
		buildCEA(c.cfg, header, &c.writeBuf)
	case message.DeviceWatchdog:
		buildDWA(c.cfg, header, &c.writeBuf)
	case message.DisconnectPeer:
		buildDPA(c.cfg, header, &c.writeBuf)
		return false
	case gy.CreditControl:
		buildCCA(c.cfg, header, payload, &c.writeBuf, &c.ccr)
	default:
		buildUnknown(c.cfg, header, &c.writeBuf)
	}
	return true
}
