// TCP connection management for the Diameter server side.
package transport

import (
	"net"
	"time"
)

// DiameterConnection wraps a single accepted TCP connection to a Diameter
// peer. The server holds exactly one of these per connection goroutine; it
// is never shared across goroutines.
type DiameterConnection struct {
	conn         net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Read reads data from the Diameter connection, applying the configured
// read deadline if one is set. Diameter frames the message body itself
// (§4.6), so callers are expected to call Read until they have exactly the
// number of bytes their current read phase (header or payload) requires.
func (dc *DiameterConnection) Read(buffer []byte) (int, error) {
	if dc.readTimeout > 0 {
		dc.conn.SetReadDeadline(time.Now().Add(dc.readTimeout))
	}
	return dc.conn.Read(buffer)
}

// Write writes data to the Diameter connection in one call, matching the
// "write the entire output buffer in one shot" contract of §4.6 step 4.
func (dc *DiameterConnection) Write(data []byte) (int, error) {
	if dc.writeTimeout > 0 {
		dc.conn.SetWriteDeadline(time.Now().Add(dc.writeTimeout))
	}
	return dc.conn.Write(data)
}

// Close closes the underlying TCP connection.
func (dc *DiameterConnection) Close() error {
	return dc.conn.Close()
}

func (dc *DiameterConnection) LocalAddr() net.Addr {
	return dc.conn.LocalAddr()
}

func (dc *DiameterConnection) RemoteAddr() net.Addr {
	return dc.conn.RemoteAddr()
}

// SetTimeouts sets read and write deadlines applied before each Read/Write.
// Per spec.md §5, these are not part of the wire contract — the connection
// state machine otherwise blocks indefinitely on peer I/O — but a server
// operator may opt into them.
func (dc *DiameterConnection) SetTimeouts(readTimeout, writeTimeout time.Duration) {
	dc.readTimeout = readTimeout
	dc.writeTimeout = writeTimeout
}
