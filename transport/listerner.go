// Listener for incoming Diameter connections.
package transport

import (
	"errors"
	"net"
	"time"
)

// DiameterListener manages incoming Diameter connections on the server
// side. Diameter over TCP is the only transport this server accepts
// (spec.md §1 names SCTP as an explicit non-goal).
type DiameterListener struct {
	listener      net.Listener
	addr          string
	acceptTimeout time.Duration
}

// NewDiameterListener creates a new TCP listener on the given address.
func NewDiameterListener(addr string, acceptTimeout time.Duration) (*DiameterListener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &DiameterListener{
		listener:      listener,
		addr:          addr,
		acceptTimeout: acceptTimeout,
	}, nil
}

// Accept waits for and returns the next incoming connection, applying the
// configured accept timeout if one was set. A deadline with no connection
// arriving before it elapses surfaces as ErrAcceptTimeout rather than the
// raw net.Error, so callers can retry with errors.Is instead of a type
// assertion.
func (dl *DiameterListener) Accept() (*DiameterConnection, error) {
	if dl.acceptTimeout > 0 {
		dl.listener.(*net.TCPListener).SetDeadline(time.Now().Add(dl.acceptTimeout))
	}
	conn, err := dl.listener.Accept()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, ErrAcceptTimeout
		}
		return nil, err
	}
	return &DiameterConnection{conn: conn}, nil
}

// Close closes the listener, stopping it from accepting any more
// connections.
func (dl *DiameterListener) Close() error {
	return dl.listener.Close()
}

// Addr returns the address the listener is listening on.
func (dl *DiameterListener) Addr() net.Addr {
	return dl.listener.Addr()
}
