package server

import (
	"errors"
	"fmt"

	"github.com/dummyocs/diameter-gy/message"
)

// ConnError is the terminal error returned by a connection's serve loop,
// mirroring the Rust ClientError enum this server's connection handling is
// ported from: every way a connection can end is one of these four kinds.
type ConnError struct {
	kind connErrorKind
	err  error
	size uint32
}

type connErrorKind int

const (
	kindIOError connErrorKind = iota
	kindParseError
	kindOverflow
	kindDisconnected
)

func ioError(err error) *ConnError {
	return &ConnError{kind: kindIOError, err: err}
}

func parseError(err error) *ConnError {
	return &ConnError{kind: kindParseError, err: err}
}

func overflowError(size uint32) *ConnError {
	return &ConnError{kind: kindOverflow, size: size}
}

func disconnected() *ConnError {
	return &ConnError{kind: kindDisconnected}
}

// IsDisconnected reports whether the connection ended because the peer
// sent a Disconnect-Peer-Request, i.e. a graceful, expected termination.
func (e *ConnError) IsDisconnected() bool {
	return e.kind == kindDisconnected
}

func (e *ConnError) Error() string {
	switch e.kind {
	case kindIOError:
		return fmt.Sprintf("i/o error: %v", e.err)
	case kindParseError:
		return fmt.Sprintf("packet parsing failed: %v", e.err)
	case kindOverflow:
		return fmt.Sprintf("packet too large: %d bytes", e.size)
	case kindDisconnected:
		return "client disconnected"
	}
	return "unknown connection error"
}

func (e *ConnError) Unwrap() error {
	return e.err
}

// ParseError extracts the underlying message.ParseError, if this
// ConnError wraps one.
func (e *ConnError) ParseError() (message.ParseError, bool) {
	if e.kind != kindParseError {
		return 0, false
	}
	var pe message.ParseError
	if errors.As(e.err, &pe) {
		return pe, true
	}
	return 0, false
}

// OverflowSize returns the oversized payload length, if this ConnError
// wraps a buffer overflow.
func (e *ConnError) OverflowSize() (uint32, bool) {
	if e.kind != kindOverflow {
		return 0, false
	}
	return e.size, true
}
