package transport

import "errors"

// ErrAcceptTimeout is returned by DiameterListener.Accept when no connection
// arrives before the configured accept timeout elapses.
var ErrAcceptTimeout = errors.New("transport: accept timed out")
