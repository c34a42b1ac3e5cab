package state

import (
	"context"
)

// Connection lifecycle states. Unlike the full RFC 6733 peer election
// machine this is adapted from, a dummy OCS connection never initiates or
// elects — it only ever answers — so there is no Wait-Conn-Ack/Elect
// branch here, just these three states. Only a Disconnect-Peer passes
// through ConnClosing; every other termination goes straight to ConnClosed.
const (
	ConnOpen    State = "Open"
	ConnClosing State = "Closing"
	ConnClosed  State = "Closed"
)

// Events that end a connection's Open state (spec.md §4.6/§7). Request
// processing itself never changes state — it loops within ConnOpen — so
// these are the only transitions the machine defines.
const (
	EventIOError       Event = "IOError"
	EventParseFailure  Event = "ParseFailure"
	EventOverflow      Event = "Overflow"
	EventDisconnectReq Event = "DisconnectRequested"
	EventClosed        Event = "Closed"
)

// LifecycleRecord is the accumulator threaded through a connection's
// termination transition: the reason it closed, and, for termination
// kinds that carry one, the offending detail.
type LifecycleRecord struct {
	RemoteAddr string
	Reason     string
	ResultCode uint32
}

// LogTermination is the sole action attached to every terminating
// transition; callers supply the actual logger via the context so the FSM
// stays decoupled from any particular logging library.
var LogTermination = Action[LifecycleRecord]{
	Name: "LogTermination",
	Fn: func(ctx context.Context, rec *LifecycleRecord) (*LifecycleRecord, error) {
		if logFn, ok := ctx.Value(terminationLoggerKey{}).(func(*LifecycleRecord)); ok {
			logFn(rec)
		}
		return rec, nil
	},
}

type terminationLoggerKey struct{}

// WithTerminationLogger returns a context that LogTermination's action will
// invoke logFn from when it runs.
func WithTerminationLogger(ctx context.Context, logFn func(*LifecycleRecord)) context.Context {
	return context.WithValue(ctx, terminationLoggerKey{}, logFn)
}

// NewConnectionLifecycle builds the three-state FSM every server
// connection drives exactly once, from ConnOpen to ConnClosed, via
// whichever terminating event actually occurred.
func NewConnectionLifecycle() *FSM[LifecycleRecord] {
	fsm := NewFSM[LifecycleRecord](ConnOpen)
	fsm.RegisterState(ConnClosing)
	fsm.RegisterState(ConnClosed)

	actions := []Action[LifecycleRecord]{LogTermination}
	fsm.AddTransition(ConnOpen, ConnClosed, EventIOError, actions)
	fsm.AddTransition(ConnOpen, ConnClosed, EventParseFailure, actions)
	fsm.AddTransition(ConnOpen, ConnClosed, EventOverflow, actions)
	fsm.AddTransition(ConnOpen, ConnClosing, EventDisconnectReq, actions)
	fsm.AddTransition(ConnClosing, ConnClosed, EventClosed, nil)

	return fsm
}
