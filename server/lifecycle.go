package server

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dummyocs/diameter-gy/state"
)

// logTermination drives conn's lifecycle FSM through its terminating
// transition for connErr, logging at the level SPEC_FULL.md §10.1 assigns
// each termination kind: info for a graceful disconnect, warn for anything
// that closed the connection out from under the peer (I/O error, framing
// parse error, overflow).
func logTermination(logger *log.Logger, remoteAddr string, connErr *ConnError) {
	fsm := state.NewConnectionLifecycle()
	rec := &state.LifecycleRecord{RemoteAddr: remoteAddr}

	ctx := state.WithTerminationLogger(context.Background(), func(r *state.LifecycleRecord) {
		fields := []any{"remote_addr", r.RemoteAddr, "reason", r.Reason}
		if r.ResultCode != 0 {
			fields = append(fields, "result_code", r.ResultCode)
		}
		if connErr.IsDisconnected() {
			logger.Info(r.Reason, fields...)
		} else {
			logger.Warn(r.Reason, fields...)
		}
	})

	event := state.EventIOError
	size, isOverflow := connErr.OverflowSize()
	pe, isParseError := connErr.ParseError()

	switch {
	case connErr.IsDisconnected():
		rec.Reason = "client disconnected gracefully"
		event = state.EventDisconnectReq
	case isOverflow:
		rec.Reason = "read buffer overflow"
		rec.ResultCode = size
		event = state.EventOverflow
	case isParseError:
		rec.Reason = connErr.Error()
		rec.ResultCode = pe.ResultCode()
		event = state.EventParseFailure
	default:
		rec.Reason = connErr.Error()
	}

	if _, err := fsm.Trigger(ctx, event, rec); err != nil {
		logger.Warn("lifecycle transition failed", "remote_addr", remoteAddr, "error", err)
	}
	if event == state.EventDisconnectReq {
		fsm.Trigger(ctx, state.EventClosed, rec)
	}
}
