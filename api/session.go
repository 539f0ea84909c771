// File: api/session.go
// License: Apache-2.0
//
// Session and idle-checker collaborator contracts.

package api

import "time"

// SessionState is the connection-establishment state of a session.
type SessionState int32

const (
	SessionInitializing SessionState = iota
	SessionConnecting
	SessionConnected
	SessionFailed
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case SessionInitializing:
		return "initializing"
	case SessionConnecting:
		return "connecting"
	case SessionConnected:
		return "connected"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IdleStatus selects one of the two idle directions tracked per session.
type IdleStatus int

const (
	ReadIdle IdleStatus = iota
	WriteIdle
)

// Session is the view of a live connection exposed to loops and the idle
// checker.
type Session interface {
	// Handle returns the raw socket descriptor.
	Handle() uintptr

	// State returns the current connection state.
	State() SessionState

	// IdleTime returns the configured idle duration for status; zero means
	// idle tracking is disabled for that direction.
	IdleTime(status IdleStatus) time.Duration

	// LastActive returns the time of the last activity for status.
	LastActive(status IdleStatus) time.Time

	// NotifyIdle informs the session that it has been idle for at least its
	// configured duration. Called from the idle checker goroutine.
	NotifyIdle(status IdleStatus, at time.Time)

	// ConnectDeadline returns the absolute deadline for connection
	// establishment; zero means no deadline.
	ConnectDeadline() time.Time

	// NotifyConnectTimeout fails a still-connecting session. Called from the
	// idle checker goroutine; a no-op once the session left the connecting
	// state.
	NotifyConnectTimeout(at time.Time)
}

// IdleChecker tracks idle deadlines and connect deadlines for registered
// sessions. Registration must be safe from multiple loop goroutines.
type IdleChecker interface {
	SessionCreated(s Session)
	SessionClosed(s Session)
	Close() error
}
