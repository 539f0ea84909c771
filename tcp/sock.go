// File: tcp/sock.go
// License: Apache-2.0
//
// Low-level socket abstraction under a session. Platform implementations live
// in sock_linux.go / sock_stub.go; tests substitute a recording double.

package tcp

import "time"

type sockOption int

const (
	optKeepAlive sockOption = iota
	optOOBInline
	optReuseAddress
	optNoDelay
	optReceiveBuffer
	optSendBuffer
	optTrafficClass
)

// rawSock is a non-blocking outbound socket bound to one remote address.
type rawSock interface {
	// Fd returns the raw descriptor.
	Fd() uintptr

	// SetBoolOption / SetIntOption / SetLinger apply one socket option.
	SetBoolOption(opt sockOption, v bool) error
	SetIntOption(opt sockOption, v int) error
	SetLinger(d time.Duration) error

	// Connect issues the non-blocking connect. connected reports the
	// immediate completion path; a deferred connect returns (false, nil).
	Connect() (connected bool, err error)

	// ConnectError returns the pending socket error after a deferred connect
	// became writable, or nil when the handshake succeeded.
	ConnectError() error

	// Close releases the descriptor.
	Close() error
}
