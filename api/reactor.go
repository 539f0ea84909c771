// File: api/reactor.go
// License: Apache-2.0
//
// Registration contract between sessions and event loops. A Loop multiplexes
// readiness notifications for many file descriptors on a single goroutine;
// sessions subscribe with an Interest set and receive dispatches through
// ReadinessHandler on the loop goroutine.

package api

// Interest is the set of readiness conditions a registration subscribes to.
type Interest uint8

const (
	InterestAccept Interest = 1 << iota
	InterestConnect
	InterestRead
	InterestWrite
)

// Has reports whether all bits of o are present in i.
func (i Interest) Has(o Interest) bool {
	return i&o == o
}

// Registration is the opaque handle installed by a Loop for one descriptor.
// It is delivered through the registration callback and is assigned to a
// session at most once.
type Registration interface {
	// Interest returns the currently subscribed readiness set.
	Interest() Interest

	// SetInterest replaces the subscribed readiness set.
	SetInterest(i Interest) error

	// Cancel removes the registration from its loop. Idempotent.
	Cancel() error
}

// ReadinessHandler receives readiness dispatches. Ready runs on the loop
// goroutine; ops contains only bits that were both subscribed and signalled.
// A non-nil err reports a descriptor-level error condition (hangup, poll
// error); the handler owns the descriptor and determines the precise cause.
type ReadinessHandler interface {
	Ready(ops Interest, err error)
}

// Loop is a long-lived event-multiplexing goroutine.
type Loop interface {
	// Register subscribes fd with the given interest set. done is invoked on
	// the loop goroutine once the watch is installed, before any readiness
	// dispatch for fd. Returns ErrLoopClosed after Close.
	Register(interest Interest, h ReadinessHandler, fd uintptr, done func(Registration)) error

	// Name identifies the loop in logs.
	Name() string

	// Close stops the loop goroutine and releases poller resources.
	Close() error
}

// LoopPool hands out read/write loops for new sessions. Get must be safe for
// concurrent use; the selection policy belongs to the pool.
type LoopPool interface {
	Get() Loop
	Close() error
}
