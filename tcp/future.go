// File: tcp/future.go
// License: Apache-2.0
//
// Single-resolution connect future. Resolution may come from the calling
// goroutine (immediate connect), a loop goroutine (deferred completion) or
// the idle checker (connect deadline); the first resolution wins and later
// attempts are dropped.

package tcp

import (
	"context"
	"log"
	"sync"
)

// ConnectFuture is the completion handle returned by Client.Connect.
type ConnectFuture struct {
	once sync.Once
	done chan struct{}

	// written once before done is closed, read only after.
	sess *TCPSession
	err  error
}

func newConnectFuture() *ConnectFuture {
	return &ConnectFuture{done: make(chan struct{})}
}

// complete resolves the future exactly once and reports whether this call
// won. A second resolution attempt is a logic error elsewhere; it is logged
// and never overwrites the first outcome.
func (f *ConnectFuture) complete(sess *TCPSession, err error) bool {
	won := false
	f.once.Do(func() {
		f.sess = sess
		f.err = err
		close(f.done)
		won = true
	})
	if !won {
		log.Printf("[tcp] connect future resolved twice; second resolution dropped (err=%v)", err)
	}
	return won
}

// Done returns a channel closed when the future is resolved.
func (f *ConnectFuture) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether the future has been resolved.
func (f *ConnectFuture) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Poll returns the outcome without blocking; resolved is false while the
// connect is still in flight.
func (f *ConnectFuture) Poll() (sess *TCPSession, err error, resolved bool) {
	select {
	case <-f.done:
		return f.sess, f.err, true
	default:
		return nil, nil, false
	}
}

// Await blocks until the future resolves or ctx is cancelled.
func (f *ConnectFuture) Await(ctx context.Context) (*TCPSession, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.sess, f.err
	}
}
