// File: internal/idle/checker.go
// License: Apache-2.0
//
// Periodic idle checker. Sweeps registered sessions on a coarse interval,
// reporting read/write idle expiries and enforcing connect deadlines for
// sessions still in the connecting state.

package idle

import (
	"sync"
	"time"

	"github.com/mouri80/mina/api"
)

// Checker implements api.IdleChecker with a single sweep goroutine.
type Checker struct {
	interval time.Duration

	mu       sync.Mutex
	sessions map[api.Session]struct{}

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

var _ api.IdleChecker = (*Checker)(nil)

// NewChecker creates a checker sweeping once per second.
func NewChecker() *Checker {
	return NewCheckerInterval(time.Second)
}

// NewCheckerInterval creates a checker with a custom sweep interval.
func NewCheckerInterval(interval time.Duration) *Checker {
	if interval <= 0 {
		interval = time.Second
	}
	c := &Checker{
		interval: interval,
		sessions: make(map[api.Session]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.run()
	return c
}

// SessionCreated starts tracking s. Safe from multiple goroutines.
func (c *Checker) SessionCreated(s api.Session) {
	c.mu.Lock()
	c.sessions[s] = struct{}{}
	c.mu.Unlock()
}

// SessionClosed stops tracking s. Idempotent.
func (c *Checker) SessionClosed(s api.Session) {
	c.mu.Lock()
	delete(c.sessions, s)
	c.mu.Unlock()
}

// Close stops the sweep goroutine.
func (c *Checker) Close() error {
	c.once.Do(func() {
		close(c.stop)
	})
	<-c.done
	return nil
}

func (c *Checker) run() {
	defer close(c.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

// sweep runs outside the lock: notifications may re-enter SessionClosed.
func (c *Checker) sweep(now time.Time) {
	c.mu.Lock()
	snapshot := make([]api.Session, 0, len(c.sessions))
	for s := range c.sessions {
		snapshot = append(snapshot, s)
	}
	c.mu.Unlock()

	for _, s := range snapshot {
		switch s.State() {
		case api.SessionConnecting:
			if dl := s.ConnectDeadline(); !dl.IsZero() && now.After(dl) {
				s.NotifyConnectTimeout(now)
			}
		case api.SessionConnected:
			for _, status := range []api.IdleStatus{api.ReadIdle, api.WriteIdle} {
				d := s.IdleTime(status)
				if d > 0 && now.Sub(s.LastActive(status)) >= d {
					s.NotifyIdle(status, now)
				}
			}
		}
	}
}
