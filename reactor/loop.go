// File: reactor/loop.go
// License: Apache-2.0
//
// Selector loop: one goroutine owning one poller instance. Registrations are
// enqueued from arbitrary goroutines and installed by the loop itself, which
// keeps watch installation, the registration callback and readiness dispatch
// on a single thread.

package reactor

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/mouri80/mina/api"
)

// pollEvent is the platform-neutral result of one readiness notification.
type pollEvent struct {
	fd       uintptr
	readable bool
	writable bool
	failed   bool
}

// errDescriptor reports an EPOLLERR/EPOLLHUP class condition; the handler
// owns the descriptor and extracts the precise cause via SO_ERROR.
var errDescriptor = api.NewError(api.ErrCodeInternal, "reactor: descriptor error or hangup")

type pendingReg struct {
	interest api.Interest
	handler  api.ReadinessHandler
	fd       uintptr
	done     func(api.Registration)
}

// SelectorLoop implements api.Loop.
type SelectorLoop struct {
	name string
	p    *poller

	mu      sync.Mutex
	pending *queue.Queue // of *pendingReg, drained on the loop goroutine
	regs    map[uintptr]*registration
	closed  bool

	stop chan struct{}
	done chan struct{}
}

var _ api.Loop = (*SelectorLoop)(nil)

// NewLoop creates a selector loop and starts its goroutine.
func NewLoop(name string) (*SelectorLoop, error) {
	p, err := newPoller()
	if err != nil {
		return nil, err
	}
	l := &SelectorLoop{
		name:    name,
		p:       p,
		pending: queue.New(),
		regs:    make(map[uintptr]*registration),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go l.run()
	return l, nil
}

// Name identifies the loop in logs.
func (l *SelectorLoop) Name() string { return l.name }

// Register implements api.Loop. The callback runs on the loop goroutine,
// before any readiness dispatch for fd.
func (l *SelectorLoop) Register(interest api.Interest, h api.ReadinessHandler, fd uintptr, done func(api.Registration)) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return api.ErrLoopClosed
	}
	l.pending.Add(&pendingReg{interest: interest, handler: h, fd: fd, done: done})
	l.mu.Unlock()
	l.p.wake()
	return nil
}

// Close stops the loop goroutine and releases the poller.
func (l *SelectorLoop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()
	close(l.stop)
	l.p.wake()
	<-l.done
	return l.p.close()
}

func (l *SelectorLoop) run() {
	defer close(l.done)
	events := make([]pollEvent, 128)
	for {
		l.installPending()
		select {
		case <-l.stop:
			return
		default:
		}
		n, err := l.p.wait(events)
		if err != nil {
			log.Printf("[reactor] %s: poll: %v", l.name, err)
			continue
		}
		for i := 0; i < n; i++ {
			l.dispatch(events[i])
		}
	}
}

func (l *SelectorLoop) installPending() {
	for {
		l.mu.Lock()
		if l.pending.Length() == 0 {
			l.mu.Unlock()
			return
		}
		pr := l.pending.Remove().(*pendingReg)
		l.mu.Unlock()
		l.install(pr)
	}
}

func (l *SelectorLoop) install(pr *pendingReg) {
	reg := &registration{loop: l, fd: pr.fd, handler: pr.handler}
	reg.interest.Store(uint32(pr.interest))
	if err := l.p.add(pr.fd, pr.interest); err != nil {
		safeReady(pr.handler, 0, api.WrapError(api.ErrCodeInternal, "reactor: watch install failed", err))
		return
	}
	l.mu.Lock()
	l.regs[pr.fd] = reg
	l.mu.Unlock()
	if pr.done != nil {
		pr.done(reg)
	}
}

func (l *SelectorLoop) dispatch(ev pollEvent) {
	l.mu.Lock()
	reg := l.regs[ev.fd]
	l.mu.Unlock()
	if reg == nil || reg.cancelled.Load() {
		return
	}
	interest := api.Interest(reg.interest.Load())
	var ops api.Interest
	if ev.readable {
		ops |= interest & (api.InterestRead | api.InterestAccept)
	}
	if ev.writable {
		ops |= interest & (api.InterestWrite | api.InterestConnect)
	}
	var err error
	if ev.failed {
		err = errDescriptor
	}
	if ops == 0 && err == nil {
		return
	}
	safeReady(reg.handler, ops, err)
}

// safeReady keeps the loop alive when a handler panics.
func safeReady(h api.ReadinessHandler, ops api.Interest, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[reactor] handler panic: %v", r)
		}
	}()
	h.Ready(ops, err)
}

// registration implements api.Registration for one installed watch.
type registration struct {
	loop      *SelectorLoop
	fd        uintptr
	handler   api.ReadinessHandler
	interest  atomic.Uint32
	cancelled atomic.Bool
}

var _ api.Registration = (*registration)(nil)

func (r *registration) Interest() api.Interest {
	return api.Interest(r.interest.Load())
}

func (r *registration) SetInterest(i api.Interest) error {
	if r.cancelled.Load() {
		return api.ErrRegistrationGone
	}
	r.interest.Store(uint32(i))
	return r.loop.p.mod(r.fd, i)
}

func (r *registration) Cancel() error {
	if !r.cancelled.CompareAndSwap(false, true) {
		return nil
	}
	r.loop.mu.Lock()
	delete(r.loop.regs, r.fd)
	r.loop.mu.Unlock()
	return r.loop.p.del(r.fd)
}
