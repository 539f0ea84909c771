// File: tcp/fakes_test.go
// License: Apache-2.0
//
// Recording doubles for the client's collaborators.

package tcp

import (
	"net"
	"testing"
	"time"

	"github.com/mouri80/mina/api"
)

type fakeSock struct {
	fd            uintptr
	boolOpts      map[sockOption]bool
	intOpts       map[sockOption]int
	linger        *time.Duration
	connectResult bool
	connectErr    error
	connectCalled bool
	soError       error
	closed        bool
}

func (f *fakeSock) Fd() uintptr { return f.fd }

func (f *fakeSock) SetBoolOption(opt sockOption, v bool) error {
	if f.boolOpts == nil {
		f.boolOpts = make(map[sockOption]bool)
	}
	f.boolOpts[opt] = v
	return nil
}

func (f *fakeSock) SetIntOption(opt sockOption, v int) error {
	if f.intOpts == nil {
		f.intOpts = make(map[sockOption]int)
	}
	f.intOpts[opt] = v
	return nil
}

func (f *fakeSock) SetLinger(d time.Duration) error {
	f.linger = &d
	return nil
}

func (f *fakeSock) Connect() (bool, error) {
	f.connectCalled = true
	return f.connectResult, f.connectErr
}

func (f *fakeSock) ConnectError() error { return f.soError }

func (f *fakeSock) Close() error {
	f.closed = true
	return nil
}

type fakeRegistration struct {
	interest  api.Interest
	cancelled bool
}

func (r *fakeRegistration) Interest() api.Interest { return r.interest }

func (r *fakeRegistration) SetInterest(i api.Interest) error {
	r.interest = i
	return nil
}

func (r *fakeRegistration) Cancel() error {
	r.cancelled = true
	return nil
}

type loopReg struct {
	interest api.Interest
	handler  api.ReadinessHandler
	fd       uintptr
	reg      *fakeRegistration
}

type fakeLoop struct {
	name        string
	regs        []loopReg
	registerErr error
}

func (l *fakeLoop) Register(interest api.Interest, h api.ReadinessHandler, fd uintptr, done func(api.Registration)) error {
	if l.registerErr != nil {
		return l.registerErr
	}
	reg := &fakeRegistration{interest: interest}
	l.regs = append(l.regs, loopReg{interest: interest, handler: h, fd: fd, reg: reg})
	if done != nil {
		done(reg)
	}
	return nil
}

func (l *fakeLoop) Name() string { return l.name }
func (l *fakeLoop) Close() error { return nil }

type fakePool struct {
	loop api.Loop
}

func (p *fakePool) Get() api.Loop { return p.loop }
func (p *fakePool) Close() error  { return nil }

type fakeChecker struct {
	created []api.Session
	closed  []api.Session
}

func (c *fakeChecker) SessionCreated(s api.Session) { c.created = append(c.created, s) }
func (c *fakeChecker) SessionClosed(s api.Session)  { c.closed = append(c.closed, s) }
func (c *fakeChecker) Close() error                 { return nil }

type testEnv struct {
	client      *Client
	sock        *fakeSock
	connectLoop *fakeLoop
	ioLoop      *fakeLoop
	checker     *fakeChecker
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		sock:        &fakeSock{fd: 7},
		connectLoop: &fakeLoop{name: "connect"},
		ioLoop:      &fakeLoop{name: "io-0"},
		checker:     &fakeChecker{},
	}
	all := append([]Option{
		WithConnectLoop(env.connectLoop),
		WithLoopPool(&fakePool{loop: env.ioLoop}),
		WithIdleChecker(env.checker),
	}, opts...)
	c, err := NewClient(all...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.sockFactory = func(*net.TCPAddr) (rawSock, error) { return env.sock, nil }
	env.client = c
	return env
}

func testAddr() *net.TCPAddr {
	return &net.TCPAddr{IP: net.IPv4(192, 0, 2, 10), Port: 4242}
}
