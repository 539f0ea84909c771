// File: tcp/session.go
// License: Apache-2.0
//
// Live per-connection session. Before registration only the connecting
// goroutine touches the session; once the registration callback stores the
// handle, socket-affecting operations belong to the loop goroutine driving
// that registration.

package tcp

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/mouri80/mina/api"
)

// TCPSession is the live representation of one establishing or established
// connection.
type TCPSession struct {
	sock    rawSock
	client  *Client
	loop    api.Loop // assigned read/write loop
	checker api.IdleChecker
	raddr   *net.TCPAddr

	settings sessionSettings
	secure   *secureWrapper
	future   *ConnectFuture

	// zero when the client has no connect timeout; written before
	// registration, read-only afterwards.
	connectDeadline time.Time

	state      atomic.Int32
	reg        atomic.Value // api.Registration, set by registration callbacks
	lastActive [2]atomic.Int64
	idleCount  [2]atomic.Int64
}

var (
	_ api.Session          = (*TCPSession)(nil)
	_ api.ReadinessHandler = (*TCPSession)(nil)
)

func newSession(c *Client, sock rawSock, loop api.Loop, checker api.IdleChecker, raddr *net.TCPAddr) *TCPSession {
	s := &TCPSession{
		sock:    sock,
		client:  c,
		loop:    loop,
		checker: checker,
		raddr:   raddr,
	}
	s.state.Store(int32(api.SessionInitializing))
	now := time.Now().UnixNano()
	s.lastActive[api.ReadIdle].Store(now)
	s.lastActive[api.WriteIdle].Store(now)
	return s
}

// seedConfig copies each explicitly-set snapshot field onto the session and
// applies the socket-level ones to the descriptor. Unset fields are skipped
// entirely so platform defaults survive.
func (s *TCPSession) seedConfig(cfg *SessionConfig) error {
	if cfg.ReadIdle != nil {
		s.settings.readIdle = *cfg.ReadIdle
	}
	if cfg.WriteIdle != nil {
		s.settings.writeIdle = *cfg.WriteIdle
	}
	if cfg.KeepAlive != nil {
		s.settings.keepAlive = cloneBool(cfg.KeepAlive)
		if err := s.sock.SetBoolOption(optKeepAlive, *cfg.KeepAlive); err != nil {
			return err
		}
	}
	if cfg.OOBInline != nil {
		s.settings.oobInline = cloneBool(cfg.OOBInline)
		if err := s.sock.SetBoolOption(optOOBInline, *cfg.OOBInline); err != nil {
			return err
		}
	}
	if cfg.ReuseAddress != nil {
		s.settings.reuseAddress = cloneBool(cfg.ReuseAddress)
		if err := s.sock.SetBoolOption(optReuseAddress, *cfg.ReuseAddress); err != nil {
			return err
		}
	}
	if cfg.NoDelay != nil {
		s.settings.noDelay = cloneBool(cfg.NoDelay)
		if err := s.sock.SetBoolOption(optNoDelay, *cfg.NoDelay); err != nil {
			return err
		}
	}
	if cfg.ReceiveBuffer != nil {
		s.settings.receiveBuffer = cloneInt(cfg.ReceiveBuffer)
		if err := s.sock.SetIntOption(optReceiveBuffer, *cfg.ReceiveBuffer); err != nil {
			return err
		}
	}
	if cfg.SendBuffer != nil {
		s.settings.sendBuffer = cloneInt(cfg.SendBuffer)
		if err := s.sock.SetIntOption(optSendBuffer, *cfg.SendBuffer); err != nil {
			return err
		}
	}
	if cfg.TrafficClass != nil {
		s.settings.trafficClass = cloneInt(cfg.TrafficClass)
		if err := s.sock.SetIntOption(optTrafficClass, *cfg.TrafficClass); err != nil {
			return err
		}
	}
	if cfg.Linger != nil {
		s.settings.linger = cloneDuration(cfg.Linger)
		if err := s.sock.SetLinger(*cfg.Linger); err != nil {
			return err
		}
	}
	return nil
}

// Handle returns the raw socket descriptor.
func (s *TCPSession) Handle() uintptr {
	return s.sock.Fd()
}

// State returns the current connection state.
func (s *TCPSession) State() api.SessionState {
	return api.SessionState(s.state.Load())
}

// RemoteAddr returns the destination address given to Connect.
func (s *TCPSession) RemoteAddr() *net.TCPAddr {
	return s.raddr
}

// Secured reports whether the session runs through the TLS wrapper.
func (s *TCPSession) Secured() bool {
	return s.secure != nil
}

// Registration returns the loop registration handle, or nil before the
// registration callback has fired.
func (s *TCPSession) Registration() api.Registration {
	if v := s.reg.Load(); v != nil {
		return v.(api.Registration)
	}
	return nil
}

// setRegistration is the registration callback; it runs on the loop
// goroutine that installed the watch.
func (s *TCPSession) setRegistration(reg api.Registration) {
	s.reg.Store(reg)
}

// IdleTime returns the configured idle duration for status.
func (s *TCPSession) IdleTime(status api.IdleStatus) time.Duration {
	if status == api.ReadIdle {
		return s.settings.readIdle
	}
	return s.settings.writeIdle
}

// LastActive returns the time of the last activity for status.
func (s *TCPSession) LastActive(status api.IdleStatus) time.Time {
	return time.Unix(0, s.lastActive[status].Load())
}

// NotifyIdle records an idle expiry reported by the idle checker.
func (s *TCPSession) NotifyIdle(status api.IdleStatus, at time.Time) {
	s.idleCount[status].Add(1)
}

// IdleCount returns how many idle expiries were reported for status.
func (s *TCPSession) IdleCount(status api.IdleStatus) int64 {
	return s.idleCount[status].Load()
}

// ConnectDeadline returns the establishment deadline; zero means none.
func (s *TCPSession) ConnectDeadline() time.Time {
	return s.connectDeadline
}

// NotifyConnectTimeout fails a still-connecting session. A no-op once the
// session left the connecting state.
func (s *TCPSession) NotifyConnectTimeout(at time.Time) {
	s.failConnect(api.WrapError(api.ErrCodeConnectFailure, "tcp: connect deadline exceeded", api.ErrConnectTimeout))
}

func (s *TCPSession) touch(status api.IdleStatus) {
	s.lastActive[status].Store(time.Now().UnixNano())
}

// Ready dispatches readiness from the owning loop goroutine.
func (s *TCPSession) Ready(ops api.Interest, err error) {
	if s.State() == api.SessionConnecting && (err != nil || ops.Has(api.InterestConnect)) {
		s.finishConnect(err)
		return
	}
	if ops.Has(api.InterestRead) {
		s.touch(api.ReadIdle)
	}
	if ops.Has(api.InterestWrite) {
		s.touch(api.WriteIdle)
	}
}

// finishConnect resolves a deferred connect once the connect loop reports
// connect readiness. The handshake outcome comes from the pending socket
// error, falling back to the poll-level error.
func (s *TCPSession) finishConnect(pollErr error) {
	cause := s.sock.ConnectError()
	if cause == nil && pollErr != nil {
		cause = pollErr
	}
	if cause != nil {
		s.failConnect(cause)
		return
	}
	if !s.state.CompareAndSwap(int32(api.SessionConnecting), int32(api.SessionConnected)) {
		return
	}
	if reg := s.Registration(); reg != nil {
		reg.Cancel()
	}
	// handoff: the assigned read/write loop owns the socket from here on
	if err := s.loop.Register(api.InterestRead, s, s.Handle(), s.setRegistration); err != nil {
		s.state.Store(int32(api.SessionFailed))
		s.sock.Close()
		s.checker.SessionClosed(s)
		s.future.complete(nil, api.WrapError(api.ErrCodeInternal, "tcp: read registration", err))
		return
	}
	s.touch(api.ReadIdle)
	s.touch(api.WriteIdle)
	s.future.complete(s, nil)
}

// failConnect moves a connecting session to the failed state and resolves
// the future with cause. Idempotent across the loop goroutine and the idle
// checker: only the goroutine winning the state transition performs the
// teardown.
func (s *TCPSession) failConnect(cause error) {
	if !s.state.CompareAndSwap(int32(api.SessionConnecting), int32(api.SessionFailed)) {
		return
	}
	if reg := s.Registration(); reg != nil {
		reg.Cancel()
	}
	s.sock.Close()
	s.checker.SessionClosed(s)
	s.future.complete(nil, cause)
}
