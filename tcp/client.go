// File: tcp/client.go
// License: Apache-2.0
//
// The connect orchestrator. Connect never blocks on the remote peer: every
// failure past argument validation is reported through the returned future,
// and exactly one of the two registration branches (deferred connect
// readiness, immediate read readiness) executes per call.

package tcp

import (
	"net"
	"time"

	"github.com/mouri80/mina/api"
	"github.com/mouri80/mina/internal/idle"
	"github.com/mouri80/mina/reactor"
)

// Client opens outbound non-blocking TCP connections and hands the resulting
// sessions to its event loops. Connect is safe for concurrent use.
type Client struct {
	connectLoop api.Loop
	pool        api.LoopPool
	checker     api.IdleChecker

	config         SessionConfig
	connectTimeout time.Duration

	ownConnectLoop bool
	ownPool        bool
	ownChecker     bool

	// test seam; defaults to the platform socket factory
	sockFactory func(*net.TCPAddr) (rawSock, error)
}

// NewClient builds a client. Collaborators not supplied via options are
// created and owned by the client: a dedicated connect loop, a fixed
// read/write loop pool of default size and an idle checker.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{sockFactory: newRawSock}
	for _, opt := range opts {
		opt(c)
	}
	if c.connectLoop == nil {
		l, err := reactor.NewLoop("connect")
		if err != nil {
			return nil, err
		}
		c.connectLoop = l
		c.ownConnectLoop = true
	}
	if c.pool == nil {
		p, err := reactor.NewFixedLoopPool(0, "io")
		if err != nil {
			c.closeOwned()
			return nil, err
		}
		c.pool = p
		c.ownPool = true
	}
	if c.checker == nil {
		c.checker = idle.NewChecker()
		c.ownChecker = true
	}
	return c, nil
}

// Config returns a copy of the client's session configuration snapshot.
func (c *Client) Config() SessionConfig {
	return c.config.clone()
}

// Connect starts a non-blocking connect to raddr and returns a future that
// resolves once the outcome is known. A nil address fails synchronously;
// every other failure resolves the future.
func (c *Client) Connect(raddr *net.TCPAddr) (*ConnectFuture, error) {
	if raddr == nil {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, "tcp: nil remote address", api.ErrInvalidArgument)
	}

	future := newConnectFuture()

	sock, err := c.sockFactory(raddr)
	if err != nil {
		future.complete(nil, err)
		return future, nil
	}

	sess := newSession(c, sock, c.pool.Get(), c.checker, raddr)

	if err := sess.seedConfig(&c.config); err != nil {
		sock.Close()
		future.complete(nil, err)
		return future, nil
	}

	// secure wrapping must be in place before any connect attempt
	if c.config.Secured {
		if err := sess.initSecure(c.config.TLS); err != nil {
			sock.Close()
			future.complete(nil, err)
			return future, nil
		}
	}

	connected, err := sock.Connect()
	if err != nil {
		sock.Close()
		future.complete(nil, err)
		return future, nil
	}

	// attach the future before registration so a concurrently running loop
	// goroutine always observes a fully-initialized session
	sess.future = future
	if c.connectTimeout > 0 {
		sess.connectDeadline = time.Now().Add(c.connectTimeout)
	}
	c.checker.SessionCreated(sess)

	if !connected {
		sess.state.Store(int32(api.SessionConnecting))
		if err := c.connectLoop.Register(api.InterestConnect, sess, sess.Handle(), sess.setRegistration); err != nil {
			c.abortConnect(sess, future, err)
		}
		return future, nil
	}

	// already connected (typically loopback): skip the connect-readiness
	// phase and go straight to read readiness
	if err := c.connectLoop.Register(api.InterestRead, sess, sess.Handle(), sess.setRegistration); err != nil {
		c.abortConnect(sess, future, err)
		return future, nil
	}
	sess.state.Store(int32(api.SessionConnected))
	sess.touch(api.ReadIdle)
	sess.touch(api.WriteIdle)
	future.complete(sess, nil)
	return future, nil
}

func (c *Client) abortConnect(sess *TCPSession, future *ConnectFuture, cause error) {
	sess.state.Store(int32(api.SessionFailed))
	c.checker.SessionClosed(sess)
	sess.sock.Close()
	future.complete(nil, api.WrapError(api.ErrCodeInternal, "tcp: loop registration", cause))
}

// Close stops the collaborators owned by the client. Sessions in flight are
// not torn down here.
func (c *Client) Close() error {
	return c.closeOwned()
}

func (c *Client) closeOwned() error {
	var first error
	if c.ownConnectLoop && c.connectLoop != nil {
		if err := c.connectLoop.Close(); err != nil && first == nil {
			first = err
		}
	}
	if c.ownPool && c.pool != nil {
		if err := c.pool.Close(); err != nil && first == nil {
			first = err
		}
	}
	if c.ownChecker && c.checker != nil {
		if err := c.checker.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
