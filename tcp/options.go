// File: tcp/options.go
// License: Apache-2.0
//
// Functional options for Client construction.

package tcp

import (
	"time"

	"github.com/mouri80/mina/api"
)

// Option customizes client initialization.
type Option func(*Client)

// WithSessionConfig sets the configuration snapshot copied onto every new
// session. The client keeps its own copy.
func WithSessionConfig(cfg SessionConfig) Option {
	return func(c *Client) {
		c.config = cfg.clone()
	}
}

// WithConnectLoop supplies the dedicated loop handling connect readiness.
// The caller keeps ownership; Client.Close will not stop it.
func WithConnectLoop(l api.Loop) Option {
	return func(c *Client) {
		c.connectLoop = l
	}
}

// WithLoopPool supplies the read/write loop pool. The caller keeps
// ownership; Client.Close will not stop it.
func WithLoopPool(p api.LoopPool) Option {
	return func(c *Client) {
		c.pool = p
	}
}

// WithIdleChecker supplies the shared idle checker. The caller keeps
// ownership; Client.Close will not stop it.
func WithIdleChecker(ch api.IdleChecker) Option {
	return func(c *Client) {
		c.checker = ch
	}
}

// WithConnectTimeout arms an establishment deadline on every connect. The
// deadline is enforced by the idle checker, not by a socket option: socket
// timeout options have no effect once the descriptor is non-blocking.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = d
	}
}
