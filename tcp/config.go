// File: tcp/config.go
// License: Apache-2.0
//
// Sparse session configuration. Every field is tri-state: nil means unset and
// never touches the platform default; only explicitly-set fields are copied
// onto a new session.

package tcp

import (
	"crypto/tls"
	"time"
)

// SessionConfig is the socket configuration snapshot captured at client
// construction time. It is read-only after construction and shared by every
// session the client creates.
type SessionConfig struct {
	// Idle durations; zero-valued pointers disable idle tracking explicitly,
	// nil leaves it disabled.
	ReadIdle  *time.Duration
	WriteIdle *time.Duration

	// Socket-level options, applied only when non-nil.
	KeepAlive     *bool
	OOBInline     *bool
	ReuseAddress  *bool
	NoDelay       *bool
	ReceiveBuffer *int
	SendBuffer    *int
	TrafficClass  *int
	Linger        *time.Duration

	// Secured routes the session through a TLS wrapper initialized before
	// the connect attempt. TLS must be non-nil when Secured is set.
	Secured bool
	TLS     *tls.Config
}

// clone deep-copies the snapshot so later mutation of the source cannot leak
// into the client.
func (c *SessionConfig) clone() SessionConfig {
	out := SessionConfig{Secured: c.Secured, TLS: c.TLS}
	out.ReadIdle = cloneDuration(c.ReadIdle)
	out.WriteIdle = cloneDuration(c.WriteIdle)
	out.KeepAlive = cloneBool(c.KeepAlive)
	out.OOBInline = cloneBool(c.OOBInline)
	out.ReuseAddress = cloneBool(c.ReuseAddress)
	out.NoDelay = cloneBool(c.NoDelay)
	out.ReceiveBuffer = cloneInt(c.ReceiveBuffer)
	out.SendBuffer = cloneInt(c.SendBuffer)
	out.TrafficClass = cloneInt(c.TrafficClass)
	out.Linger = cloneDuration(c.Linger)
	return out
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneDuration(p *time.Duration) *time.Duration {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// sessionSettings is the per-session mutable configuration seeded from the
// snapshot. Pointer fields stay nil for options that were never explicitly
// set, so the platform default is never overwritten.
type sessionSettings struct {
	readIdle  time.Duration
	writeIdle time.Duration

	keepAlive     *bool
	oobInline     *bool
	reuseAddress  *bool
	noDelay       *bool
	receiveBuffer *int
	sendBuffer    *int
	trafficClass  *int
	linger        *time.Duration
}
