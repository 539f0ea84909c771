// File: tcp/secure.go
// License: Apache-2.0
//
// Pre-connect TLS wrapper. The wrapper must be installed before the connect
// attempt so that data exchanged after the handshake is routed through it;
// the handshake itself runs in the read/write lifecycle once the connection
// is established.

package tcp

import (
	"crypto/tls"

	"github.com/mouri80/mina/api"
)

type secureWrapper struct {
	cfg *tls.Config
}

// initSecure installs the TLS wrapper on the session.
func (s *TCPSession) initSecure(cfg *tls.Config) error {
	if cfg == nil {
		return api.NewError(api.ErrCodeSecureInit, "tcp: secured session without a TLS config")
	}
	s.secure = &secureWrapper{cfg: cfg.Clone()}
	return nil
}

// TLSConfig returns the session's TLS configuration, or nil for a plain
// session.
func (s *TCPSession) TLSConfig() *tls.Config {
	if s.secure == nil {
		return nil
	}
	return s.secure.cfg
}
