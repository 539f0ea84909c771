//go:build !linux

// File: tcp/sock_stub.go
// License: Apache-2.0

package tcp

import (
	"net"

	"github.com/mouri80/mina/api"
)

func newRawSock(raddr *net.TCPAddr) (rawSock, error) {
	return nil, api.WrapError(api.ErrCodeNotSupported, "tcp: platform not supported", api.ErrNotSupported)
}
