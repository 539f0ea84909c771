//go:build linux

// File: tcp/sock_linux.go
// License: Apache-2.0
//
// Linux rawSock implementation over golang.org/x/sys/unix.

package tcp

import (
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/mouri80/mina/api"
)

type linuxSock struct {
	fd     int
	family int
	sa     unix.Sockaddr
}

// newRawSock allocates a non-blocking TCP socket for raddr.
func newRawSock(raddr *net.TCPAddr) (rawSock, error) {
	sa, family, err := tcpSockaddr(raddr)
	if err != nil {
		return nil, err
	}
	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResourceExhausted, "tcp: socket allocate", err)
	}
	return &linuxSock{fd: fd, family: family, sa: sa}, nil
}

func tcpSockaddr(raddr *net.TCPAddr) (unix.Sockaddr, int, error) {
	ip := raddr.IP
	if ip == nil {
		ip = net.IPv4zero
	}
	if ip4 := ip.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: raddr.Port}
		copy(sa.Addr[:], ip4)
		return sa, unix.AF_INET, nil
	}
	if ip16 := ip.To16(); ip16 != nil {
		sa := &unix.SockaddrInet6{Port: raddr.Port}
		copy(sa.Addr[:], ip16)
		if raddr.Zone != "" {
			if ifi, err := net.InterfaceByName(raddr.Zone); err == nil {
				sa.ZoneId = uint32(ifi.Index)
			}
		}
		return sa, unix.AF_INET6, nil
	}
	return nil, 0, api.NewError(api.ErrCodeConnectFailure, "tcp: unsupported address family")
}

func (s *linuxSock) Fd() uintptr { return uintptr(s.fd) }

func (s *linuxSock) SetBoolOption(opt sockOption, v bool) error {
	iv := 0
	if v {
		iv = 1
	}
	switch opt {
	case optKeepAlive:
		return unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, iv)
	case optOOBInline:
		return unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_OOBINLINE, iv)
	case optReuseAddress:
		return unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, iv)
	case optNoDelay:
		return unix.SetsockoptInt(s.fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, iv)
	}
	return api.ErrNotSupported
}

func (s *linuxSock) SetIntOption(opt sockOption, v int) error {
	switch opt {
	case optReceiveBuffer:
		return unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_RCVBUF, v)
	case optSendBuffer:
		return unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_SNDBUF, v)
	case optTrafficClass:
		if s.family == unix.AF_INET6 {
			return unix.SetsockoptInt(s.fd, unix.IPPROTO_IPV6, unix.IPV6_TCLASS, v)
		}
		return unix.SetsockoptInt(s.fd, unix.IPPROTO_IP, unix.IP_TOS, v)
	}
	return api.ErrNotSupported
}

func (s *linuxSock) SetLinger(d time.Duration) error {
	l := &unix.Linger{Onoff: 1, Linger: int32(d / time.Second)}
	if d < 0 {
		l = &unix.Linger{Onoff: 0}
	}
	return unix.SetsockoptLinger(s.fd, unix.SOL_SOCKET, unix.SO_LINGER, l)
}

func (s *linuxSock) Connect() (bool, error) {
	for {
		err := unix.Connect(s.fd, s.sa)
		switch err {
		case nil, unix.EISCONN:
			return true, nil
		case unix.EINPROGRESS, unix.EALREADY:
			return false, nil
		case unix.EINTR:
			continue
		default:
			return false, api.WrapError(api.ErrCodeConnectFailure, "tcp: connect", err)
		}
	}
}

func (s *linuxSock) ConnectError() error {
	v, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return api.WrapError(api.ErrCodeConnectFailure, "tcp: SO_ERROR", err)
	}
	if v != 0 {
		return api.WrapError(api.ErrCodeConnectFailure, "tcp: connect", unix.Errno(v))
	}
	return nil
}

func (s *linuxSock) Close() error {
	return unix.Close(s.fd)
}
