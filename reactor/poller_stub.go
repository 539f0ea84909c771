//go:build !linux

// File: reactor/poller_stub.go
// License: Apache-2.0
//
// Stub poller for unsupported platforms.

package reactor

import "github.com/mouri80/mina/api"

type poller struct{}

func newPoller() (*poller, error) {
	return nil, api.WrapError(api.ErrCodeNotSupported, "reactor: platform not supported", api.ErrNotSupported)
}

func (p *poller) add(fd uintptr, i api.Interest) error { return api.ErrNotSupported }
func (p *poller) mod(fd uintptr, i api.Interest) error { return api.ErrNotSupported }
func (p *poller) del(fd uintptr) error                 { return api.ErrNotSupported }
func (p *poller) wait(out []pollEvent) (int, error)    { return 0, api.ErrNotSupported }
func (p *poller) wake()                                {}
func (p *poller) close() error                         { return nil }
