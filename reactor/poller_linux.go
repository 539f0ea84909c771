//go:build linux

// File: reactor/poller_linux.go
// License: Apache-2.0
//
// Linux epoll(7) poller with an eventfd wakeup channel.

package reactor

import (
	"encoding/binary"

	"golang.org/x/sys/unix"

	"github.com/mouri80/mina/api"
)

type poller struct {
	epfd   int
	wakefd int
	raw    []unix.EpollEvent
}

func newPoller() (*poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResourceExhausted, "reactor: epoll create", err)
	}
	wakefd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, api.WrapError(api.ErrCodeResourceExhausted, "reactor: eventfd", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakefd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakefd, &ev); err != nil {
		unix.Close(wakefd)
		unix.Close(epfd)
		return nil, api.WrapError(api.ErrCodeInternal, "reactor: wakeup watch", err)
	}
	return &poller{
		epfd:   epfd,
		wakefd: wakefd,
		raw:    make([]unix.EpollEvent, 129),
	}, nil
}

func epollEvents(i api.Interest) uint32 {
	var e uint32
	if i&(api.InterestRead|api.InterestAccept) != 0 {
		e |= unix.EPOLLIN
	}
	if i&(api.InterestWrite|api.InterestConnect) != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

func (p *poller) add(fd uintptr, i api.Interest) error {
	ev := unix.EpollEvent{Events: epollEvents(i), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev)
}

func (p *poller) mod(fd uintptr, i api.Interest) error {
	ev := unix.EpollEvent{Events: epollEvents(i), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, int(fd), &ev)
}

func (p *poller) del(fd uintptr) error {
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, int(fd), &unix.EpollEvent{})
}

// wait blocks until events are available and translates them into out.
// A wakeup via the eventfd is drained and not reported as an event.
func (p *poller) wait(out []pollEvent) (int, error) {
	limit := len(p.raw)
	if len(out)+1 < limit {
		limit = len(out) + 1
	}
	n, err := unix.EpollWait(p.epfd, p.raw[:limit], -1)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	j := 0
	for i := 0; i < n; i++ {
		ev := p.raw[i]
		if int(ev.Fd) == p.wakefd {
			var buf [8]byte
			unix.Read(p.wakefd, buf[:])
			continue
		}
		out[j] = pollEvent{
			fd:       uintptr(ev.Fd),
			readable: ev.Events&(unix.EPOLLIN|unix.EPOLLRDHUP) != 0,
			writable: ev.Events&unix.EPOLLOUT != 0,
			failed:   ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0,
		}
		j++
	}
	return j, nil
}

func (p *poller) wake() {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	unix.Write(p.wakefd, buf[:])
}

func (p *poller) close() error {
	unix.Close(p.wakefd)
	return unix.Close(p.epfd)
}
