// File: internal/idle/checker_test.go
// License: Apache-2.0

package idle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/mouri80/mina/api"
	"github.com/mouri80/mina/internal/idle"
)

type fakeSession struct {
	state    atomic.Int32
	deadline time.Time
	readIdle time.Duration

	lastRead atomic.Int64

	timeoutCalls atomic.Int32
	idleCalls    atomic.Int32
}

func (s *fakeSession) Handle() uintptr             { return 0 }
func (s *fakeSession) State() api.SessionState     { return api.SessionState(s.state.Load()) }
func (s *fakeSession) ConnectDeadline() time.Time  { return s.deadline }
func (s *fakeSession) NotifyConnectTimeout(time.Time) {
	s.timeoutCalls.Add(1)
	s.state.Store(int32(api.SessionFailed))
}

func (s *fakeSession) IdleTime(status api.IdleStatus) time.Duration {
	if status == api.ReadIdle {
		return s.readIdle
	}
	return 0
}

func (s *fakeSession) LastActive(status api.IdleStatus) time.Time {
	return time.Unix(0, s.lastRead.Load())
}

func (s *fakeSession) NotifyIdle(status api.IdleStatus, at time.Time) {
	s.idleCalls.Add(1)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestConnectDeadlineEnforced(t *testing.T) {
	checker := idle.NewCheckerInterval(5 * time.Millisecond)
	defer checker.Close()

	sess := &fakeSession{deadline: time.Now().Add(-time.Second)}
	sess.state.Store(int32(api.SessionConnecting))
	checker.SessionCreated(sess)

	waitFor(t, func() bool { return sess.timeoutCalls.Load() > 0 })
}

func TestNoTimeoutWithoutDeadline(t *testing.T) {
	checker := idle.NewCheckerInterval(5 * time.Millisecond)
	defer checker.Close()

	sess := &fakeSession{}
	sess.state.Store(int32(api.SessionConnecting))
	checker.SessionCreated(sess)

	time.Sleep(50 * time.Millisecond)
	if sess.timeoutCalls.Load() != 0 {
		t.Error("session without a deadline must never time out")
	}
}

func TestReadIdleNotification(t *testing.T) {
	checker := idle.NewCheckerInterval(5 * time.Millisecond)
	defer checker.Close()

	sess := &fakeSession{readIdle: time.Millisecond}
	sess.state.Store(int32(api.SessionConnected))
	sess.lastRead.Store(time.Now().Add(-time.Second).UnixNano())
	checker.SessionCreated(sess)

	waitFor(t, func() bool { return sess.idleCalls.Load() > 0 })
}

func TestClosedSessionNotSwept(t *testing.T) {
	checker := idle.NewCheckerInterval(10 * time.Millisecond)
	defer checker.Close()

	sess := &fakeSession{deadline: time.Now().Add(-time.Second)}
	sess.state.Store(int32(api.SessionConnecting))
	checker.SessionCreated(sess)
	checker.SessionClosed(sess)

	time.Sleep(60 * time.Millisecond)
	if sess.timeoutCalls.Load() != 0 {
		t.Error("closed session must not be swept")
	}
}
