// File: tcp/future_test.go
// License: Apache-2.0

package tcp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFutureStartsPending(t *testing.T) {
	f := newConnectFuture()
	if f.IsDone() {
		t.Error("new future must be pending")
	}
	if _, _, resolved := f.Poll(); resolved {
		t.Error("Poll on a pending future must report unresolved")
	}
}

func TestFutureFirstResolutionWins(t *testing.T) {
	f := newConnectFuture()
	sess := &TCPSession{}
	if !f.complete(sess, nil) {
		t.Fatal("first resolution must win")
	}
	if f.complete(nil, errors.New("late failure")) {
		t.Fatal("second resolution must be a no-op")
	}
	got, err, resolved := f.Poll()
	if !resolved || err != nil || got != sess {
		t.Errorf("first resolution overwritten: (%v, %v, %v)", got, err, resolved)
	}
}

func TestFutureConcurrentResolution(t *testing.T) {
	f := newConnectFuture()
	sess := &TCPSession{}
	failure := errors.New("refused")

	var wg sync.WaitGroup
	wins := make(chan bool, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		wins <- f.complete(sess, nil)
	}()
	go func() {
		defer wg.Done()
		wins <- f.complete(nil, failure)
	}()
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("exactly one resolution must win, got %d", winners)
	}
	got, err, _ := f.Poll()
	if (got == sess) == (err != nil) {
		t.Error("future holds a mixed outcome")
	}
}

func TestFutureAwaitHonorsContext(t *testing.T) {
	f := newConnectFuture()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	f.complete(nil, errors.New("boom"))
	if _, err := f.Await(context.Background()); err == nil {
		t.Error("Await after resolution must return the outcome")
	}
}
