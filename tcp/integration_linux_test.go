//go:build linux

// File: tcp/integration_linux_test.go
// License: Apache-2.0
//
// End-to-end establishment over real loopback sockets and real loops.

package tcp_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/mouri80/mina/api"
	"github.com/mouri80/mina/tcp"
)

func TestConnectToLiveListener(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		if conn, err := ln.Accept(); err == nil {
			defer conn.Close()
			time.Sleep(100 * time.Millisecond)
		}
	}()

	noDelay := true
	client, err := tcp.NewClient(
		tcp.WithSessionConfig(tcp.SessionConfig{NoDelay: &noDelay}),
		tcp.WithConnectTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	future, err := client.Connect(ln.Addr().(*net.TCPAddr))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess, err := future.Await(ctx)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if sess.State() != api.SessionConnected {
		t.Errorf("state = %v, want connected", sess.State())
	}
	if sess.Registration() == nil {
		t.Error("connected session must hold a registration handle")
	}
}

func TestConnectRefusedResolvesFailure(t *testing.T) {
	// grab a loopback port and release it so the connect is refused
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	client, err := tcp.NewClient(tcp.WithConnectTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	future, err := client.Connect(addr)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := future.Await(ctx); err == nil {
		t.Fatal("connect to a closed port must fail the future")
	} else if api.CodeOf(err) != api.ErrCodeConnectFailure {
		t.Errorf("CodeOf = %v, want ConnectFailure", api.CodeOf(err))
	}
}
