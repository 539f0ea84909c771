// File: cmd/mina-connect/main.go
// License: Apache-2.0

// mina-connect opens one non-blocking TCP connection and reports the outcome
// of the connect future. Defaults come from the environment (optionally via a
// .env file); flags override.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/mouri80/mina/tcp"
)

type config struct {
	Addr           string        `env:"MINA_ADDR"`
	ConnectTimeout time.Duration `env:"MINA_CONNECT_TIMEOUT" envDefault:"10s"`
	NoDelay        bool          `env:"MINA_TCP_NODELAY" envDefault:"true"`
	KeepAlive      bool          `env:"MINA_TCP_KEEPALIVE" envDefault:"false"`
	Secured        bool          `env:"MINA_TLS" envDefault:"false"`
	ServerName     string        `env:"MINA_TLS_SERVER_NAME"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mina-connect: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	flags := flag.NewFlagSet("mina-connect", flag.ContinueOnError)
	addr := flags.StringP("addr", "a", cfg.Addr, "remote address (host:port)")
	timeout := flags.DurationP("timeout", "t", cfg.ConnectTimeout, "connect timeout")
	noDelay := flags.Bool("nodelay", cfg.NoDelay, "set TCP_NODELAY on the session")
	keepAlive := flags.Bool("keepalive", cfg.KeepAlive, "set SO_KEEPALIVE on the session")
	secured := flags.Bool("tls", cfg.Secured, "wrap the session in TLS")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *addr == "" {
		return fmt.Errorf("no address given (use --addr or MINA_ADDR)")
	}

	raddr, err := net.ResolveTCPAddr("tcp", *addr)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", *addr, err)
	}

	sessCfg := tcp.SessionConfig{
		NoDelay:   noDelay,
		KeepAlive: keepAlive,
	}
	if *secured {
		sessCfg.Secured = true
		sessCfg.TLS = &tls.Config{ServerName: cfg.ServerName}
	}

	client, err := tcp.NewClient(
		tcp.WithSessionConfig(sessCfg),
		tcp.WithConnectTimeout(*timeout),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	started := time.Now()
	future, err := client.Connect(raddr)
	if err != nil {
		return err
	}

	sess, err := future.Await(ctx)
	if err != nil {
		return fmt.Errorf("connect %s: %w", raddr, err)
	}
	fmt.Printf("connected to %s in %s (state=%s, secured=%v)\n",
		sess.RemoteAddr(), time.Since(started).Round(time.Millisecond),
		sess.State(), sess.Secured())
	return nil
}
