// File: api/errors_test.go
// License: Apache-2.0

package api_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mouri80/mina/api"
)

func TestWrapErrorPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := api.WrapError(api.ErrCodeConnectFailure, "tcp: connect", cause)
	if !errors.Is(err, cause) {
		t.Error("cause lost through the wrap")
	}
	if err.Error() != "tcp: connect: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCodeOfThroughWrapChain(t *testing.T) {
	inner := api.NewError(api.ErrCodeResourceExhausted, "socket allocate")
	outer := fmt.Errorf("connect 10.0.0.1:80: %w", inner)
	if api.CodeOf(outer) != api.ErrCodeResourceExhausted {
		t.Errorf("CodeOf = %v, want ResourceExhausted", api.CodeOf(outer))
	}
	if api.CodeOf(errors.New("plain")) != api.ErrCodeInternal {
		t.Error("unstructured errors must map to ErrCodeInternal")
	}
}

func TestInterestHas(t *testing.T) {
	i := api.InterestConnect | api.InterestRead
	if !i.Has(api.InterestConnect) || !i.Has(api.InterestRead) {
		t.Error("Has must report present bits")
	}
	if i.Has(api.InterestWrite) || i.Has(api.InterestConnect|api.InterestWrite) {
		t.Error("Has must require all queried bits")
	}
}

func TestSessionStateString(t *testing.T) {
	cases := map[api.SessionState]string{
		api.SessionInitializing: "initializing",
		api.SessionConnecting:   "connecting",
		api.SessionConnected:    "connected",
		api.SessionFailed:       "failed",
		api.SessionState(99):    "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
