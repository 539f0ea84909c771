// File: tcp/doc.go
// License: Apache-2.0

// Package tcp implements the non-blocking TCP connect core: a Client that
// opens outbound connections without blocking the caller, seeds each new
// session from a sparse configuration snapshot, and hands the session off to
// an event loop. Connection completion is reported through a
// single-resolution ConnectFuture, resolved by whichever goroutine first
// observes the outcome.
//
// A connect attempt finishes on one of two paths. On the immediate path the
// platform completes the handshake synchronously; the session is registered
// for read readiness and the future resolves before Connect returns. On the
// deferred path the session is registered with the dedicated connect loop for
// connect readiness, and the loop resolves the future later when the
// handshake outcome is known.
package tcp
