// File: reactor/doc.go
// License: Apache-2.0

// Package reactor provides the event-loop implementations behind the api.Loop
// and api.LoopPool contracts: a single-goroutine selector loop multiplexing
// readiness notifications over epoll on Linux, and a fixed round-robin pool
// of such loops for read/write traffic. Registrations are queued and
// installed on the loop goroutine so that the registration callback and all
// readiness dispatches for a descriptor run on one thread.
package reactor
