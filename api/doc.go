// File: api/doc.go
// License: Apache-2.0

// Package api defines the collaborator contracts shared across the library:
// the event loop registration surface, the session and idle-checker
// interfaces, and the common error taxonomy. Implementations live in the
// reactor, tcp and internal packages; this package carries no behavior.
package api
