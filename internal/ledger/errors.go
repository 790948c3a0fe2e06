package ledger

import "errors"

// Validation failures returned to the caller before any store mutation is
// attempted. Callers match them with errors.Is.
var (
	// ErrInvalidTask means the check-in task text trimmed to empty
	ErrInvalidTask = errors.New("task description is empty")

	// ErrAlreadyActive means the user already has an open session
	ErrAlreadyActive = errors.New("a session is already active")

	// ErrSessionClosed means a note or tag was appended after check-out
	ErrSessionClosed = errors.New("session is already closed")

	// ErrNotActive means a check-out targeted a closed or unknown session
	ErrNotActive = errors.New("no active session")

	// ErrStoreUnavailable wraps opaque store failures (connectivity,
	// permissions). The ledger does not retry; that belongs to the store.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
