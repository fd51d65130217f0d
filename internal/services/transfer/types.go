package transfer

import "time"

// State is a step in the life of a single transfer.
type State string

// Rejected and Done are terminal.
const (
	StateReceived      State = "received"
	StateValidating    State = "validating"
	StateRejected      State = "rejected"
	StateLocksAcquired State = "locks_acquired"
	StateCommitting    State = "committing"
	StateCommitted     State = "committed"
	StateNotifying     State = "notifying"
	StateDone          State = "done"
)

// Config holds configuration for the transfer engine.
type Config struct {
	// LockTimeout bounds the wait for both account locks. Zero means wait until the
	// caller's context is done.
	LockTimeout time.Duration
}
