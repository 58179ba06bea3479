package updater

import (
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-swupdate/protocol"
)

// StatusFunc receives one formatted status line per engine status message.
// It is called from the engine's thread while Apply is blocked, and should
// return quickly.
//
// Example:
//
//	err := u.Apply(ctx, "/tmp/update.swu", false, func(line string) {
//	    fmt.Println(line)
//	})
type StatusFunc func(line string)

// StatusEvent is the structured form of a status message.
type StatusEvent struct {
	// SessionID identifies the session that produced the event
	SessionID uuid.UUID

	// Sequence numbers events within a session, starting at 1
	Sequence int64

	// Line is the formatted line passed to the StatusFunc
	Line string

	// Current is the engine state when the message was sent
	Current protocol.RecoveryStatus

	// LastResult is the outcome of the previous update
	LastResult protocol.RecoveryStatus

	// Error is the engine error code, 0 when none
	Error int32

	// Description is the decoded status text
	Description string
}

// EventFunc receives structured status events alongside the StatusFunc.
type EventFunc func(StatusEvent)

// Report summarizes a finished session.
type Report struct {
	// SessionID identifies the session in logs and events
	SessionID uuid.UUID

	// Path is the image path passed to Run
	Path string

	// DryRun is true when the engine was asked not to commit the update
	DryRun bool

	// BytesSent is the number of image bytes handed to the engine
	BytesSent int64

	// Chunks is the number of non-empty reads served to the engine
	Chunks int64

	// StatusLines is the number of status messages relayed
	StatusLines int64

	// Result is the state the engine reported on completion.
	// Apply does not treat a failed result as an error.
	Result protocol.RecoveryStatus

	// ReadErr is the first image read error, if any
	ReadErr error

	// Elapsed is the time from engine start to completion
	Elapsed time.Duration
}

// Succeeded reports whether the engine finished with a successful state.
func (r *Report) Succeeded() bool {
	return r.Result == protocol.StatusSuccess
}
