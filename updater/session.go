package updater

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moffa90/go-swupdate/protocol"
)

// FormatStatus renders a status message the way it is passed to a StatusFunc.
func FormatStatus(st protocol.StatusPayload) string {
	return fmt.Sprintf("Status: %d message: %s", int32(st.Current), st.Description())
}

// session is the Handler for one Apply call. It owns the completion state
// shared between the waiting caller and the engine thread.
type session struct {
	id     uuid.UUID
	src    Source
	relay  StatusFunc
	events EventFunc
	log    *zap.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	finished bool
	result   protocol.RecoveryStatus

	chunks       atomic.Int64
	bytes        atomic.Int64
	lines        atomic.Int64
	terminations atomic.Int32
}

func newSession(id uuid.UUID, src Source, relay StatusFunc, events EventFunc, log *zap.Logger) *session {
	s := &session{
		id:     id,
		src:    src,
		relay:  relay,
		events: events,
		log:    log,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// ReadChunk serves the engine's read callback from the session source.
func (s *session) ReadChunk(buf []byte) int {
	n := s.src.ReadChunk(buf)
	switch {
	case n > 0:
		s.chunks.Add(1)
		s.bytes.Add(int64(n))
	case n < 0:
		s.log.Warn("image read failed, aborting transfer", zap.Error(s.src.Err()))
	}
	return n
}

// Status relays status messages. Messages of any other type are ignored.
func (s *session) Status(msg *protocol.Message) {
	if msg == nil {
		return
	}
	st, ok := msg.Status()
	if !ok {
		s.log.Debug("ignoring engine message", zap.Stringer("type", msg.Type))
		return
	}

	line := FormatStatus(st)
	seq := s.lines.Add(1)

	if s.events != nil {
		s.events(StatusEvent{
			SessionID:   s.id,
			Sequence:    seq,
			Line:        line,
			Current:     st.Current,
			LastResult:  st.LastResult,
			Error:       st.Error,
			Description: st.Description(),
		})
	}

	if s.relay == nil {
		s.log.Warn("no status callback registered, dropping status line", zap.String("line", line))
		return
	}
	s.relay(line)
}

// Terminated marks the session finished and wakes the caller.
func (s *session) Terminated(result protocol.RecoveryStatus) {
	if s.terminations.Add(1) > 1 {
		s.log.Warn("duplicate completion signal ignored", zap.Stringer("result", result))
		return
	}

	s.mu.Lock()
	s.finished = true
	s.result = result
	s.cond.Broadcast()
	s.mu.Unlock()
}

// wait blocks until Terminated has been called. s.mu must be held.
func (s *session) wait() protocol.RecoveryStatus {
	for !s.finished {
		s.cond.Wait()
	}
	return s.result
}
