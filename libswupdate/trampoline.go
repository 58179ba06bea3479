package libswupdate

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/moffa90/go-swupdate/protocol"
	"github.com/moffa90/go-swupdate/updater"
)

// binding connects the engine's argument-less callbacks to a session.
type binding struct {
	handler updater.Handler
	buf     []byte
	release func()
}

var (
	slotMu sync.Mutex
	slot   *binding
)

// bind installs h as the target of the engine callbacks. buf is the staging
// buffer handed to the engine on every read; release frees it on unbind.
func bind(h updater.Handler, buf []byte, release func()) error {
	slotMu.Lock()
	defer slotMu.Unlock()

	if slot != nil {
		return unix.EBUSY
	}
	slot = &binding{handler: h, buf: buf, release: release}
	return nil
}

// unbind clears the slot and returns the previous binding, if any.
func unbind() *binding {
	slotMu.Lock()
	defer slotMu.Unlock()

	b := slot
	slot = nil
	return b
}

func current() *binding {
	slotMu.Lock()
	defer slotMu.Unlock()
	return slot
}

func (b *binding) free() {
	if b.release != nil {
		b.release()
		b.release = nil
	}
}

// supplyChunk fills the staging buffer for the read callback. It returns the
// buffer and the handler's result; a negative result means no data.
func supplyChunk() ([]byte, int) {
	b := current()
	if b == nil {
		Logger().Warn("read callback without an active session")
		return nil, -1
	}

	n := b.handler.ReadChunk(b.buf)
	if n > len(b.buf) {
		Logger().Error("handler returned more bytes than the buffer holds", zap.Int("n", n), zap.Int("cap", len(b.buf)))
		return b.buf, -1
	}
	return b.buf, n
}

// relayStatus forwards one engine message to the bound session.
func relayStatus(msg *protocol.Message) {
	b := current()
	if b == nil {
		Logger().Warn("status callback without an active session, message dropped")
		return
	}
	b.handler.Status(msg)
}

// complete unbinds the session, frees its buffer and signals completion.
func complete(status protocol.RecoveryStatus) {
	b := unbind()
	if b == nil {
		Logger().Warn("completion callback without an active session", zap.Stringer("status", status))
		return
	}
	b.free()
	b.handler.Terminated(status)
}
