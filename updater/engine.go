package updater

import (
	"github.com/moffa90/go-swupdate/protocol"
	"github.com/moffa90/go-swupdate/source"
)

// Handler receives the engine's callbacks for one session.
//
// The engine invokes the methods from its own thread(s). ReadChunk and
// Status are called zero or more times, Terminated exactly once.
type Handler interface {
	// ReadChunk fills buf with the next part of the image and returns the
	// byte count, 0 at end of image or a negative value on error.
	ReadChunk(buf []byte) int

	// Status receives one engine message. The message is only valid for the
	// duration of the call.
	Status(msg *protocol.Message)

	// Terminated signals the end of the session with the engine's final state.
	Terminated(result protocol.RecoveryStatus)
}

// Engine is the asynchronous update engine the Updater drives.
//
// libswupdate.Engine binds the native library; updatertest.Engine is an
// in-process fake.
type Engine interface {
	// PrepareRequest resets req to the engine defaults.
	PrepareRequest(req *protocol.Request)

	// Start begins a session and returns immediately. A negative return
	// value means the session did not start and h will never be called.
	// Otherwise h.Terminated is called once the session ends, from a
	// goroutine or thread other than the caller's.
	Start(req *protocol.Request, size uintptr, h Handler) int
}

// VersionRangeSetter is implemented by engines that accept a version
// range command.
type VersionRangeSetter interface {
	// SetVersionRange sends the range and returns a negative value on failure.
	SetVersionRange(minimum, maximum, current string) int
}

// AESKeySetter is implemented by engines that accept a decryption key
// command.
type AESKeySetter interface {
	// SetAESKey sends the ASCII key and IVT and returns a negative value on
	// failure.
	SetAESKey(key, ivt string) int
}

// Source supplies the image for one session.
type Source interface {
	ReadChunk(buf []byte) int
	Close() error
	Err() error
	BytesRead() int64
}

// SourceOpener opens the image at path.
type SourceOpener func(path string) (Source, error)

// OpenFile opens path with source.Open. It is the default SourceOpener.
func OpenFile(path string) (Source, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
