package libswupdate

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/moffa90/go-swupdate/protocol"
	"github.com/moffa90/go-swupdate/updater"
)

// DefaultBufferSize is the size of the staging buffer the engine reads
// image data from.
const DefaultBufferSize = 64 * 1024

// Engine drives libswupdate's asynchronous client API.
//
// The library keeps its callbacks in process-wide state, so at most one
// session can be active; Start returns -EBUSY for a second one.
type Engine struct {
	bufSize int
}

var (
	_ updater.Engine             = (*Engine)(nil)
	_ updater.VersionRangeSetter = (*Engine)(nil)
	_ updater.AESKeySetter       = (*Engine)(nil)
)

// Option configures an Engine.
type Option func(*Engine)

// WithBufferSize sets the staging buffer size in bytes.
// Values outside 1..16MiB are ignored.
//
// Example:
//
//	engine := libswupdate.New(libswupdate.WithBufferSize(1 << 20))
func WithBufferSize(n int) Option {
	return func(e *Engine) {
		if n > 0 && n <= 16<<20 {
			e.bufSize = n
		}
	}
}

// New returns an Engine. Without the swupdate build tag and cgo, every
// session fails to start with -ENOSYS.
func New(opts ...Option) *Engine {
	e := &Engine{bufSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BufferSize returns the staging buffer size.
func (e *Engine) BufferSize() int {
	return e.bufSize
}

// PrepareRequest runs swupdate_prepare_req on req.
func (e *Engine) PrepareRequest(req *protocol.Request) {
	prepareRequest(req)
}

// Start binds h to the engine callbacks and starts an asynchronous session.
// On failure the binding is removed again and h is never called.
func (e *Engine) Start(req *protocol.Request, size uintptr, h updater.Handler) int {
	buf, release := allocBuffer(e.bufSize)
	if err := bind(h, buf, release); err != nil {
		release()
		Logger().Warn("engine already has an active session")
		return -int(unix.EBUSY)
	}

	rc := asyncStart(req, size)
	if rc < 0 {
		if b := unbind(); b != nil {
			b.free()
		}
		Logger().Error("swupdate_async_start failed", zap.Int("code", rc))
		return rc
	}

	Logger().Debug("session started", zap.Int("handle", rc), zap.Int("buffer_size", e.bufSize))
	return rc
}

// SetVersionRange sends a SET_VERSIONS_RANGE command.
func (e *Engine) SetVersionRange(minimum, maximum, current string) int {
	return setVersionRange(minimum, maximum, current)
}

// SetAESKey sends a SET_AES_KEY command.
func (e *Engine) SetAESKey(key, ivt string) int {
	return setAESKey(key, ivt)
}
