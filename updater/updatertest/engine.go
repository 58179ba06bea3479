// Package updatertest provides a scriptable in-process engine for testing
// code built on package updater.
//
// Example:
//
//	engine := &updatertest.Engine{
//	    Statuses: []*protocol.Message{
//	        protocol.NewStatusMessage(protocol.StatusRun, protocol.StatusIdle, 0, "Installing"),
//	    },
//	    Result: protocol.StatusSuccess,
//	}
//	u := updater.New(engine)
//	err := u.Apply(ctx, path, false, nil)
//	engine.Wait()
//	fmt.Println(len(engine.Image()))
package updatertest

import (
	"sync"
	"time"

	"github.com/moffa90/go-swupdate/protocol"
	"github.com/moffa90/go-swupdate/updater"
)

// DefaultChunkSize is the read size used when ChunkSize is zero.
const DefaultChunkSize = 4096

// Engine is a fake updater.Engine. Each started session runs on its own
// goroutine: it sends Statuses, drains the image, then reports Result.
//
// The exported fields configure the behaviour and must be set before use.
type Engine struct {
	// StartCode is returned by Start when negative; the session then never runs
	StartCode int

	// Statuses are delivered in order before the image is read
	Statuses []*protocol.Message

	// Result is passed to Terminated
	Result protocol.RecoveryStatus

	// ChunkSize is the read buffer size offered to the handler
	ChunkSize int

	// SkipRead terminates the session without reading the image
	SkipRead bool

	// StartDelay delays the return of Start after the session goroutine has
	// been launched
	StartDelay time.Duration

	// VersionCode is returned by SetVersionRange
	VersionCode int

	// AESCode is returned by SetAESKey
	AESCode int

	mu       sync.Mutex
	prepared int
	requests []protocol.Request
	sizes    []uintptr
	image    []byte
	readRC   []int
	ranges   [][3]string
	aesKeys  [][2]string
	wg       sync.WaitGroup
}

var (
	_ updater.Engine             = (*Engine)(nil)
	_ updater.VersionRangeSetter = (*Engine)(nil)
	_ updater.AESKeySetter       = (*Engine)(nil)
)

// PrepareRequest resets req like the native prepare step.
func (e *Engine) PrepareRequest(req *protocol.Request) {
	e.mu.Lock()
	e.prepared++
	e.mu.Unlock()
	protocol.PrepareRequest(req)
}

// Start records the request and launches the session.
func (e *Engine) Start(req *protocol.Request, size uintptr, h updater.Handler) int {
	e.mu.Lock()
	e.requests = append(e.requests, *req)
	e.sizes = append(e.sizes, size)
	e.mu.Unlock()

	if e.StartCode < 0 {
		return e.StartCode
	}

	e.wg.Add(1)
	go e.run(h)

	if e.StartDelay > 0 {
		time.Sleep(e.StartDelay)
	}
	return 0
}

func (e *Engine) run(h updater.Handler) {
	defer e.wg.Done()

	for _, msg := range e.Statuses {
		h.Status(msg)
	}

	if !e.SkipRead {
		size := e.ChunkSize
		if size <= 0 {
			size = DefaultChunkSize
		}
		buf := make([]byte, size)
		for {
			n := h.ReadChunk(buf)
			e.mu.Lock()
			e.readRC = append(e.readRC, n)
			if n > 0 {
				e.image = append(e.image, buf[:n]...)
			}
			e.mu.Unlock()
			if n <= 0 {
				break
			}
		}
	}

	h.Terminated(e.Result)
}

// SetVersionRange records the range and returns VersionCode.
func (e *Engine) SetVersionRange(minimum, maximum, current string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ranges = append(e.ranges, [3]string{minimum, maximum, current})
	return e.VersionCode
}

// SetAESKey records the key and IVT and returns AESCode.
func (e *Engine) SetAESKey(key, ivt string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aesKeys = append(e.aesKeys, [2]string{key, ivt})
	return e.AESCode
}

// Wait blocks until every started session goroutine has returned.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Prepared returns the number of PrepareRequest calls.
func (e *Engine) Prepared() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prepared
}

// Requests returns copies of the requests passed to Start.
func (e *Engine) Requests() []protocol.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]protocol.Request(nil), e.requests...)
}

// Sizes returns the size arguments passed to Start.
func (e *Engine) Sizes() []uintptr {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]uintptr(nil), e.sizes...)
}

// Image returns every byte read from the handlers.
func (e *Engine) Image() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.image...)
}

// ReadResults returns the value of every ReadChunk call, in order.
func (e *Engine) ReadResults() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.readRC...)
}

// Ranges returns the version ranges received, as minimum, maximum, current.
func (e *Engine) Ranges() [][3]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][3]string(nil), e.ranges...)
}

// AESKeys returns the key and IVT pairs received by SetAESKey.
func (e *Engine) AESKeys() [][2]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][2]string(nil), e.aesKeys...)
}
