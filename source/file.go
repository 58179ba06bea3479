package source

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// File is an image opened for the duration of one update session.
//
// ReadChunk is called from the engine's thread while Close is called from
// the caller's; the descriptor is guarded so a close never races a read.
type File struct {
	path string
	size int64

	mu  sync.Mutex
	fd  int
	err error

	read   atomic.Int64
	closed atomic.Bool
}

// Open opens path read-only and rejects anything but a regular file.
// Only an interrupted open(2) is retried; other failures are returned as
// *OpenError.
func Open(path string) (*File, error) {
	fd, err := openNoIntr(path)
	if err != nil {
		Logger().Warn("failed to open image", zap.String("path", path), zap.Error(err))
		return nil, &OpenError{Path: path, Err: err}
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		Logger().Warn("failed to stat image", zap.String("path", path), zap.Error(err))
		return nil, &OpenError{Path: path, Err: err}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		unix.Close(fd)
		Logger().Warn("image is not a regular file", zap.String("path", path), zap.Uint32("mode", uint32(st.Mode)))
		return nil, &OpenError{Path: path, Err: ErrNotRegular}
	}

	Logger().Debug("opened image", zap.String("path", path), zap.Int("fd", fd), zap.Int64("size", st.Size))

	return &File{path: path, size: st.Size, fd: fd}, nil
}

func openNoIntr(path string) (int, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != unix.EINTR {
			return fd, err
		}
	}
}

// ReadChunk reads up to len(buf) bytes with one read(2).
//
// It returns the number of bytes read, 0 at end of file and -1 on error or
// after Close. The first error is kept and returned by Err.
func (f *File) ReadChunk(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fd < 0 || f.closed.Load() {
		return -1
	}

	for {
		n, err := unix.Read(f.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			if f.err == nil {
				f.err = &ReadError{Path: f.path, Offset: f.read.Load(), Err: err}
			}
			Logger().Warn("image read failed", zap.String("path", f.path), zap.Error(err))
			return -1
		}
		f.read.Add(int64(n))
		return n
	}
}

// Close releases the descriptor. Subsequent calls are no-ops, as is calling
// Close on a nil *File.
func (f *File) Close() error {
	if f == nil || !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	fd := f.fd
	f.fd = -1
	if err := unix.Close(fd); err != nil {
		return &CloseError{Path: f.path, Err: err}
	}
	Logger().Debug("closed image", zap.String("path", f.path), zap.Int64("bytes_read", f.read.Load()))
	return nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Size returns the file size observed at open time.
func (f *File) Size() int64 {
	return f.size
}

// BytesRead returns the total number of bytes returned by ReadChunk.
func (f *File) BytesRead() int64 {
	return f.read.Load()
}

// Err returns the first read error, if any.
func (f *File) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Closed reports whether Close has been called.
func (f *File) Closed() bool {
	return f.closed.Load()
}
