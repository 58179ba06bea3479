package source

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.swu")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func readAll(t *testing.T, f *File, chunk int) []byte {
	t.Helper()
	var out bytes.Buffer
	buf := make([]byte, chunk)
	for i := 0; ; i++ {
		if i > 1<<20 {
			t.Fatal("ReadChunk never reached end of file")
		}
		n := f.ReadChunk(buf)
		if n < 0 {
			t.Fatalf("ReadChunk failed: %v", f.Err())
		}
		if n == 0 {
			return out.Bytes()
		}
		out.Write(buf[:n])
	}
}

func TestOpenAndRead(t *testing.T) {
	data := bytes.Repeat([]byte("swupdate"), 1000)

	tests := []struct {
		name  string
		chunk int
	}{
		{"small chunks", 7},
		{"exact chunks", 8},
		{"one chunk", len(data) * 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Open(writeImage(t, data))
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer f.Close()

			if f.Size() != int64(len(data)) {
				t.Errorf("Size() = %d, want %d", f.Size(), len(data))
			}

			got := readAll(t, f, tt.chunk)
			if !bytes.Equal(got, data) {
				t.Errorf("read %d bytes, content mismatch", len(got))
			}
			if f.BytesRead() != int64(len(data)) {
				t.Errorf("BytesRead() = %d, want %d", f.BytesRead(), len(data))
			}
			if f.Err() != nil {
				t.Errorf("Err() = %v", f.Err())
			}
		})
	}
}

func TestEmptyImage(t *testing.T) {
	path := writeImage(t, nil)
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
	if f.Size() != 0 {
		t.Errorf("Size() = %d, want 0", f.Size())
	}

	if n := f.ReadChunk(make([]byte, 16)); n != 0 {
		t.Errorf("first ReadChunk = %d, want 0", n)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"missing", filepath.Join(dir, "does-not-exist.swu"), fs.ErrNotExist},
		{"directory", dir, ErrNotRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Open(tt.path)
			if f != nil {
				t.Error("Open returned a file on failure")
			}

			var openErr *OpenError
			if !errors.As(err, &openErr) {
				t.Fatalf("expected *OpenError, got %T: %v", err, err)
			}
			if openErr.Path != tt.path {
				t.Errorf("Path = %q, want %q", openErr.Path, tt.path)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.target)
			}
		})
	}
}

func TestOpenFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	if _, err := Open(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error")
	}
	if logs.FilterMessage("failed to open image").Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}
}

func TestCloseIdempotent(t *testing.T) {
	f, err := Open(writeImage(t, []byte("abc")))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if !f.Closed() {
		t.Error("Closed() = false after Close")
	}
	if n := f.ReadChunk(make([]byte, 4)); n != -1 {
		t.Errorf("ReadChunk after Close = %d, want -1", n)
	}

	var nilFile *File
	if err := nilFile.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestReadChunkEmptyBuffer(t *testing.T) {
	f, err := Open(writeImage(t, []byte("abc")))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if n := f.ReadChunk(nil); n != 0 {
		t.Errorf("ReadChunk(nil) = %d, want 0", n)
	}
	if f.BytesRead() != 0 {
		t.Errorf("BytesRead() = %d, want 0", f.BytesRead())
	}
}
