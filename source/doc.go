// Package source supplies update image bytes from a local file.
//
// A File wraps one raw, read-only file descriptor. The update engine pulls
// data through ReadChunk, which performs a single read(2) per call and
// reports the result the way the engine's read callback expects:
//
//	n > 0   bytes were copied into the buffer
//	n == 0  end of image
//	n < 0   read error (see Err)
//
// Usage:
//
//	f, err := source.Open("/tmp/update.swu")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	buf := make([]byte, 256*1024)
//	for {
//	    n := f.ReadChunk(buf)
//	    if n <= 0 {
//	        break
//	    }
//	    consume(buf[:n])
//	}
//
// Open errors are *OpenError values wrapping the errno, so
// errors.Is(err, fs.ErrNotExist) works as with os.Open.
package source
