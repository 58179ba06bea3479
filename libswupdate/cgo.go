//go:build cgo && swupdate

package libswupdate

/*
#include <stdlib.h>
#include <sys/types.h>

typedef int (*swu_writedata)(char **buf, int *size);
typedef int (*swu_getstatus)(void *msg);
typedef int (*swu_terminated)(int status);

extern int swupdate_async_start(swu_writedata wr_func, swu_getstatus status_func,
				swu_terminated end_func, void *priv, ssize_t size);
extern void swupdate_prepare_req(void *req);
extern int swupdate_set_version_range(const char *minversion,
				      const char *maxversion,
				      const char *currentversion);
extern int swupdate_set_aes(char *key, char *ivt);

extern int goReadImage(char **buf, int *size);
extern int goReportStatus(void *msg);
extern int goSessionEnded(int status);

static int swu_start(void *req, ssize_t size)
{
	return swupdate_async_start(goReadImage, goReportStatus, goSessionEnded, req, size);
}
*/
import "C"

import (
	"unsafe"

	"github.com/moffa90/go-swupdate/protocol"
)

// Available reports whether the native library is linked in.
const Available = true

func asyncStart(req *protocol.Request, size uintptr) int {
	return int(C.swu_start(unsafe.Pointer(req), C.ssize_t(size)))
}

func prepareRequest(req *protocol.Request) {
	C.swupdate_prepare_req(unsafe.Pointer(req))
}

func setVersionRange(minimum, maximum, current string) int {
	cmin := C.CString(minimum)
	defer C.free(unsafe.Pointer(cmin))
	cmax := C.CString(maximum)
	defer C.free(unsafe.Pointer(cmax))
	ccur := C.CString(current)
	defer C.free(unsafe.Pointer(ccur))

	return int(C.swupdate_set_version_range(cmin, cmax, ccur))
}

func setAESKey(key, ivt string) int {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	civt := C.CString(ivt)
	defer C.free(unsafe.Pointer(civt))

	return int(C.swupdate_set_aes(ckey, civt))
}

// allocBuffer returns n bytes of C memory; the engine keeps the pointer
// after the read callback returns, so it cannot be Go memory.
func allocBuffer(n int) ([]byte, func()) {
	p := C.malloc(C.size_t(n))
	if p == nil {
		panic("libswupdate: out of memory")
	}
	return unsafe.Slice((*byte)(p), n), func() { C.free(p) }
}
