//go:build cgo && swupdate

package libswupdate

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/moffa90/go-swupdate/protocol"
)

//export goReadImage
func goReadImage(buf **C.char, size *C.int) C.int {
	chunk, n := supplyChunk()
	if len(chunk) > 0 {
		*buf = (*C.char)(unsafe.Pointer(&chunk[0]))
	}
	if n <= 0 {
		*size = 0
		return C.int(n)
	}
	*size = C.int(n)
	return C.int(n)
}

//export goReportStatus
func goReportStatus(msg unsafe.Pointer) C.int {
	if msg != nil {
		relayStatus((*protocol.Message)(msg))
	}
	return 0
}

//export goSessionEnded
func goSessionEnded(status C.int) C.int {
	complete(protocol.RecoveryStatus(status))
	return 0
}
