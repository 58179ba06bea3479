//go:build !cgo || !swupdate

package libswupdate

import (
	"golang.org/x/sys/unix"

	"github.com/moffa90/go-swupdate/protocol"
)

// Available reports whether the native library is linked in.
const Available = false

func asyncStart(*protocol.Request, uintptr) int {
	Logger().Warn("built without libswupdate (requires cgo and the swupdate build tag)")
	return -int(unix.ENOSYS)
}

func prepareRequest(req *protocol.Request) {
	protocol.PrepareRequest(req)
}

func setVersionRange(string, string, string) int {
	return -int(unix.ENOSYS)
}

func setAESKey(string, string) int {
	return -int(unix.ENOSYS)
}

func allocBuffer(n int) ([]byte, func()) {
	return make([]byte, n), func() {}
}
