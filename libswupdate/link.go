//go:build cgo && swupdate && !swupdate_fake

package libswupdate

// #cgo LDFLAGS: -lswupdate
import "C"
