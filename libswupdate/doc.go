// Package libswupdate binds SWUpdate's asynchronous client library.
//
// Build with cgo and the swupdate tag to link against libswupdate:
//
//	go build -tags swupdate ./...
//
// Adding the swupdate_fake tag links an in-process stand-in for the library
// instead, which runs sessions on a pthread and backs the cgo tests:
//
//	go test -tags 'swupdate swupdate_fake' ./libswupdate/
//
// Without the swupdate tag the package still compiles; Engine.Start then
// fails with -ENOSYS, which lets the rest of a program be built and tested on
// machines without the library.
//
// # Callbacks
//
// libswupdate calls three C functions from its worker thread:
//
//	goReadImage(char **buf, int *size)  next image chunk, 0 at end, <0 on error
//	goReportStatus(ipc_message *msg)    one status message
//	goSessionEnded(int status)          session finished
//
// The callbacks carry no user pointer, so Start records the session in a
// process-wide slot that the callbacks dispatch through. The read buffer is
// allocated in C memory once per session and freed on completion.
//
// On a read error goReadImage reports a size of 0 with its negative return
// so the engine never writes a negative length.
package libswupdate
