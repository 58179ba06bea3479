package protocol

import "unsafe"

// Request is the swupdate_request handed to the engine when a session starts.
//
// The field order, widths and padding reproduce the C structure exactly; the
// engine only checks the total size, so any drift here is silent corruption.
// Byte buffers are NUL-padded C strings, see SetInfo and friends.
type Request struct {
	// APIVersion must equal the engine's SWUPDATE_API_VERSION
	APIVersion uint32

	// Source identifies the requesting channel
	Source SourceType

	// DryRun selects whether the update is committed
	DryRun RunType

	// Len is a size hint whose meaning is defined by the engine (C size_t)
	Len uintptr

	// Info is free-form metadata forwarded to the engine
	Info [InfoSize]byte

	// SoftwareSet selects the software collection in the image description
	SoftwareSet [SoftwareSetSize]byte

	// RunningMode selects the mode within the software collection
	RunningMode [RunningModeSize]byte

	// DisableStoreSWU asks the engine not to keep a copy of the image
	DisableStoreSWU bool
}

// StatusPayload is the status case of the message union, sent with MsgGetStatus.
type StatusPayload struct {
	Current    RecoveryStatus
	LastResult RecoveryStatus
	Error      int32
	Desc       [TextSize]byte
}

// NotifyPayload is the notify case, sent with MsgNotifyStream.
type NotifyPayload struct {
	Status RecoveryStatus
	Error  int32
	Level  int32
	Msg    [TextSize]byte
}

// InstallPayload is the inst_msg case, sent with MsgReqInstall and MsgReqInstallExt.
type InstallPayload struct {
	Req Request
	Len uint32
	Buf [TextSize]byte
}

// ProcessPayload is the proc_msg case, sent with MsgSubprocess.
type ProcessPayload struct {
	Source  SourceType
	Cmd     int32
	Timeout int32
	Len     uint32
	Buf     [TextSize]byte
}

// AESKeyPayload is the aeskeymsg case, sent with MsgSetAESKey.
type AESKeyPayload struct {
	KeyASCII [AESKeySize]byte
	IVTASCII [AESIVTSize]byte
}

// VersionsPayload is the versions case, sent with MsgSetVersionsRange.
type VersionsPayload struct {
	Minimum [VersionSize]byte
	Maximum [VersionSize]byte
	Current [VersionSize]byte
}

// RevisionsPayload is the revisions case, answered to MsgGetHWRevision.
type RevisionsPayload struct {
	BoardName [RevisionSize]byte
	Revision  [RevisionSize]byte
}

// Layout sizes, in bytes, on the build platform.
const (
	// RequestSize is the value passed to the engine with every start request
	RequestSize = unsafe.Sizeof(Request{})

	// MessageDataSize is the size of the payload union: its largest case
	MessageDataSize = max(
		unsafe.Sizeof([RawTextSize]byte{}),
		unsafe.Sizeof(StatusPayload{}),
		unsafe.Sizeof(NotifyPayload{}),
		unsafe.Sizeof(InstallPayload{}),
		unsafe.Sizeof(ProcessPayload{}),
		unsafe.Sizeof(AESKeyPayload{}),
		unsafe.Sizeof(VersionsPayload{}),
		unsafe.Sizeof(RevisionsPayload{}),
	)

	// MessageSize is the size of a complete ipc_message
	MessageSize = unsafe.Sizeof(Message{})
)

// Message is the ipc_message the engine hands to the status callback.
//
// Data holds the C union. Which case is valid depends on Type; use Payload
// or Status to read it. The leading zero-length field gives Message the
// union's pointer alignment so Data starts at the same offset as in C.
type Message struct {
	_     [0]uintptr
	Magic int32
	Type  MsgType
	Data  [MessageDataSize]byte
}
