package protocol

import "fmt"

// APIVersion is the libswupdate client API version implemented by this library.
// The engine compares it against its own SWUPDATE_API_VERSION.
const APIVersion = 0x1

// IPCMagic is the sentinel carried in every ipc_message.
// The bridge fills it in constructed messages but never validates it on receipt.
const IPCMagic = 0x14052001

// Fixed buffer capacities, in bytes, including the NUL terminator.
const (
	// InfoSize is the capacity of swupdate_request.info
	InfoSize = 512

	// SoftwareSetSize is the capacity of swupdate_request.software_set
	SoftwareSetSize = 256

	// RunningModeSize is the capacity of swupdate_request.running_mode
	RunningModeSize = 256

	// TextSize is the capacity of the status/notify/install/process text buffers
	TextSize = 2048

	// RawTextSize is the capacity of the plain msg case of the union
	RawTextSize = 128

	// AESKeySize is the capacity of the ASCII AES key (64 hex digits + NUL)
	AESKeySize = 65

	// AESIVTSize is the capacity of the ASCII IVT (32 hex digits + NUL)
	AESIVTSize = 33

	// VersionSize is the capacity of each version string in a range message
	VersionSize = 256

	// RevisionSize is the capacity of the board name and revision strings
	RevisionSize = 256
)

// SourceType identifies the channel requesting an update (C sourcetype).
type SourceType int32

const (
	SourceUnknown SourceType = iota
	SourceWebserver
	SourceSuricatta
	SourceDownloader
	SourceLocal
	SourceChunksDownloader
)

func (s SourceType) String() string {
	switch s {
	case SourceUnknown:
		return "unknown"
	case SourceWebserver:
		return "webserver"
	case SourceSuricatta:
		return "suricatta"
	case SourceDownloader:
		return "downloader"
	case SourceLocal:
		return "local"
	case SourceChunksDownloader:
		return "chunks-downloader"
	default:
		return fmt.Sprintf("source(%d)", int32(s))
	}
}

// RunType selects whether the engine commits the update (C run_type).
type RunType int32

const (
	// RunDefault lets the engine apply its configured behaviour
	RunDefault RunType = iota

	// RunDryRun validates and simulates the update without committing it
	RunDryRun

	// RunInstall forces installation
	RunInstall
)

func (r RunType) String() string {
	switch r {
	case RunDefault:
		return "default"
	case RunDryRun:
		return "dry-run"
	case RunInstall:
		return "install"
	default:
		return fmt.Sprintf("run(%d)", int32(r))
	}
}

// MsgType is the ipc_message type field. It selects which case of the
// payload union is valid.
type MsgType int32

// Message types in engine order. New values are only ever appended.
const (
	MsgReqInstall MsgType = iota
	MsgAck
	MsgNack
	MsgGetStatus
	MsgPostUpdate
	MsgSubprocess
	MsgSetAESKey
	MsgSetUpdateState
	MsgGetUpdateState
	MsgReqInstallExt
	MsgSetVersionsRange
	MsgNotifyStream
	MsgGetHWRevision
	MsgSetSwupdateVars
	MsgGetSwupdateVars
)

var msgTypeNames = [...]string{
	MsgReqInstall:       "REQ_INSTALL",
	MsgAck:              "ACK",
	MsgNack:             "NACK",
	MsgGetStatus:        "GET_STATUS",
	MsgPostUpdate:       "POST_UPDATE",
	MsgSubprocess:       "SWUPDATE_SUBPROCESS",
	MsgSetAESKey:        "SET_AES_KEY",
	MsgSetUpdateState:   "SET_UPDATE_STATE",
	MsgGetUpdateState:   "GET_UPDATE_STATE",
	MsgReqInstallExt:    "REQ_INSTALL_EXT",
	MsgSetVersionsRange: "SET_VERSIONS_RANGE",
	MsgNotifyStream:     "NOTIFY_STREAM",
	MsgGetHWRevision:    "GET_HW_REVISION",
	MsgSetSwupdateVars:  "SET_SWUPDATE_VARS",
	MsgGetSwupdateVars:  "GET_SWUPDATE_VARS",
}

func (t MsgType) String() string {
	if t >= 0 && int(t) < len(msgTypeNames) {
		return msgTypeNames[t]
	}
	return fmt.Sprintf("MSG_TYPE(%d)", int32(t))
}

// RecoveryStatus is the engine state reported in status messages and
// passed to the completion callback (C RECOVERY_STATUS).
type RecoveryStatus int32

// It is forbidden to reorder these; the engine only appends.
const (
	StatusIdle RecoveryStatus = iota
	StatusStart
	StatusRun
	StatusSuccess
	StatusFailure
	StatusDownload
	StatusDone
	StatusSubprocess
	StatusProgress
)

func (s RecoveryStatus) String() string {
	return getStatusName(s)
}
