package protocol

import (
	"testing"
	"unsafe"
)

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

func TestRequestLayout(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))

	lenOff := alignUp(12, ptr)
	infoOff := lenOff + ptr
	setOff := infoOff + InfoSize
	modeOff := setOff + SoftwareSetSize
	storeOff := modeOff + RunningModeSize
	size := alignUp(storeOff+1, ptr)

	var r Request
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"apiversion", unsafe.Offsetof(r.APIVersion), 0},
		{"source", unsafe.Offsetof(r.Source), 4},
		{"dry_run", unsafe.Offsetof(r.DryRun), 8},
		{"len", unsafe.Offsetof(r.Len), lenOff},
		{"info", unsafe.Offsetof(r.Info), infoOff},
		{"software_set", unsafe.Offsetof(r.SoftwareSet), setOff},
		{"running_mode", unsafe.Offsetof(r.RunningMode), modeOff},
		{"disable_store_swu", unsafe.Offsetof(r.DisableStoreSWU), storeOff},
		{"sizeof", unsafe.Sizeof(r), size},
		{"RequestSize", RequestSize, size},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestRequestLayout64(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("64-bit layout only")
	}
	if RequestSize != 1056 {
		t.Errorf("RequestSize = %d, want 1056", RequestSize)
	}
	if MessageDataSize != 3112 {
		t.Errorf("MessageDataSize = %d, want 3112", MessageDataSize)
	}
	if MessageSize != 3120 {
		t.Errorf("MessageSize = %d, want 3120", MessageSize)
	}
}

func TestPayloadLayouts(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))

	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"status", unsafe.Sizeof(StatusPayload{}), 12 + TextSize},
		{"notify", unsafe.Sizeof(NotifyPayload{}), 12 + TextSize},
		{"install", unsafe.Sizeof(InstallPayload{}), alignUp(RequestSize+4+TextSize, ptr)},
		{"process", unsafe.Sizeof(ProcessPayload{}), 16 + TextSize},
		{"aes", unsafe.Sizeof(AESKeyPayload{}), AESKeySize + AESIVTSize},
		{"versions", unsafe.Sizeof(VersionsPayload{}), 3 * VersionSize},
		{"revisions", unsafe.Sizeof(RevisionsPayload{}), 2 * RevisionSize},
		{"raw", unsafe.Sizeof(RawPayload{}), RawTextSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
			if tt.got > MessageDataSize {
				t.Errorf("case size %d exceeds union size %d", tt.got, MessageDataSize)
			}
		})
	}
}

func TestMessageLayout(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))
	var m Message

	if off := unsafe.Offsetof(m.Magic); off != 0 {
		t.Errorf("magic offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(m.Type); off != 4 {
		t.Errorf("type offset = %d, want 4", off)
	}
	if off := unsafe.Offsetof(m.Data); off != alignUp(8, ptr) {
		t.Errorf("data offset = %d, want %d", off, alignUp(8, ptr))
	}
	if align := unsafe.Alignof(m); align != ptr {
		t.Errorf("message alignment = %d, want %d", align, ptr)
	}
	if MessageDataSize != unsafe.Sizeof(InstallPayload{}) {
		t.Errorf("union size = %d, want largest case %d", MessageDataSize, unsafe.Sizeof(InstallPayload{}))
	}
}

func TestEnumValues(t *testing.T) {
	tests := []struct {
		name string
		got  int32
		want int32
	}{
		{"SOURCE_LOCAL", int32(SourceLocal), 4},
		{"SOURCE_CHUNKS_DOWNLOADER", int32(SourceChunksDownloader), 5},
		{"RUN_DEFAULT", int32(RunDefault), 0},
		{"RUN_DRYRUN", int32(RunDryRun), 1},
		{"RUN_INSTALL", int32(RunInstall), 2},
		{"GET_STATUS", int32(MsgGetStatus), 3},
		{"SET_VERSIONS_RANGE", int32(MsgSetVersionsRange), 10},
		{"NOTIFY_STREAM", int32(MsgNotifyStream), 11},
		{"GET_HW_REVISION", int32(MsgGetHWRevision), 12},
		{"IDLE", int32(StatusIdle), 0},
		{"FAILURE", int32(StatusFailure), 4},
		{"PROGRESS", int32(StatusProgress), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{SourceLocal.String(), "local"},
		{SourceType(42).String(), "source(42)"},
		{RunDryRun.String(), "dry-run"},
		{RunType(9).String(), "run(9)"},
		{MsgGetStatus.String(), "GET_STATUS"},
		{MsgType(-1).String(), "MSG_TYPE(-1)"},
		{MsgType(99).String(), "MSG_TYPE(99)"},
		{StatusSuccess.String(), "SUCCESS"},
		{RecoveryStatus(77).String(), "STATUS(77)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("String() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
