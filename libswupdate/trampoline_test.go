package libswupdate

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sys/unix"

	"github.com/moffa90/go-swupdate/protocol"
)

// MockHandler records the callbacks it receives.
type MockHandler struct {
	mu       sync.Mutex
	reads    []int
	statuses []protocol.MsgType
	results  []protocol.RecoveryStatus
	data     []byte
	readRC   int
}

func (m *MockHandler) ReadChunk(buf []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads = append(m.reads, len(buf))
	if m.readRC != 0 {
		return m.readRC
	}
	n := copy(buf, m.data)
	m.data = m.data[n:]
	return n
}

func (m *MockHandler) Status(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, msg.Type)
}

func (m *MockHandler) Terminated(result protocol.RecoveryStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func TestTrampolineDispatch(t *testing.T) {
	h := &MockHandler{data: []byte("0123456789")}
	var released int
	if err := bind(h, make([]byte, 4), func() { released++ }); err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer unbind()

	var got []byte
	for i := 0; i < 10; i++ {
		buf, n := supplyChunk()
		if n <= 0 {
			break
		}
		got = append(got, buf[:n]...)
	}
	if string(got) != "0123456789" {
		t.Errorf("chunks = %q", got)
	}
	if len(h.reads) != 4 || h.reads[0] != 4 {
		t.Errorf("reads = %v, want four reads of 4 bytes", h.reads)
	}

	relayStatus(protocol.NewStatusMessage(protocol.StatusRun, protocol.StatusIdle, 0, "x"))
	relayStatus(protocol.NewNotifyMessage(protocol.StatusRun, 0, 0, "y"))
	if len(h.statuses) != 2 || h.statuses[0] != protocol.MsgGetStatus {
		t.Errorf("statuses = %v", h.statuses)
	}

	complete(protocol.StatusSuccess)
	if len(h.results) != 1 || h.results[0] != protocol.StatusSuccess {
		t.Errorf("results = %v", h.results)
	}
	if released != 1 {
		t.Errorf("buffer released %d times, want 1", released)
	}
	if current() != nil {
		t.Error("slot not cleared after completion")
	}

	// Late callbacks after completion are dropped.
	complete(protocol.StatusFailure)
	if len(h.results) != 1 {
		t.Error("second completion reached the handler")
	}
}

func TestTrampolineWithoutBinding(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	buf, n := supplyChunk()
	if buf != nil || n != -1 {
		t.Errorf("supplyChunk() = %v, %d; want nil, -1", buf, n)
	}
	relayStatus(protocol.NewStatusMessage(protocol.StatusRun, protocol.StatusIdle, 0, "x"))
	complete(protocol.StatusSuccess)

	if logs.Len() != 3 {
		t.Errorf("expected 3 warnings, got %d", logs.Len())
	}
}

func TestTrampolineReadError(t *testing.T) {
	h := &MockHandler{readRC: -1}
	if err := bind(h, make([]byte, 8), nil); err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer unbind()

	if _, n := supplyChunk(); n != -1 {
		t.Errorf("n = %d, want -1", n)
	}
}

func TestTrampolineOversizedRead(t *testing.T) {
	h := &MockHandler{readRC: 100}
	if err := bind(h, make([]byte, 8), nil); err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer unbind()

	if _, n := supplyChunk(); n != -1 {
		t.Errorf("n = %d, want -1 for a count beyond the buffer", n)
	}
}

func TestBindBusy(t *testing.T) {
	if err := bind(&MockHandler{}, nil, nil); err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer unbind()

	err := bind(&MockHandler{}, nil, nil)
	if !errors.Is(err, unix.EBUSY) {
		t.Errorf("second bind = %v, want EBUSY", err)
	}
}

func TestEngineStartBusy(t *testing.T) {
	if err := bind(&MockHandler{}, nil, nil); err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer unbind()

	var req protocol.Request
	rc := New(WithBufferSize(16)).Start(&req, protocol.RequestSize, &MockHandler{})
	if rc != -int(unix.EBUSY) {
		t.Errorf("Start = %d, want %d", rc, -int(unix.EBUSY))
	}
}

func TestEngineStartWithoutLibrary(t *testing.T) {
	if Available {
		t.Skip("native library linked in")
	}

	h := &MockHandler{}
	e := New()
	var req protocol.Request
	e.PrepareRequest(&req)
	if req.APIVersion != protocol.APIVersion {
		t.Errorf("APIVersion = %d after prepare", req.APIVersion)
	}

	if rc := e.Start(&req, protocol.RequestSize, h); rc != -int(unix.ENOSYS) {
		t.Errorf("Start = %d, want -ENOSYS", rc)
	}
	if current() != nil {
		t.Error("failed start left a binding behind")
	}
	if len(h.results) != 0 {
		t.Error("handler called after failed start")
	}
	if rc := e.SetVersionRange("1", "2", "1"); rc >= 0 {
		t.Errorf("SetVersionRange = %d, want negative", rc)
	}
	if rc := e.SetAESKey(strings.Repeat("0", 64), strings.Repeat("0", 32)); rc >= 0 {
		t.Errorf("SetAESKey = %d, want negative", rc)
	}
}

func TestWithBufferSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"default", 0, DefaultBufferSize},
		{"custom", 4096, 4096},
		{"negative ignored", -1, DefaultBufferSize},
		{"too large ignored", 1 << 30, DefaultBufferSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(WithBufferSize(tt.size)).BufferSize(); got != tt.want {
				t.Errorf("BufferSize() = %d, want %d", got, tt.want)
			}
		})
	}
}
