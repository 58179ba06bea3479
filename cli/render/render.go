// Package render writes swupdate-apply output records.
//
// Three formats are supported:
//   - text: status lines as relayed, then a one-line summary
//   - json: one JSON object per line
//   - msgpack: length-prefixed msgpack maps, for supervisors reading a pipe
//
// Every record carries a "type" discriminant: "status" or "report".
package render

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/moffa90/go-swupdate/updater"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Record type discriminants.
const (
	StatusType = "status"
	ReportType = "report"
)

// Frame size constants for msgpack output.
const (
	// LengthPrefixSize is the size of the big-endian length prefix in bytes
	LengthPrefixSize = 4

	// MaxPayloadSize bounds a single record
	MaxPayloadSize = 1 << 20
)

// ParseFormat parses a format string. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("invalid format: %q (must be text, json, or msgpack)", s)
	}
}

// StatusRecord is one engine status message.
type StatusRecord struct {
	Type        string `json:"type" msgpack:"type"`
	SessionID   string `json:"session_id" msgpack:"session_id"`
	Sequence    int64  `json:"sequence" msgpack:"sequence"`
	Current     string `json:"current" msgpack:"current"`
	CurrentCode int32  `json:"current_code" msgpack:"current_code"`
	LastResult  string `json:"last_result" msgpack:"last_result"`
	Error       int32  `json:"error" msgpack:"error"`
	Message     string `json:"message" msgpack:"message"`
}

// ReportRecord summarizes a finished session.
type ReportRecord struct {
	Type        string `json:"type" msgpack:"type"`
	SessionID   string `json:"session_id" msgpack:"session_id"`
	Path        string `json:"path" msgpack:"path"`
	DryRun      bool   `json:"dry_run" msgpack:"dry_run"`
	Result      string `json:"result" msgpack:"result"`
	ResultCode  int32  `json:"result_code" msgpack:"result_code"`
	BytesSent   int64  `json:"bytes_sent" msgpack:"bytes_sent"`
	Chunks      int64  `json:"chunks" msgpack:"chunks"`
	StatusLines int64  `json:"status_lines" msgpack:"status_lines"`
	ReadError   string `json:"read_error,omitempty" msgpack:"read_error,omitempty"`
	ElapsedMS   int64  `json:"elapsed_ms" msgpack:"elapsed_ms"`
}

// NewStatusRecord converts a status event.
func NewStatusRecord(e updater.StatusEvent) StatusRecord {
	return StatusRecord{
		Type:        StatusType,
		SessionID:   e.SessionID.String(),
		Sequence:    e.Sequence,
		Current:     e.Current.String(),
		CurrentCode: int32(e.Current),
		LastResult:  e.LastResult.String(),
		Error:       e.Error,
		Message:     e.Description,
	}
}

// NewReportRecord converts a session report.
func NewReportRecord(r *updater.Report) ReportRecord {
	rec := ReportRecord{
		Type:        ReportType,
		SessionID:   r.SessionID.String(),
		Path:        r.Path,
		DryRun:      r.DryRun,
		Result:      r.Result.String(),
		ResultCode:  int32(r.Result),
		BytesSent:   r.BytesSent,
		Chunks:      r.Chunks,
		StatusLines: r.StatusLines,
		ElapsedMS:   r.Elapsed.Milliseconds(),
	}
	if r.ReadErr != nil {
		rec.ReadError = r.ReadErr.Error()
	}
	return rec
}

// Renderer writes records to an output stream. It is safe for concurrent
// use; status records arrive on the engine's thread.
type Renderer struct {
	format Format
	mu     sync.Mutex
	out    io.Writer
}

// NewRenderer creates a renderer writing format to out.
func NewRenderer(format Format, out io.Writer) *Renderer {
	return &Renderer{format: format, out: out}
}

// Format returns the configured format.
func (r *Renderer) Format() Format {
	return r.format
}

// Line writes a relayed status line. Only the text format prints lines;
// structured formats render events instead.
func (r *Renderer) Line(line string) error {
	if r.format != FormatText {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintln(r.out, line)
	return err
}

// Event writes a status event in the structured formats.
func (r *Renderer) Event(e updater.StatusEvent) error {
	if r.format == FormatText {
		return nil
	}
	return r.write(NewStatusRecord(e))
}

// Report writes the session summary.
func (r *Renderer) Report(rep *updater.Report) error {
	rec := NewReportRecord(rep)
	if r.format != FormatText {
		return r.write(rec)
	}

	mode := "install"
	if rec.DryRun {
		mode = "dry-run"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintf(r.out, "%s %s: %s (%d bytes, %d status messages, %dms)\n",
		mode, rec.Path, rec.Result, rec.BytesSent, rec.StatusLines, rec.ElapsedMS)
	return err
}

// Render writes an arbitrary value: JSON or msgpack as configured, or its
// default formatting for text.
func (r *Renderer) Render(v any) error {
	if r.format == FormatText {
		r.mu.Lock()
		defer r.mu.Unlock()
		_, err := fmt.Fprintf(r.out, "%+v\n", v)
		return err
	}
	return r.write(v)
}

func (r *Renderer) write(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.format {
	case FormatJSON:
		return json.NewEncoder(r.out).Encode(v)
	case FormatMsgpack:
		return WriteFrame(r.out, v)
	default:
		return fmt.Errorf("unsupported structured format %q", r.format)
	}
}

// WriteFrame writes v as a length-prefixed msgpack frame.
func WriteFrame(w io.Writer, v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("frame payload %d bytes exceeds %d", len(payload), MaxPayloadSize)
	}

	frame := make([]byte, LengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[LengthPrefixSize:], payload)

	_, err = w.Write(frame)
	return err
}

// ErrFrameTooLarge is returned by ReadFrame for an oversized length prefix.
var ErrFrameTooLarge = errors.New("frame exceeds maximum payload size")

// ReadFrame reads one frame written by WriteFrame and decodes it into v.
// It returns io.EOF when the stream ends cleanly between frames.
func ReadFrame(rd io.Reader, v any) error {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(rd, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("partial length prefix: %w", err)
		}
		return err
	}

	size := binary.BigEndian.Uint32(prefix[:])
	if size > MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(rd, payload); err != nil {
		return fmt.Errorf("partial frame payload: %w", err)
	}
	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	return nil
}
