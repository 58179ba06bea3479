package protocol

import "unsafe"

// Payload is one decoded case of the message union.
// It is implemented by StatusPayload, NotifyPayload, InstallPayload,
// ProcessPayload, AESKeyPayload, VersionsPayload, RevisionsPayload and
// RawPayload.
type Payload interface {
	isPayload()
}

// RawPayload is the plain text case, used by acknowledgements and simple
// state requests.
type RawPayload struct {
	Text [RawTextSize]byte
}

func (StatusPayload) isPayload()    {}
func (NotifyPayload) isPayload()    {}
func (InstallPayload) isPayload()   {}
func (ProcessPayload) isPayload()   {}
func (AESKeyPayload) isPayload()    {}
func (VersionsPayload) isPayload()  {}
func (RevisionsPayload) isPayload() {}
func (RawPayload) isPayload()       {}

// overlay views the union storage of m as the case T.
// T must be one of the payload structs declared in types.go.
func overlay[T any](m *Message) *T {
	return (*T)(unsafe.Pointer(&m.Data))
}

// Payload decodes the union case selected by the message type.
//
// Types without a known case return an *UnknownPayloadError; they are
// never reinterpreted as another case.
//
// Example:
//
//	p, err := msg.Payload()
//	if protocol.IsUnknownPayload(err) {
//	    return // ignore
//	}
//	if st, ok := p.(protocol.StatusPayload); ok {
//	    fmt.Println(st.Current, st.Description())
//	}
func (m *Message) Payload() (Payload, error) {
	switch m.Type {
	case MsgGetStatus:
		return *overlay[StatusPayload](m), nil
	case MsgNotifyStream:
		return *overlay[NotifyPayload](m), nil
	case MsgReqInstall, MsgReqInstallExt:
		return *overlay[InstallPayload](m), nil
	case MsgSubprocess:
		return *overlay[ProcessPayload](m), nil
	case MsgSetAESKey:
		return *overlay[AESKeyPayload](m), nil
	case MsgSetVersionsRange:
		return *overlay[VersionsPayload](m), nil
	case MsgGetHWRevision:
		return *overlay[RevisionsPayload](m), nil
	case MsgAck, MsgNack, MsgPostUpdate, MsgSetUpdateState, MsgGetUpdateState:
		return *overlay[RawPayload](m), nil
	default:
		return nil, &UnknownPayloadError{Type: m.Type}
	}
}

// Status returns the status case when the message type selects it.
func (m *Message) Status() (StatusPayload, bool) {
	if m.Type != MsgGetStatus {
		return StatusPayload{}, false
	}
	return *overlay[StatusPayload](m), true
}

// Description returns the status text, cut at its terminator.
func (p StatusPayload) Description() string {
	return CString(p.Desc[:])
}

// Text returns the notification text.
func (p NotifyPayload) Text() string {
	return CString(p.Msg[:])
}

// String returns the acknowledgement text.
func (p RawPayload) String() string {
	return CString(p.Text[:])
}

// Range returns the minimum, maximum and current version strings.
func (p VersionsPayload) Range() (minimum, maximum, current string) {
	return CString(p.Minimum[:]), CString(p.Maximum[:]), CString(p.Current[:])
}

// Key returns the ASCII key and initialization vector.
func (p AESKeyPayload) Key() (key, ivt string) {
	return CString(p.KeyASCII[:]), CString(p.IVTASCII[:])
}

// Board returns the board name and hardware revision.
func (p RevisionsPayload) Board() (name, revision string) {
	return CString(p.BoardName[:]), CString(p.Revision[:])
}

// newMessage returns a zeroed message with magic and type filled in.
func newMessage(t MsgType) *Message {
	return &Message{Magic: IPCMagic, Type: t}
}

// NewStatusMessage builds a MsgGetStatus message.
// A description longer than the buffer is truncated to fit.
func NewStatusMessage(current, lastResult RecoveryStatus, errCode int32, desc string) *Message {
	m := newMessage(MsgGetStatus)
	p := overlay[StatusPayload](m)
	p.Current = current
	p.LastResult = lastResult
	p.Error = errCode
	copy(p.Desc[:TextSize-1], desc)
	return m
}

// NewNotifyMessage builds a MsgNotifyStream message.
// A text longer than the buffer is truncated to fit.
func NewNotifyMessage(status RecoveryStatus, errCode, level int32, text string) *Message {
	m := newMessage(MsgNotifyStream)
	p := overlay[NotifyPayload](m)
	p.Status = status
	p.Error = errCode
	p.Level = level
	copy(p.Msg[:TextSize-1], text)
	return m
}

// NewVersionsMessage builds a MsgSetVersionsRange message.
// Empty strings leave the corresponding buffer zeroed.
func NewVersionsMessage(minimum, maximum, current string) (*Message, error) {
	m := newMessage(MsgSetVersionsRange)
	p := overlay[VersionsPayload](m)
	if err := PutCString(p.Minimum[:], minimum, "minimum_version"); err != nil {
		return nil, err
	}
	if err := PutCString(p.Maximum[:], maximum, "maximum_version"); err != nil {
		return nil, err
	}
	if err := PutCString(p.Current[:], current, "current_version"); err != nil {
		return nil, err
	}
	return m, nil
}

// NewAESKeyMessage builds a MsgSetAESKey message from the ASCII key and IVT.
func NewAESKeyMessage(key, ivt string) (*Message, error) {
	m := newMessage(MsgSetAESKey)
	p := overlay[AESKeyPayload](m)
	if err := PutCString(p.KeyASCII[:], key, "key_ascii"); err != nil {
		return nil, err
	}
	if err := PutCString(p.IVTASCII[:], ivt, "ivt_ascii"); err != nil {
		return nil, err
	}
	return m, nil
}
