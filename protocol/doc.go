// Package protocol defines the memory layouts shared with the SWUpdate engine.
//
// The structures in this package are not serialized: pointers to them are
// handed to libswupdate as-is, so field order, widths and padding must match
// the C definitions bit for bit. There is no negotiation beyond
// Request.APIVersion and the request size the engine receives.
//
// # Layouts
//
//	swupdate_request (Request, 1056 bytes on 64-bit Linux):
//	[APIVERSION u32][SOURCE int][DRY_RUN int][PAD 4][LEN size_t]
//	[INFO 512][SOFTWARE_SET 256][RUNNING_MODE 256][DISABLE_STORE bool][PAD 7]
//
//	ipc_message (Message, 3120 bytes on 64-bit Linux):
//	[MAGIC int][TYPE int][DATA union, size of its largest case]
//
// The union cases are StatusPayload, NotifyPayload, InstallPayload,
// ProcessPayload, AESKeyPayload, VersionsPayload, RevisionsPayload and the
// plain 128-byte text case. The message type selects the valid case:
//
//	p, err := msg.Payload()
//	switch v := p.(type) {
//	case protocol.StatusPayload:
//	    fmt.Printf("Status: %d message: %s\n", v.Current, v.Description())
//	case protocol.NotifyPayload:
//	    fmt.Println(v.Text())
//	}
//
// Unknown types yield an *UnknownPayloadError and are never decoded as a
// different case.
//
// # Strings
//
// Text travels in fixed-size, NUL-padded byte arrays. CString decodes up to
// the first zero byte (or the whole buffer when none is present) and
// PutCString encodes with a guaranteed terminator.
//
// # Reference
//
// The layouts follow include/network_ipc.h and include/swupdate_status.h of
// SWUpdate.
package protocol
