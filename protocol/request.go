package protocol

// PrepareRequest resets req to the defaults swupdate_prepare_req applies:
// every byte zeroed, APIVersion set, RunDefault selected.
//
// The engine's own prepare step does the same in C. Callers that set fields
// must do so after preparing, never before.
func PrepareRequest(req *Request) {
	if req == nil {
		return
	}
	*req = Request{
		APIVersion: APIVersion,
		DryRun:     RunDefault,
	}
}

// SetInfo stores free-form metadata in the info buffer.
func (r *Request) SetInfo(s string) error {
	return PutCString(r.Info[:], s, "info")
}

// SetSoftwareSet stores the software collection name.
func (r *Request) SetSoftwareSet(s string) error {
	return PutCString(r.SoftwareSet[:], s, "software_set")
}

// SetRunningMode stores the running mode name.
func (r *Request) SetRunningMode(s string) error {
	return PutCString(r.RunningMode[:], s, "running_mode")
}

// InfoString returns the decoded info buffer.
func (r *Request) InfoString() string {
	return CString(r.Info[:])
}

// SoftwareSetString returns the decoded software collection name.
func (r *Request) SoftwareSetString() string {
	return CString(r.SoftwareSet[:])
}

// RunningModeString returns the decoded running mode name.
func (r *Request) RunningModeString() string {
	return CString(r.RunningMode[:])
}
