package protocol

import (
	"strings"
	"testing"
)

func TestPrepareRequest(t *testing.T) {
	req := Request{
		APIVersion:      99,
		Source:          SourceWebserver,
		DryRun:          RunDryRun,
		Len:             1234,
		DisableStoreSWU: true,
	}
	req.Info[0] = 'x'

	PrepareRequest(&req)

	if req.APIVersion != APIVersion {
		t.Errorf("APIVersion = %d, want %d", req.APIVersion, APIVersion)
	}
	if req.DryRun != RunDefault {
		t.Errorf("DryRun = %s, want default", req.DryRun)
	}
	if req.Source != SourceUnknown || req.Len != 0 || req.DisableStoreSWU {
		t.Errorf("prepare must zero the request, got %+v", req)
	}
	if req.Info[0] != 0 {
		t.Error("info buffer not zeroed")
	}

	PrepareRequest(nil)
}

func TestRequestStrings(t *testing.T) {
	var req Request
	PrepareRequest(&req)

	if err := req.SetInfo("built by ci"); err != nil {
		t.Fatal(err)
	}
	if err := req.SetSoftwareSet("stable"); err != nil {
		t.Fatal(err)
	}
	if err := req.SetRunningMode("copy1"); err != nil {
		t.Fatal(err)
	}

	if got := req.InfoString(); got != "built by ci" {
		t.Errorf("InfoString() = %q", got)
	}
	if got := req.SoftwareSetString(); got != "stable" {
		t.Errorf("SoftwareSetString() = %q", got)
	}
	if got := req.RunningModeString(); got != "copy1" {
		t.Errorf("RunningModeString() = %q", got)
	}

	if err := req.SetSoftwareSet(strings.Repeat("s", SoftwareSetSize)); err == nil {
		t.Error("expected error for oversized software set")
	}
}
