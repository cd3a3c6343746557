package responder

import (
	"testing"

	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/testutil/testlog"
	"github.com/danmuck/pldmd/internal/wire"
)

func TestHandleGetPDRReturnsRecordOnHit(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	handle := pdr.SeedTerminusLocator(repo, 1, 1, 8)

	r := New(repo)
	reqBody := wire.EncodeGetPDRRequest(wire.GetPDRRequest{RecordHandle: handle, RequestCount: 64})
	respBody := r.Handle(wire.CmdGetPDR, reqBody)

	resp, err := wire.DecodeGetPDRResponse(respBody)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CompletionCode != wire.Success {
		t.Fatalf("expected Success, got %v", resp.CompletionCode)
	}
	if resp.TransferFlag != wire.TransferStartAndEnd {
		t.Fatalf("expected TransferStartAndEnd, got %v", resp.TransferFlag)
	}
	if len(resp.RecordData) == 0 {
		t.Fatalf("expected non-empty record data")
	}
}

func TestHandleGetPDRUnknownHandleReturnsInvalidRecordHandle(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	r := New(repo)

	reqBody := wire.EncodeGetPDRRequest(wire.GetPDRRequest{RecordHandle: 0xFFFF, RequestCount: 64})
	respBody := r.Handle(wire.CmdGetPDR, reqBody)

	resp, err := wire.DecodeGetPDRResponse(respBody)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CompletionCode != wire.CCInvalidRecordHandle {
		t.Fatalf("expected CCInvalidRecordHandle, got %v", resp.CompletionCode)
	}
	if len(respBody) != 1 {
		t.Fatalf("expected no payload beyond the completion code, got %d bytes", len(respBody))
	}
}

func TestHandleGetPDRZeroRequestCountReturnsNoRecordData(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	handle := pdr.SeedTerminusLocator(repo, 1, 1, 8)
	r := New(repo)

	reqBody := wire.EncodeGetPDRRequest(wire.GetPDRRequest{RecordHandle: handle, RequestCount: 0})
	respBody := r.Handle(wire.CmdGetPDR, reqBody)

	resp, err := wire.DecodeGetPDRResponse(respBody)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CompletionCode != wire.Success {
		t.Fatalf("expected Success, got %v", resp.CompletionCode)
	}
	if len(resp.RecordData) != 0 {
		t.Fatalf("expected zero record data with requestCount=0, got %d bytes", len(resp.RecordData))
	}
}

func TestHandleGetPDRTruncatesToRequestCount(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	handle := pdr.SeedTerminusLocator(repo, 1, 1, 8)
	r := New(repo)

	reqBody := wire.EncodeGetPDRRequest(wire.GetPDRRequest{RecordHandle: handle, RequestCount: 1})
	respBody := r.Handle(wire.CmdGetPDR, reqBody)

	resp, err := wire.DecodeGetPDRResponse(respBody)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.RecordData) != 1 {
		t.Fatalf("expected record data truncated to 1 byte, got %d", len(resp.RecordData))
	}
}

func TestHandleUnsupportedCommandReturnsCompletionCodeOnly(t *testing.T) {
	testlog.Start(t)
	r := New(pdr.NewRepository())
	respBody := r.Handle(0xFF, nil)
	if len(respBody) != 1 || wire.CompletionCode(respBody[0]) != wire.CCErrorUnsupportedPldmCmd {
		t.Fatalf("expected a single-byte CCErrorUnsupportedPldmCmd response, got %v", respBody)
	}
}

func TestHandleGetPDRMalformedBodyReturnsInvalidLength(t *testing.T) {
	testlog.Start(t)
	r := New(pdr.NewRepository())
	respBody := r.Handle(wire.CmdGetPDR, []byte{0x01})
	if len(respBody) != 1 || wire.CompletionCode(respBody[0]) != wire.CCErrorInvalidLength {
		t.Fatalf("expected a single-byte CCErrorInvalidLength response, got %v", respBody)
	}
}
