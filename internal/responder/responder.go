// Package responder answers inbound PLDM command requests addressed to
// this terminus (GetPDR today). This is the mirror image of the
// correlator's response-only path: the correlator resolves responses to
// requests this daemon itself issued while polling for events, while
// Responder handles requests some other PLDM entity issues to us.
package responder

import (
	logs "github.com/danmuck/smplog"

	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/wire"
)

// Responder decodes a command body and returns the bytes that go after
// the response header: a completion code, plus whatever payload that
// command's success case carries.
type Responder struct {
	repo *pdr.Repository
}

// New builds a Responder backed by repo.
func New(repo *pdr.Repository) *Responder {
	return &Responder{repo: repo}
}

// Handle dispatches command to its handler. Unsupported commands get a
// completion-code-only CCErrorUnsupportedPldmCmd response, matching the
// blanket "every error becomes a completion-code-only response" rule.
func (r *Responder) Handle(command uint8, body []byte) []byte {
	switch command {
	case wire.CmdGetPDR:
		return r.handleGetPDR(body)
	default:
		logs.Warnf("responder: unsupported command=0x%02x", command)
		return []byte{uint8(wire.CCErrorUnsupportedPldmCmd)}
	}
}

// handleGetPDR looks the requested handle up in the PDR repository and
// answers with the whole record in one PLDM_START_AND_END response. A
// requestCount of 0 asks for no record data at all, matching the
// original responder's getPDR: only a non-zero requestCount populates
// recordData, capped at that many bytes.
func (r *Responder) handleGetPDR(body []byte) []byte {
	req, err := wire.DecodeGetPDRRequest(body)
	if err != nil {
		logs.Errf("responder: getPDR: %v", err)
		return []byte{uint8(wire.CCErrorInvalidLength)}
	}

	rec, ok := r.repo.GetByHandle(req.RecordHandle)
	if !ok {
		return wire.EncodeGetPDRResponse(wire.GetPDRResponse{CompletionCode: wire.CCInvalidRecordHandle})
	}

	var data []byte
	if req.RequestCount != 0 {
		data = rec.Payload
		if len(data) > int(req.RequestCount) {
			data = data[:req.RequestCount]
		}
	}

	return wire.EncodeGetPDRResponse(wire.GetPDRResponse{
		CompletionCode:   wire.Success,
		NextRecordHandle: rec.NextHandle,
		TransferFlag:     wire.TransferStartAndEnd,
		RecordData:       data,
	})
}
