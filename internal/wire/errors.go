package wire

import "errors"

// Sentinel errors for the taxonomy named in the responder's error handling
// design. Callers compare with errors.Is; command handlers convert every
// one of these into a completion-code-only response.
var (
	ErrTruncated         = errors.New("wire: truncated message")
	ErrInvalidLength     = errors.New("wire: invalid field length")
	ErrInvalidData       = errors.New("wire: invalid data")
	ErrUnsupportedType   = errors.New("wire: unsupported pldm type")
	ErrDecodeFailed      = errors.New("wire: decode failed")
	ErrChecksumMismatch  = errors.New("wire: checksum mismatch")
	ErrInvalidRecordHndl = errors.New("wire: invalid record handle")
)

// CompletionCode mirrors the PLDM completion-code byte carried in every
// response header. Values below are the small subset this responder emits;
// PLDM defines a much larger standard table, but only these are produced
// here.
type CompletionCode uint8

const (
	Success              CompletionCode = 0x00
	CCError              CompletionCode = 0x01
	CCErrorInvalidData   CompletionCode = 0x02
	CCErrorInvalidLength CompletionCode = 0x03
	CCErrorNotReady      CompletionCode = 0x04
	CCErrorUnsupportedPldmCmd CompletionCode = 0x05
	CCInvalidRecordHandle CompletionCode = 0x80
)

// CompletionCodeFor maps a taxonomy error to the completion code a command
// handler should place in its response. Unrecognised errors map to the
// generic CCError so that no internal error type ever crosses the wire
// boundary unconverted.
func CompletionCodeFor(err error) CompletionCode {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrInvalidRecordHndl):
		return CCInvalidRecordHandle
	case errors.Is(err, ErrInvalidLength), errors.Is(err, ErrTruncated):
		return CCErrorInvalidLength
	case errors.Is(err, ErrInvalidData), errors.Is(err, ErrDecodeFailed):
		return CCErrorInvalidData
	default:
		return CCError
	}
}
