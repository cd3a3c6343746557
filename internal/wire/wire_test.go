package wire

import (
	"bytes"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Request: true, Datagram: false, InstanceID: 17, PLDMType: PLDMTypePlatform, Command: CmdGetPDR}
	encoded := EncodeHeader(h)
	if len(encoded) != HeaderLen {
		t.Fatalf("unexpected header length: %d", len(encoded))
	}
	decoded, err := DecodeHeader(encoded)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if decoded != h {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, h)
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	if _, err := DecodeHeader([]byte{0x01}); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestResponseHeaderPreservesInstanceID(t *testing.T) {
	req := Header{Request: true, InstanceID: 9, PLDMType: PLDMTypePlatform, Command: CmdPollForPlatformEventMessage}
	resp := ResponseHeader(req)
	if resp.Request {
		t.Fatalf("expected response header to clear RQ bit")
	}
	if resp.InstanceID != req.InstanceID || resp.Command != req.Command || resp.PLDMType != req.PLDMType {
		t.Fatalf("response header should mirror instance id, type, command: %+v", resp)
	}
}

func TestPollEventRequestRoundTrip(t *testing.T) {
	req := PollEventRequest{
		FormatVersion:      1,
		TransferOpFlag:     OpGetNextPart,
		DataTransferHandle: 0xAABBCCDD,
		EventIDToAck:       0x1234,
	}
	decoded, err := DecodePollEventRequest(EncodePollEventRequest(req))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != req {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, req)
	}
}

func TestPollEventResponseRoundTripStartAndEnd(t *testing.T) {
	resp := PollEventResponse{
		CompletionCode:         Success,
		Tid:                    1,
		EventTid:               1,
		EventID:                0x0042,
		NextDataTransferHandle: 0,
		TransferFlag:           TransferStartAndEnd,
		EventClass:             EventClassSensorEvent,
		EventData:              []byte{0x01, 0x02, 0x03},
	}
	decoded, err := DecodePollEventResponse(EncodePollEventResponse(resp))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.HasChecksum {
		t.Fatalf("start-and-end response should carry no checksum")
	}
	if !bytes.Equal(decoded.EventData, resp.EventData) {
		t.Fatalf("event data mismatch: got %v want %v", decoded.EventData, resp.EventData)
	}
	if decoded.EventID != resp.EventID || decoded.TransferFlag != resp.TransferFlag {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, resp)
	}
}

func TestPollEventResponseRoundTripEndWithChecksum(t *testing.T) {
	resp := PollEventResponse{
		CompletionCode: Success,
		Tid:            1,
		EventTid:       1,
		EventID:        0x0042,
		TransferFlag:   TransferEnd,
		EventClass:     EventClassSensorEvent,
		EventData:      []byte{0xCC, 0xDD},
		Checksum:       0xDEADBEEF,
	}
	decoded, err := DecodePollEventResponse(EncodePollEventResponse(resp))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.HasChecksum {
		t.Fatalf("expected checksum on PLDM_END response")
	}
	if decoded.Checksum != resp.Checksum {
		t.Fatalf("checksum mismatch: got %#x want %#x", decoded.Checksum, resp.Checksum)
	}
}

func TestPollEventResponseErrorCompletionCodeCarriesNoPayload(t *testing.T) {
	resp := PollEventResponse{CompletionCode: CCErrorNotReady}
	encoded := EncodePollEventResponse(resp)
	if len(encoded) != 1 {
		t.Fatalf("expected error response to carry only the completion code, got %d bytes", len(encoded))
	}
}

func TestPlatformEventMessageRequestRoundTrip(t *testing.T) {
	req := PlatformEventMessageRequest{
		FormatVersion: 1,
		Tid:           7,
		EventClass:    EventClassSensorEvent,
		EventData:     []byte{0x01, 0x02, 0x03, 0x04, 0x05},
	}
	decoded, err := DecodePlatformEventMessageRequest(EncodePlatformEventMessageRequest(req))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Tid != req.Tid || decoded.EventClass != req.EventClass {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, req)
	}
	if !bytes.Equal(decoded.EventData, req.EventData) {
		t.Fatalf("event data mismatch: got %v want %v", decoded.EventData, req.EventData)
	}
}

func TestDecodeStateSensorEventData(t *testing.T) {
	data := []byte{0x10, 0x00, byte(SensorEventStateSensorState), 0x02, 0x05, 0x04}
	decoded, err := DecodeStateSensorEventData(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.SensorID != 0x0010 || decoded.SensorOffset != 2 || decoded.EventState != 5 || decoded.PreviousEventState != 4 {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
}

func TestDecodePdrRepositoryChgEventDataRefreshFormat(t *testing.T) {
	data := []byte{byte(FormatIsRefreshAllRecords)}
	decoded, err := DecodePdrRepositoryChgEventData(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.EventDataFormat != FormatIsRefreshAllRecords {
		t.Fatalf("unexpected format: %v", decoded.EventDataFormat)
	}
	if len(decoded.ChangeRecords) != 0 {
		t.Fatalf("expected no change records for refresh format")
	}
}

func TestDecodePdrRepositoryChgEventDataHandles(t *testing.T) {
	w := &writer{}
	w.u8(uint8(FormatIsPdrHandles))
	w.u8(1) // one change record
	w.u8(uint8(RecordsAdded))
	w.u8(2) // two entries
	w.u32(10)
	w.u32(11)

	decoded, err := DecodePdrRepositoryChgEventData(w.buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.ChangeRecords) != 1 {
		t.Fatalf("expected one change record, got %d", len(decoded.ChangeRecords))
	}
	rec := decoded.ChangeRecords[0]
	if rec.EventDataOperation != RecordsAdded || len(rec.ChangeEntries) != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ChangeEntries[0] != 10 || rec.ChangeEntries[1] != 11 {
		t.Fatalf("unexpected handles: %+v", rec.ChangeEntries)
	}
}

func TestGetPDRRequestRoundTrip(t *testing.T) {
	req := GetPDRRequest{
		RecordHandle:       5,
		DataTransferHandle: 0,
		TransferOpFlag:     OpGetFirstPart,
		RequestCount:       512,
		RecordChangeNumber: 0,
	}
	decoded, err := DecodeGetPDRRequest(EncodeGetPDRRequest(req))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != req {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, req)
	}
}

func TestGetPDRResponseInvalidHandleCarriesNoPayload(t *testing.T) {
	resp := GetPDRResponse{CompletionCode: CCInvalidRecordHandle}
	encoded := EncodeGetPDRResponse(resp)
	if len(encoded) != 1 {
		t.Fatalf("expected invalid-handle response to carry only the completion code, got %d bytes", len(encoded))
	}
	decoded, err := DecodeGetPDRResponse(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.CompletionCode != CCInvalidRecordHandle {
		t.Fatalf("unexpected completion code: %v", decoded.CompletionCode)
	}
}

func TestGetPDRResponseRoundTrip(t *testing.T) {
	resp := GetPDRResponse{
		CompletionCode:         Success,
		NextRecordHandle:       0,
		NextDataTransferHandle: 0,
		TransferFlag:           TransferStartAndEnd,
		RecordData:             []byte{0x01, 0x02, 0x03, 0x04},
	}
	decoded, err := DecodeGetPDRResponse(EncodeGetPDRResponse(resp))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded.RecordData, resp.RecordData) {
		t.Fatalf("record data mismatch: got %v want %v", decoded.RecordData, resp.RecordData)
	}
}

func TestCompletionCodeForMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want CompletionCode
	}{
		{nil, Success},
		{ErrInvalidRecordHndl, CCInvalidRecordHandle},
		{ErrTruncated, CCErrorInvalidLength},
		{ErrInvalidData, CCErrorInvalidData},
	}
	for _, c := range cases {
		if got := CompletionCodeFor(c.err); got != c.want {
			t.Fatalf("CompletionCodeFor(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
