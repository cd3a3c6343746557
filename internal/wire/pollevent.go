package wire

// PollEventRequest is the body of a PollForPlatformEventMessage request.
type PollEventRequest struct {
	FormatVersion  uint8
	TransferOpFlag TransferOpFlag
	// DataTransferHandle echoes the cursor from the previous response for
	// OpGetNextPart; it is encoded for every TransferOpFlag.
	DataTransferHandle uint32
	// EventIDToAck carries the id of the event being fetched or
	// acknowledged; it is encoded for every TransferOpFlag.
	EventIDToAck uint16
}

// EncodePollEventRequest serializes req after the PLDM header.
func EncodePollEventRequest(req PollEventRequest) []byte {
	w := &writer{}
	w.u8(req.FormatVersion)
	w.u8(uint8(req.TransferOpFlag))
	w.u32(req.DataTransferHandle)
	w.u16(req.EventIDToAck)
	return w.buf
}

// DecodePollEventRequest parses a PollForPlatformEventMessage request body.
func DecodePollEventRequest(body []byte) (PollEventRequest, error) {
	r := newReader(body)
	formatVersion, err := r.u8()
	if err != nil {
		return PollEventRequest{}, err
	}
	opFlag, err := r.u8()
	if err != nil {
		return PollEventRequest{}, err
	}
	handle, err := r.u32()
	if err != nil {
		return PollEventRequest{}, err
	}
	eventID, err := r.u16()
	if err != nil {
		return PollEventRequest{}, err
	}
	return PollEventRequest{
		FormatVersion:      formatVersion,
		TransferOpFlag:     TransferOpFlag(opFlag),
		DataTransferHandle: handle,
		EventIDToAck:       eventID,
	}, nil
}

// PollEventResponse is the body of a PollForPlatformEventMessage response.
type PollEventResponse struct {
	CompletionCode         CompletionCode
	Tid                    uint8
	EventTid               uint8
	EventID                uint16
	NextDataTransferHandle uint32
	TransferFlag           TransferFlag
	EventClass             EventClass
	// EventData is the raw part payload for this response; for a
	// PLDM_END transfer (not PLDM_START_AND_END) it is followed by a
	// trailing 4-byte little-endian CRC-32 that DecodePollEventResponse
	// splits out into Checksum.
	EventData []byte
	Checksum  uint32
	HasChecksum bool
}

// EncodePollEventResponse serializes resp after the PLDM header. A
// trailing checksum is only written for PLDM_END, matching the terminus
// behaviour the poller expects to validate against.
func EncodePollEventResponse(resp PollEventResponse) []byte {
	w := &writer{}
	w.u8(uint8(resp.CompletionCode))
	if resp.CompletionCode != Success {
		return w.buf
	}
	w.u8(resp.Tid)
	w.u8(resp.EventTid)
	w.u16(resp.EventID)
	w.u32(resp.NextDataTransferHandle)
	w.u8(uint8(resp.TransferFlag))
	w.u8(uint8(resp.EventClass))
	w.u32(uint32(len(resp.EventData)))
	w.bytes(resp.EventData)
	if resp.TransferFlag == TransferEnd {
		w.u32(resp.Checksum)
	}
	return w.buf
}

// DecodePollEventResponse parses a PollForPlatformEventMessage response
// body. The CRC-32, when present, is only meaningful for PLDM_END; callers
// must ignore it for PLDM_START_AND_END per the responder's checksum
// policy.
func DecodePollEventResponse(body []byte) (PollEventResponse, error) {
	r := newReader(body)
	cc, err := r.u8()
	if err != nil {
		return PollEventResponse{}, err
	}
	resp := PollEventResponse{CompletionCode: CompletionCode(cc)}
	if resp.CompletionCode != Success {
		return resp, nil
	}
	if resp.Tid, err = r.u8(); err != nil {
		return PollEventResponse{}, err
	}
	if resp.EventTid, err = r.u8(); err != nil {
		return PollEventResponse{}, err
	}
	if resp.EventID, err = r.u16(); err != nil {
		return PollEventResponse{}, err
	}
	if resp.NextDataTransferHandle, err = r.u32(); err != nil {
		return PollEventResponse{}, err
	}
	flag, err := r.u8()
	if err != nil {
		return PollEventResponse{}, err
	}
	resp.TransferFlag = TransferFlag(flag)
	class, err := r.u8()
	if err != nil {
		return PollEventResponse{}, err
	}
	resp.EventClass = EventClass(class)
	dataLen, err := r.u32()
	if err != nil {
		return PollEventResponse{}, err
	}
	if resp.EventData, err = r.bytes(int(dataLen)); err != nil {
		return PollEventResponse{}, err
	}
	if resp.TransferFlag == TransferEnd {
		if resp.Checksum, err = r.u32(); err != nil {
			return PollEventResponse{}, err
		}
		resp.HasChecksum = true
	}
	return resp, nil
}
