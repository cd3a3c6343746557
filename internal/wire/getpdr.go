package wire

// GetPDRRequest is the body of a GetPDR request.
type GetPDRRequest struct {
	RecordHandle        uint32
	DataTransferHandle  uint32
	TransferOpFlag      TransferOpFlag
	RequestCount        uint16
	RecordChangeNumber  uint16
}

// EncodeGetPDRRequest serializes req after the PLDM header.
func EncodeGetPDRRequest(req GetPDRRequest) []byte {
	w := &writer{}
	w.u32(req.RecordHandle)
	w.u32(req.DataTransferHandle)
	w.u8(uint8(req.TransferOpFlag))
	w.u16(req.RequestCount)
	w.u16(req.RecordChangeNumber)
	return w.buf
}

// DecodeGetPDRRequest parses a GetPDR request body.
func DecodeGetPDRRequest(body []byte) (GetPDRRequest, error) {
	r := newReader(body)
	handle, err := r.u32()
	if err != nil {
		return GetPDRRequest{}, err
	}
	transferHandle, err := r.u32()
	if err != nil {
		return GetPDRRequest{}, err
	}
	opFlag, err := r.u8()
	if err != nil {
		return GetPDRRequest{}, err
	}
	count, err := r.u16()
	if err != nil {
		return GetPDRRequest{}, err
	}
	changeNum, err := r.u16()
	if err != nil {
		return GetPDRRequest{}, err
	}
	return GetPDRRequest{
		RecordHandle:       handle,
		DataTransferHandle: transferHandle,
		TransferOpFlag:     TransferOpFlag(opFlag),
		RequestCount:       count,
		RecordChangeNumber: changeNum,
	}, nil
}

// GetPDRResponse is the body of a GetPDR response. This responder always
// answers with PLDM_START_AND_END: the whole record in one response, up to
// RequestCount bytes.
type GetPDRResponse struct {
	CompletionCode     CompletionCode
	NextRecordHandle   uint32
	NextDataTransferHandle uint32
	TransferFlag       TransferFlag
	RecordData         []byte
}

// EncodeGetPDRResponse serializes resp after the PLDM header.
func EncodeGetPDRResponse(resp GetPDRResponse) []byte {
	w := &writer{}
	w.u8(uint8(resp.CompletionCode))
	if resp.CompletionCode != Success {
		return w.buf
	}
	w.u32(resp.NextRecordHandle)
	w.u32(resp.NextDataTransferHandle)
	w.u8(uint8(resp.TransferFlag))
	w.u32(uint32(len(resp.RecordData)))
	w.bytes(resp.RecordData)
	return w.buf
}

// DecodeGetPDRResponse parses a GetPDR response body.
func DecodeGetPDRResponse(body []byte) (GetPDRResponse, error) {
	r := newReader(body)
	cc, err := r.u8()
	if err != nil {
		return GetPDRResponse{}, err
	}
	resp := GetPDRResponse{CompletionCode: CompletionCode(cc)}
	if resp.CompletionCode != Success {
		return resp, nil
	}
	if resp.NextRecordHandle, err = r.u32(); err != nil {
		return GetPDRResponse{}, err
	}
	if resp.NextDataTransferHandle, err = r.u32(); err != nil {
		return GetPDRResponse{}, err
	}
	flag, err := r.u8()
	if err != nil {
		return GetPDRResponse{}, err
	}
	resp.TransferFlag = TransferFlag(flag)
	dataLen, err := r.u32()
	if err != nil {
		return GetPDRResponse{}, err
	}
	if resp.RecordData, err = r.bytes(int(dataLen)); err != nil {
		return GetPDRResponse{}, err
	}
	return resp, nil
}
