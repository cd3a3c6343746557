package wire

// PlatformEventMessageRequest is the body of a PlatformEventMessage
// request, the message the dispatcher decodes and routes by EventClass.
type PlatformEventMessageRequest struct {
	FormatVersion uint8
	Tid           uint8
	EventClass    EventClass
	EventData     []byte
}

// EncodePlatformEventMessageRequest serializes req after the PLDM header.
func EncodePlatformEventMessageRequest(req PlatformEventMessageRequest) []byte {
	w := &writer{}
	w.u8(req.FormatVersion)
	w.u8(req.Tid)
	w.u8(uint8(req.EventClass))
	w.bytes(req.EventData)
	return w.buf
}

// DecodePlatformEventMessageRequest parses a PlatformEventMessage request
// body. EventData is whatever remains after the fixed prefix; its shape
// depends on EventClass and is decoded further by the dispatcher's
// sub-decoders.
func DecodePlatformEventMessageRequest(body []byte) (PlatformEventMessageRequest, error) {
	r := newReader(body)
	formatVersion, err := r.u8()
	if err != nil {
		return PlatformEventMessageRequest{}, err
	}
	tid, err := r.u8()
	if err != nil {
		return PlatformEventMessageRequest{}, err
	}
	class, err := r.u8()
	if err != nil {
		return PlatformEventMessageRequest{}, err
	}
	return PlatformEventMessageRequest{
		FormatVersion: formatVersion,
		Tid:           tid,
		EventClass:    EventClass(class),
		EventData:     r.rest(),
	}, nil
}

// PlatformEventMessageResponse is the body of a PlatformEventMessage
// response: a completion code and nothing else, per the responder's
// propagation policy of never carrying a payload beyond the header.
type PlatformEventMessageResponse struct {
	CompletionCode CompletionCode
}

// EncodePlatformEventMessageResponse serializes resp after the PLDM header.
func EncodePlatformEventMessageResponse(resp PlatformEventMessageResponse) []byte {
	return []byte{uint8(resp.CompletionCode)}
}

// StateSensorEventData is the EventData payload of a SensorEvent whose
// SensorEventClass is StateSensorState.
type StateSensorEventData struct {
	SensorID          uint16
	SensorEventClass  SensorEventClass
	SensorOffset      uint8
	EventState        uint8
	PreviousEventState uint8
}

// DecodeStateSensorEventData parses the SensorEvent payload for the
// StateSensorState sub-case.
func DecodeStateSensorEventData(data []byte) (StateSensorEventData, error) {
	r := newReader(data)
	sensorID, err := r.u16()
	if err != nil {
		return StateSensorEventData{}, err
	}
	class, err := r.u8()
	if err != nil {
		return StateSensorEventData{}, err
	}
	offset, err := r.u8()
	if err != nil {
		return StateSensorEventData{}, err
	}
	state, err := r.u8()
	if err != nil {
		return StateSensorEventData{}, err
	}
	prev, err := r.u8()
	if err != nil {
		return StateSensorEventData{}, err
	}
	return StateSensorEventData{
		SensorID:           sensorID,
		SensorEventClass:   SensorEventClass(class),
		SensorOffset:       offset,
		EventState:         state,
		PreviousEventState: prev,
	}, nil
}

// NumericSensorEventData is the EventData payload of a SensorEvent whose
// SensorEventClass is NumericSensorState.
type NumericSensorEventData struct {
	SensorID          uint16
	SensorEventClass  SensorEventClass
	EventState        uint8
	PreviousEventState uint8
	SensorDataSize    uint8
	PresentReading    []byte
}

// DecodeNumericSensorEventData parses the SensorEvent payload for the
// NumericSensorState sub-case.
func DecodeNumericSensorEventData(data []byte) (NumericSensorEventData, error) {
	r := newReader(data)
	sensorID, err := r.u16()
	if err != nil {
		return NumericSensorEventData{}, err
	}
	class, err := r.u8()
	if err != nil {
		return NumericSensorEventData{}, err
	}
	state, err := r.u8()
	if err != nil {
		return NumericSensorEventData{}, err
	}
	prev, err := r.u8()
	if err != nil {
		return NumericSensorEventData{}, err
	}
	size, err := r.u8()
	if err != nil {
		return NumericSensorEventData{}, err
	}
	reading := r.rest()
	return NumericSensorEventData{
		SensorID:           sensorID,
		SensorEventClass:   SensorEventClass(class),
		EventState:         state,
		PreviousEventState: prev,
		SensorDataSize:     size,
		PresentReading:     reading,
	}, nil
}

// PollEventData is the EventData payload of a PldmMessagePoll event.
type PollEventData struct {
	FormatVersion      uint8
	EventID            uint16
	DataTransferHandle uint32
}

// DecodePollEventData parses a PldmMessagePoll event's payload.
func DecodePollEventData(data []byte) (PollEventData, error) {
	r := newReader(data)
	formatVersion, err := r.u8()
	if err != nil {
		return PollEventData{}, err
	}
	eventID, err := r.u16()
	if err != nil {
		return PollEventData{}, err
	}
	handle, err := r.u32()
	if err != nil {
		return PollEventData{}, err
	}
	return PollEventData{FormatVersion: formatVersion, EventID: eventID, DataTransferHandle: handle}, nil
}

// PdrChangeRecord is one change record within a PdrRepositoryChg event
// encoded with FormatIsPdrHandles.
type PdrChangeRecord struct {
	EventDataOperation PdrRepositoryChgEventClass
	NumberOfChangeEntries uint8
	ChangeEntries      []uint32
}

// PdrRepositoryChgEventData is the EventData payload of a PdrRepositoryChg
// event.
type PdrRepositoryChgEventData struct {
	EventDataFormat      PdrRepositoryChgEventDataFormat
	NumberOfChangeRecords uint8
	ChangeRecords        []PdrChangeRecord
}

// DecodePdrRepositoryChgEventData parses a PdrRepositoryChg event's
// payload. FormatIsPdrTypes callers should reject the event before
// calling this; it only decodes the FormatIsPdrHandles and
// FormatIsRefreshAllRecords shapes.
func DecodePdrRepositoryChgEventData(data []byte) (PdrRepositoryChgEventData, error) {
	r := newReader(data)
	format, err := r.u8()
	if err != nil {
		return PdrRepositoryChgEventData{}, err
	}
	out := PdrRepositoryChgEventData{EventDataFormat: PdrRepositoryChgEventDataFormat(format)}
	if out.EventDataFormat == FormatIsRefreshAllRecords {
		return out, nil
	}
	numRecords, err := r.u8()
	if err != nil {
		return PdrRepositoryChgEventData{}, err
	}
	out.NumberOfChangeRecords = numRecords
	for i := uint8(0); i < numRecords; i++ {
		op, err := r.u8()
		if err != nil {
			return PdrRepositoryChgEventData{}, err
		}
		numEntries, err := r.u8()
		if err != nil {
			return PdrRepositoryChgEventData{}, err
		}
		entries := make([]uint32, 0, numEntries)
		for j := uint8(0); j < numEntries; j++ {
			handle, err := r.u32()
			if err != nil {
				return PdrRepositoryChgEventData{}, err
			}
			entries = append(entries, handle)
		}
		out.ChangeRecords = append(out.ChangeRecords, PdrChangeRecord{
			EventDataOperation:    PdrRepositoryChgEventClass(op),
			NumberOfChangeEntries: numEntries,
			ChangeEntries:         entries,
		})
	}
	return out, nil
}
