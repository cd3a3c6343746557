package wire

// TransferFlag delimits a multi-part payload returned by
// PollForPlatformEventMessage.
type TransferFlag uint8

const (
	TransferStart        TransferFlag = 0x01
	TransferMiddle       TransferFlag = 0x02
	TransferEnd          TransferFlag = 0x04
	TransferStartAndEnd  TransferFlag = 0x05
)

// TransferOpFlag selects what a PollForPlatformEventMessage request is
// asking the terminus for.
type TransferOpFlag uint8

const (
	OpGetFirstPart       TransferOpFlag = 0x00
	OpGetNextPart        TransferOpFlag = 0x01
	OpAcknowledgementOnly TransferOpFlag = 0xFF
)

// EventClass identifies the kind of platform event carried by a
// PlatformEventMessage or reassembled by the poller.
type EventClass uint8

const (
	EventClassHeartbeatTimerElapsed EventClass = 0x00
	EventClassSensorEvent           EventClass = 0x01
	EventClassPldmMessagePoll       EventClass = 0x0A
	EventClassPdrRepositoryChg      EventClass = 0x04
)

// SensorEventClass distinguishes the two SensorEvent sub-cases.
type SensorEventClass uint8

const (
	SensorEventStateSensorState   SensorEventClass = 0x00
	SensorEventNumericSensorState SensorEventClass = 0x01
)

// PdrRepositoryChgEventDataFormat selects how a PdrRepositoryChg event's
// change records are encoded.
type PdrRepositoryChgEventDataFormat uint8

const (
	FormatIsPdrTypes         PdrRepositoryChgEventDataFormat = 0x00
	FormatIsPdrHandles       PdrRepositoryChgEventDataFormat = 0x01
	FormatIsRefreshAllRecords PdrRepositoryChgEventDataFormat = 0xFF
)

// PdrRepositoryChgEventClass distinguishes RecordsAdded / RecordsModified
// change records within a FormatIsPdrHandles payload.
type PdrRepositoryChgEventClass uint8

const (
	RecordsAdded    PdrRepositoryChgEventClass = 0x00
	RecordsModified PdrRepositoryChgEventClass = 0x01
)

// Reserved Event ID sentinels: NoEvent must never be reassembled or
// dispatched; TerminatePolling tells the poller to stop.
const (
	EventIDNone             uint16 = 0x0000
	EventIDTerminatePolling uint16 = 0xFFFF
)

// TIDReserved is the fallback terminus id used when a sensor id cannot be
// resolved against a specific terminus.
const TIDReserved uint8 = 0xFF

// PLDM type and command codes this responder handles.
const (
	PLDMTypePlatform uint8 = 0x02

	CmdPollForPlatformEventMessage uint8 = 0x0A
	CmdPlatformEventMessage        uint8 = 0x0C
	CmdGetPDR                      uint8 = 0x51
)
