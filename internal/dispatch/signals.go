package dispatch

// StateSensorSignal carries the fully resolved tuple a StateSensorState
// SensorEvent produces once its sensor_id (the tid is not consulted) has
// been matched against the PDR repository and its offset/state validated against the sensor's
// possible-states set.
type StateSensorSignal struct {
	ContainerID    uint16
	EntityType     uint16
	EntityInstance uint16
	SensorOffset   uint8
	EventState     uint8
}

// NumericSensorSignal carries a NumericSensorState SensorEvent's decoded
// reading, unvalidated: numeric readings have no possible-states set to
// check against.
type NumericSensorSignal struct {
	SensorID       uint16
	EventState     uint8
	PresentReading []byte
}

// PollEventSignal is what a PldmMessagePoll event resolves to; it is
// passed to the OnPollEvent callback, if one is registered. It carries no
// EID.
type PollEventSignal struct {
	FormatVersion      uint8
	EventID            uint16
	DataTransferHandle uint32
}

// PdrRefetchSignal batches every PDR handle the dispatcher has learned was
// added or modified across one PlatformEventMessage, so a single fetch
// call can retrieve them together rather than one round trip per handle.
type PdrRefetchSignal struct {
	AddedHandles    []uint32
	ModifiedHandles []uint32
}

// PdrRefreshSignal fires when a PdrRepositoryChg event asks for the
// terminus's PDRs to be dropped and refetched in full.
type PdrRefreshSignal struct {
	Tid uint8
}
