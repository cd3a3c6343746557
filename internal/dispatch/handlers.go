package dispatch

import (
	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/wire"
)

// Handler processes one PlatformEventMessage's EventData for the class it
// is registered against. A non-nil error aborts the remaining chain for
// that dispatch and is mapped to a completion code by the caller.
type Handler func(tid uint8, data []byte) error

// handleHeartbeat is the built-in HeartbeatTimerElapsed handler: it
// invokes the registered OEM watchdog-reset callback, if any, and always
// succeeds.
func (d *Dispatcher) handleHeartbeat(tid uint8, data []byte) error {
	if d.onHeartbeat != nil {
		d.onHeartbeat()
	}
	return nil
}

// handleSensorEvent is the built-in SensorEvent handler. It reads the
// shared (sensor id, sub-class) prefix, then decodes and validates
// according to the sub-class.
func (d *Dispatcher) handleSensorEvent(tid uint8, data []byte) error {
	if len(data) < 3 {
		return wire.ErrTruncated
	}
	class := wire.SensorEventClass(data[2])
	switch class {
	case wire.SensorEventStateSensorState:
		return d.handleStateSensorEvent(data)
	case wire.SensorEventNumericSensorState:
		return d.handleNumericSensorEvent(data)
	default:
		return wire.ErrInvalidData
	}
}

func (d *Dispatcher) handleStateSensorEvent(data []byte) error {
	evt, err := wire.DecodeStateSensorEventData(data)
	if err != nil {
		return err
	}
	sensor, ok := d.repo.LookupStateSensor(evt.SensorID)
	if !ok {
		return ErrUnknownSensor
	}
	if int(evt.SensorOffset) >= len(sensor.PossibleStates) {
		return ErrOffsetOutOfRange
	}
	if !containsState(sensor.PossibleStates[evt.SensorOffset], evt.EventState) {
		return ErrStateNotPossible
	}
	if d.onStateSensor != nil {
		d.onStateSensor(StateSensorSignal{
			ContainerID:    sensor.ContainerID,
			EntityType:     sensor.EntityType,
			EntityInstance: sensor.EntityInstance,
			SensorOffset:   evt.SensorOffset,
			EventState:     evt.EventState,
		})
	}
	return nil
}

func (d *Dispatcher) handleNumericSensorEvent(data []byte) error {
	evt, err := wire.DecodeNumericSensorEventData(data)
	if err != nil {
		return err
	}
	if d.onNumericSensor != nil {
		d.onNumericSensor(NumericSensorSignal{
			SensorID:       evt.SensorID,
			EventState:     evt.EventState,
			PresentReading: evt.PresentReading,
		})
	}
	return nil
}

func containsState(possible []uint8, state uint8) bool {
	for _, s := range possible {
		if s == state {
			return true
		}
	}
	return false
}

// handlePldmMessagePoll is the built-in PldmMessagePoll handler: it
// decodes the event and emits a poll signal for the Event Poller to
// observe.
func (d *Dispatcher) handlePldmMessagePoll(tid uint8, data []byte) error {
	evt, err := wire.DecodePollEventData(data)
	if err != nil {
		return err
	}
	if d.onPollEvent != nil {
		d.onPollEvent(PollEventSignal{
			FormatVersion:      evt.FormatVersion,
			EventID:            evt.EventID,
			DataTransferHandle: evt.DataTransferHandle,
		})
	}
	return nil
}

// handlePdrRepositoryChg is the built-in PdrRepositoryChg handler.
// FormatIsPdrTypes is rejected outright; FormatIsRefreshAllRecords drops
// every PDR carrying tid's terminus handle and asks for a full refetch;
// FormatIsPdrHandles accumulates every added/modified handle across the
// whole event and reports them in one batch, matching the original
// responder's single end-of-function fetch call rather than firing per
// handle.
func (d *Dispatcher) handlePdrRepositoryChg(tid uint8, data []byte) error {
	if len(data) > 0 && wire.PdrRepositoryChgEventDataFormat(data[0]) == wire.FormatIsPdrTypes {
		return ErrRejectedFormat
	}
	evt, err := wire.DecodePdrRepositoryChgEventData(data)
	if err != nil {
		return err
	}
	switch evt.EventDataFormat {
	case wire.FormatIsPdrTypes:
		return ErrRejectedFormat
	case wire.FormatIsRefreshAllRecords:
		if th, ok := tidToTerminusHandle(d.repo, tid); ok {
			d.repo.RemoveByTerminusHandle(th)
		}
		if d.onPdrRefresh != nil {
			d.onPdrRefresh(PdrRefreshSignal{Tid: tid})
		}
		return nil
	case wire.FormatIsPdrHandles:
		var added, modified []uint32
		for _, rec := range evt.ChangeRecords {
			switch rec.EventDataOperation {
			case wire.RecordsAdded:
				added = append(added, rec.ChangeEntries...)
			case wire.RecordsModified:
				modified = append(modified, rec.ChangeEntries...)
			}
		}
		if d.onPdrRefetch != nil && (len(added) > 0 || len(modified) > 0) {
			d.onPdrRefetch(PdrRefetchSignal{AddedHandles: added, ModifiedHandles: modified})
		}
		return nil
	default:
		return wire.ErrInvalidData
	}
}

// tidToTerminusHandle resolves a terminus id to its terminus handle via
// the seeded TerminusLocatorPDR. There is exactly one per responder
// instance in the current scope, so this is a short linear scan rather
// than an index.
func tidToTerminusHandle(repo *pdr.Repository, tid uint8) (uint16, bool) {
	for _, rec := range repo.Records() {
		if rec.Type != pdr.TypeTerminusLocator {
			continue
		}
		p, err := pdr.DecodeTerminusLocatorPDR(rec.Payload)
		if err == nil && p.TerminusID == tid {
			return p.TerminusHandle, true
		}
	}
	return 0, false
}
