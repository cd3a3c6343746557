package dispatch

import (
	"testing"

	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/testutil/testlog"
	"github.com/danmuck/pldmd/internal/wire"
)

func encodeEvent(class wire.EventClass, data []byte) wire.PlatformEventMessageRequest {
	return wire.PlatformEventMessageRequest{FormatVersion: 1, Tid: 1, EventClass: class, EventData: data}
}

func TestDispatchHeartbeatInvokesCallback(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	d := New(repo)
	invoked := false
	d.OnHeartbeat(func() { invoked = true })

	cc := d.Dispatch(encodeEvent(wire.EventClassHeartbeatTimerElapsed, nil))
	if cc != wire.Success {
		t.Fatalf("expected success, got %v", cc)
	}
	if !invoked {
		t.Fatalf("expected heartbeat callback to run")
	}
}

func TestDispatchStateSensorEventValidatesAgainstPDR(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	repo.Add(pdr.TypeStateSensor, 1, pdr.EncodeStateSensorPDR(pdr.StateSensorPDR{
		SensorID:       10,
		EntityType:     64,
		EntityInstance: 1,
		ContainerID:    5,
		PossibleStates: [][]uint8{{0, 1, 2}},
	}))
	d := New(repo)

	var got StateSensorSignal
	d.OnStateSensor(func(s StateSensorSignal) { got = s })

	payload := encodeStateSensorEventData(t, wire.StateSensorEventData{
		SensorID:         10,
		SensorEventClass: wire.SensorEventStateSensorState,
		SensorOffset:     0,
		EventState:       1,
	})
	cc := d.Dispatch(encodeEvent(wire.EventClassSensorEvent, payload))
	if cc != wire.Success {
		t.Fatalf("expected success, got %v", cc)
	}
	if got.ContainerID != 5 || got.EventState != 1 {
		t.Fatalf("unexpected signal: %+v", got)
	}
}

func TestDispatchStateSensorEventRejectsImpossibleState(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	repo.Add(pdr.TypeStateSensor, 1, pdr.EncodeStateSensorPDR(pdr.StateSensorPDR{
		SensorID:       11,
		PossibleStates: [][]uint8{{0, 1}},
	}))
	d := New(repo)

	payload := encodeStateSensorEventData(t, wire.StateSensorEventData{SensorID: 11, SensorOffset: 0, EventState: 9})
	cc := d.Dispatch(encodeEvent(wire.EventClassSensorEvent, payload))
	if cc == wire.Success {
		t.Fatalf("expected failure for an impossible event state")
	}
}

func TestDispatchStateSensorEventUnknownSensorFails(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	d := New(repo)
	payload := encodeStateSensorEventData(t, wire.StateSensorEventData{SensorID: 999, SensorOffset: 0, EventState: 0})
	cc := d.Dispatch(encodeEvent(wire.EventClassSensorEvent, payload))
	if cc == wire.Success {
		t.Fatalf("expected failure for an unrecognized sensor id")
	}
}

func TestDispatchPldmMessagePollEmitsSignal(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	d := New(repo)
	var got PollEventSignal
	d.OnPollEvent(func(s PollEventSignal) { got = s })

	payload := encodePollEventData(t, wire.PollEventData{FormatVersion: 1, EventID: 7, DataTransferHandle: 42})
	cc := d.Dispatch(encodeEvent(wire.EventClassPldmMessagePoll, payload))
	if cc != wire.Success {
		t.Fatalf("expected success, got %v", cc)
	}
	if got.EventID != 7 || got.DataTransferHandle != 42 {
		t.Fatalf("unexpected signal: %+v", got)
	}
}

func TestDispatchPdrRepositoryChgRejectsPdrTypesFormat(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	d := New(repo)
	cc := d.Dispatch(encodeEvent(wire.EventClassPdrRepositoryChg, []byte{byte(wire.FormatIsPdrTypes)}))
	if cc == wire.Success {
		t.Fatalf("expected FormatIsPdrTypes to be rejected")
	}
}

func TestDispatchPdrRepositoryChgBatchesHandlesInOneCallback(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	d := New(repo)
	var got PdrRefetchSignal
	calls := 0
	d.OnPdrRefetch(func(s PdrRefetchSignal) { got = s; calls++ })

	payload := encodePdrHandlesEvent(t, []wire.PdrChangeRecord{
		{EventDataOperation: wire.RecordsAdded, ChangeEntries: []uint32{1, 2}},
		{EventDataOperation: wire.RecordsModified, ChangeEntries: []uint32{3}},
	})
	cc := d.Dispatch(encodeEvent(wire.EventClassPdrRepositoryChg, payload))
	if cc != wire.Success {
		t.Fatalf("expected success, got %v", cc)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one batched callback, got %d", calls)
	}
	if len(got.AddedHandles) != 2 || len(got.ModifiedHandles) != 1 {
		t.Fatalf("unexpected batch: %+v", got)
	}
}

func TestDispatchUnknownClassFails(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	d := New(repo)
	cc := d.Dispatch(encodeEvent(wire.EventClass(0xEE), nil))
	if cc != wire.CCErrorInvalidData {
		t.Fatalf("expected CCErrorInvalidData, got %v", cc)
	}
}

// -- local encode helpers mirroring internal/wire's private writer, kept
// test-local since the sub-payload encoders have no production caller
// (the terminus that emits these events is out of process scope).

func encodeStateSensorEventData(t *testing.T, e wire.StateSensorEventData) []byte {
	t.Helper()
	buf := []byte{
		byte(e.SensorID), byte(e.SensorID >> 8),
		byte(e.SensorEventClass),
		e.SensorOffset,
		e.EventState,
		e.PreviousEventState,
	}
	return buf
}

func encodePollEventData(t *testing.T, e wire.PollEventData) []byte {
	t.Helper()
	return []byte{
		e.FormatVersion,
		byte(e.EventID), byte(e.EventID >> 8),
		byte(e.DataTransferHandle), byte(e.DataTransferHandle >> 8), byte(e.DataTransferHandle >> 16), byte(e.DataTransferHandle >> 24),
	}
}

func encodePdrHandlesEvent(t *testing.T, records []wire.PdrChangeRecord) []byte {
	t.Helper()
	buf := []byte{byte(wire.FormatIsPdrHandles), byte(len(records))}
	for _, rec := range records {
		buf = append(buf, byte(rec.EventDataOperation), byte(len(rec.ChangeEntries)))
		for _, h := range rec.ChangeEntries {
			buf = append(buf, byte(h), byte(h>>8), byte(h>>16), byte(h>>24))
		}
	}
	return buf
}
