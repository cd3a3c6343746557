// Package dispatch implements the platform event dispatcher: on receipt
// of a PlatformEventMessage, decode by event class and run that class's
// ordered handler chain, aborting on the first failure.
package dispatch

import (
	"sync"

	logs "github.com/danmuck/smplog"

	"github.com/danmuck/pldmd/internal/observability"
	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/wire"
)

// Dispatcher routes PlatformEventMessage payloads by EventClass to an
// ordered handler chain. The four built-in classes each install their
// own handler first; callers may append further handlers (for example,
// an OEM sensor-event chain) with RegisterHandler.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[wire.EventClass][]Handler
	repo     *pdr.Repository

	onStateSensor   func(StateSensorSignal)
	onNumericSensor func(NumericSensorSignal)
	onPollEvent     func(PollEventSignal)
	onPdrRefetch    func(PdrRefetchSignal)
	onPdrRefresh    func(PdrRefreshSignal)
	onHeartbeat     func()
}

// New builds a dispatcher over repo with the four built-in event-class
// handlers installed.
func New(repo *pdr.Repository) *Dispatcher {
	d := &Dispatcher{
		repo:     repo,
		handlers: make(map[wire.EventClass][]Handler),
	}
	d.handlers[wire.EventClassHeartbeatTimerElapsed] = []Handler{d.handleHeartbeat}
	d.handlers[wire.EventClassSensorEvent] = []Handler{d.handleSensorEvent}
	d.handlers[wire.EventClassPldmMessagePoll] = []Handler{d.handlePldmMessagePoll}
	d.handlers[wire.EventClassPdrRepositoryChg] = []Handler{d.handlePdrRepositoryChg}
	return d
}

// RegisterHandler appends h to class's handler chain, running after
// whatever is already registered (including the built-in handler for
// that class, if any).
func (d *Dispatcher) RegisterHandler(class wire.EventClass, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[class] = append(d.handlers[class], h)
}

// OnStateSensor registers the callback invoked when a StateSensorState
// SensorEvent passes validation.
func (d *Dispatcher) OnStateSensor(cb func(StateSensorSignal)) { d.onStateSensor = cb }

// OnNumericSensor registers the callback invoked for a NumericSensorState
// SensorEvent.
func (d *Dispatcher) OnNumericSensor(cb func(NumericSensorSignal)) { d.onNumericSensor = cb }

// OnPollEvent registers the callback invoked with each decoded
// PldmMessagePoll event. No poller in this module registers one, so a
// PldmMessagePoll event does not queue anything for polling.
func (d *Dispatcher) OnPollEvent(cb func(PollEventSignal)) { d.onPollEvent = cb }

// OnPdrRefetch registers the callback invoked once per PdrRepositoryChg
// dispatch with every added/modified handle batched together.
func (d *Dispatcher) OnPdrRefetch(cb func(PdrRefetchSignal)) { d.onPdrRefetch = cb }

// OnPdrRefresh registers the callback invoked when a terminus asks for a
// full PDR refetch.
func (d *Dispatcher) OnPdrRefresh(cb func(PdrRefreshSignal)) { d.onPdrRefresh = cb }

// OnHeartbeat registers the OEM watchdog-reset callback.
func (d *Dispatcher) OnHeartbeat(cb func()) { d.onHeartbeat = cb }

// Dispatch decodes a PlatformEventMessage body and runs its class's
// handler chain in order, stopping at the first handler that returns an
// error. Unknown classes fail with InvalidData without running anything.
func (d *Dispatcher) Dispatch(req wire.PlatformEventMessageRequest) wire.CompletionCode {
	d.mu.Lock()
	chain, ok := d.handlers[req.EventClass]
	d.mu.Unlock()

	if !ok || len(chain) == 0 {
		logs.Errf("dispatch: unknown event class=%d tid=%d", req.EventClass, req.Tid)
		observability.RecordEventDispatched(uint8(req.EventClass), "unknown_class")
		return wire.CCErrorInvalidData
	}

	for _, h := range chain {
		if err := h(req.Tid, req.EventData); err != nil {
			logs.Errf("dispatch: class=%d tid=%d handler failed: %v", req.EventClass, req.Tid, err)
			observability.RecordEventDispatched(uint8(req.EventClass), "error")
			return wire.CompletionCodeFor(err)
		}
	}
	observability.RecordEventDispatched(uint8(req.EventClass), "success")
	return wire.Success
}
