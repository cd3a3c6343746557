// Package eventpoller implements the per-EID platform event poller: two
// periodic triggers that discover events to poll, a pollForPlatformEventMessage
// request/response cycle with multi-part reassembly, and delivery of
// completed events to the platform event dispatcher.
package eventpoller

import (
	"context"
	"hash/crc32"
	"math/rand"
	"sync"
	"time"

	logs "github.com/danmuck/smplog"

	"github.com/danmuck/pldmd/internal/correlator"
	"github.com/danmuck/pldmd/internal/dispatch"
	"github.com/danmuck/pldmd/internal/observability"
	"github.com/danmuck/pldmd/internal/wire"
)

// Config carries the four timers and retry/queue tunables this poller
// reads from internal/config.Tunables.
type Config struct {
	NormalTimer            time.Duration
	CriticalTimer          time.Duration
	PollReqTimer           time.Duration
	NumberOfRequestRetries int
	ResponseTimeOut        time.Duration
	MaxQueueSize           int
}

func (c Config) timeoutDuration() time.Duration {
	return time.Duration(c.NumberOfRequestRetries+1) * c.ResponseTimeOut
}

// Poller runs the state machine for a single EID. All state mutation
// happens on the goroutine running Run, matching the single-threaded
// cooperative event loop the domain core is specified to use; EnqueueCritical
// and DeliverResponse are the only entry points meant to be called from
// other goroutines, and they hand off through a mutex or channel rather
// than touching poller state directly.
type Poller struct {
	eid        uint8
	cfg        Config
	corr       *correlator.Correlator
	transport  correlator.Transport
	dispatcher *dispatch.Dispatcher

	queue *CriticalQueue

	mu sync.Mutex // guards the fields below; held only briefly by Run's goroutine and by State()/reset() readers.

	state             State
	isProcessPolling  bool
	isPolling         bool
	isCritical        bool
	responseReceived  bool

	reqOperationFlag      wire.TransferOpFlag
	reqDataTransferHandle uint32
	reqEventIDToAck       uint16

	recvEventClass wire.EventClass
	recvTid        uint8
	recvData       []byte
	recvTotalSize  int

	instanceID       uint8
	retriesLeft      int
	lastRequestBytes []byte

	responses    chan []byte
	pollReqTimer *time.Timer
	timeoutTimer *time.Timer
	retryTimer   *time.Timer
}

// New builds a poller for eid. dispatcher receives completed, checksum-valid
// events.
func New(eid uint8, cfg Config, corr *correlator.Correlator, transport correlator.Transport, dispatcher *dispatch.Dispatcher) *Poller {
	p := &Poller{
		eid:          eid,
		cfg:          cfg,
		corr:         corr,
		transport:    transport,
		dispatcher:   dispatcher,
		queue:        NewCriticalQueue(cfg.MaxQueueSize),
		state:        StateIdle,
		responses:    make(chan []byte, 1),
		pollReqTimer: newStoppedTimer(),
		timeoutTimer: newStoppedTimer(),
		retryTimer:   newStoppedTimer(),
	}
	return p
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// State reports the poller's current coarse phase.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// EnqueueCritical admits eventID to the critical queue. Safe to call from
// any goroutine; the queue has its own internal lock.
func (p *Poller) EnqueueCritical(eventID uint16) error {
	return p.queue.Enqueue(eventID)
}

// DeliverResponse hands a raw pollForPlatformEventMessage response body to
// the poller's loop. Safe to call from any goroutine (typically the
// transport's receive path); it never blocks the caller for long since
// the channel is buffered.
func (p *Poller) DeliverResponse(payload []byte) {
	select {
	case p.responses <- payload:
	default:
		logs.Errf("eventpoller: eid=%d dropped response, loop not draining", p.eid)
	}
}

// Run drives the state machine until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	normalTicker := time.NewTicker(p.cfg.NormalTimer)
	defer normalTicker.Stop()
	criticalTicker := time.NewTicker(p.cfg.CriticalTimer)
	defer criticalTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-normalTicker.C:
			p.normalTick()
		case <-criticalTicker.C:
			p.criticalTick()
		case <-p.pollReqTimer.C:
			p.issuePollRequest()
		case <-p.timeoutTimer.C:
			p.handleTimeout()
		case <-p.retryTimer.C:
			p.handleRetry()
		case payload := <-p.responses:
			p.handleResponse(payload)
		}
	}
}

// normalTick is the normal_timer callback: Idle -> Polling using the
// 0x0000 probe event id, unless a transfer or critical cycle is already
// running.
func (p *Poller) normalTick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isProcessPolling || p.isCritical {
		return
	}
	p.reqOperationFlag = wire.OpGetFirstPart
	p.reqDataTransferHandle = 0
	p.reqEventIDToAck = wire.EventIDNone
	p.schedulePollReqLocked(0)
}

// criticalTick is the critical_timer callback: Idle -> Polling using the
// head of the critical queue, deferring while a transfer is underway.
func (p *Poller) criticalTick() {
	p.mu.Lock()
	if p.isProcessPolling {
		p.mu.Unlock()
		return
	}
	eventID, ok := p.queue.Dequeue()
	if !ok {
		p.isCritical = false
		p.mu.Unlock()
		return
	}
	p.isCritical = true
	p.reqOperationFlag = wire.OpGetFirstPart
	p.reqDataTransferHandle = uint32(eventID)
	p.reqEventIDToAck = eventID
	p.schedulePollReqLocked(0)
	p.mu.Unlock()
}

func (p *Poller) schedulePollReqLocked(after time.Duration) {
	if !p.pollReqTimer.Stop() {
		select {
		case <-p.pollReqTimer.C:
		default:
		}
	}
	p.pollReqTimer.Reset(after)
}

// issuePollRequest is the poll_request_timer callback: build and send the
// next pollForPlatformEventMessage request (first part, next part, or the
// closing acknowledgement), matching the current reqData fields.
func (p *Poller) issuePollRequest() {
	p.mu.Lock()
	if p.isPolling {
		p.mu.Unlock()
		return
	}
	if p.reqEventIDToAck == wire.EventIDTerminatePolling {
		p.mu.Unlock()
		return
	}

	instanceID, err := p.corr.GetInstanceID(p.eid)
	if err != nil {
		logs.Errf("eventpoller: eid=%d get instance id: %v", p.eid, err)
		p.mu.Unlock()
		return
	}

	header := wire.EncodeHeader(wire.Header{
		Request:    true,
		InstanceID: instanceID,
		PLDMType:   wire.PLDMTypePlatform,
		Command:    wire.CmdPollForPlatformEventMessage,
	})
	body := wire.EncodePollEventRequest(wire.PollEventRequest{
		FormatVersion:      1,
		TransferOpFlag:     p.reqOperationFlag,
		DataTransferHandle: p.reqDataTransferHandle,
		EventIDToAck:       p.reqEventIDToAck,
	})
	requestBytes := append(header, body...)

	err = p.corr.RegisterRequest(p.eid, instanceID, requestBytes, p.transport, p.DeliverResponse)
	if err != nil {
		logs.Errf("eventpoller: eid=%d send poll request: %v", p.eid, err)
		p.corr.MarkFree(p.eid, instanceID)
		p.mu.Unlock()
		return
	}

	p.instanceID = instanceID
	p.isProcessPolling = true
	p.isPolling = true
	p.responseReceived = false
	p.state = StatePolling
	p.retriesLeft = p.cfg.NumberOfRequestRetries
	p.lastRequestBytes = requestBytes

	p.timeoutTimer.Reset(p.cfg.timeoutDuration())
	p.scheduleRetryLocked()

	queueLabel := "normal"
	if p.isCritical {
		queueLabel = "critical"
	}
	p.mu.Unlock()
	observability.RecordPollRequest(p.eid, queueLabel)
}

// scheduleRetryLocked arms the retry timer with a jittered spacing within
// the single timeout window, so a request lost to noisy transport gets a
// second chance before the whole cycle is abandoned.
func (p *Poller) scheduleRetryLocked() {
	if p.retriesLeft <= 0 {
		return
	}
	if !p.retryTimer.Stop() {
		select {
		case <-p.retryTimer.C:
		default:
		}
	}
	p.retryTimer.Reset(jitter(p.cfg.ResponseTimeOut))
}

// jitter returns d scaled by a uniformly random factor in [0.8, 1.2), so
// concurrent EIDs retrying at the same nominal interval don't all
// retransmit in lockstep.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	factor := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(d) * factor)
}

func (p *Poller) handleRetry() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.responseReceived || p.retriesLeft <= 0 {
		return
	}
	p.retriesLeft--
	logs.Infof("eventpoller: eid=%d retrying poll request, %d retries left", p.eid, p.retriesLeft)
	if err := p.transport.Send(p.eid, p.lastRequestBytes); err != nil {
		logs.Errf("eventpoller: eid=%d retry send failed: %v", p.eid, err)
		return
	}
	p.scheduleRetryLocked()
}

// handleTimeout is the poll_timeout_timer callback: abandon the transfer
// if no response arrived within (retries+1) * ResponseTimeOut.
func (p *Poller) handleTimeout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.responseReceived || !p.isPolling {
		return
	}
	logs.Errf("eventpoller: eid=%d poll timed out, dropping event_id=%#x", p.eid, p.reqEventIDToAck)
	observability.RecordPollTimeout(p.eid)
	p.resetLocked()
}

// handleResponse is the response-processing callback: decode, validate
// against the sentinel/mismatch rules, reassemble by transfer flag, and
// on a completed transfer invoke the dispatcher and schedule the closing
// acknowledgement.
func (p *Poller) handleResponse(payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.responseReceived = true
	p.isPolling = false
	p.timeoutTimer.Stop()
	p.retryTimer.Stop()
	p.corr.MarkFree(p.eid, p.instanceID)

	resp, err := wire.DecodePollEventResponse(payload)
	if err != nil {
		logs.Errf("eventpoller: eid=%d decode poll response: %v", p.eid, err)
		p.resetLocked()
		return
	}
	if resp.CompletionCode != wire.Success {
		logs.Errf("eventpoller: eid=%d poll response completion code=%v", p.eid, resp.CompletionCode)
		p.resetLocked()
		return
	}

	if resp.EventID == wire.EventIDNone || resp.EventID == wire.EventIDTerminatePolling {
		p.state = StateTerminated
		p.resetLocked()
		return
	}
	if p.reqEventIDToAck != 0 && resp.EventID != p.reqEventIDToAck {
		logs.Errf("eventpoller: eid=%d event id mismatch got=%#x want=%#x", p.eid, resp.EventID, p.reqEventIDToAck)
		p.state = StateTerminated
		p.resetLocked()
		return
	}

	switch resp.TransferFlag {
	case wire.TransferStart:
		p.recvData = append([]byte(nil), resp.EventData...)
		p.recvTotalSize = len(resp.EventData)
		p.recvEventClass = resp.EventClass
		p.recvTid = resp.Tid
		p.reqOperationFlag = wire.OpGetNextPart
		p.reqDataTransferHandle = resp.NextDataTransferHandle
		p.reqEventIDToAck = resp.EventID
		p.state = StateReassembling
		p.schedulePollReqLocked(p.cfg.PollReqTimer)

	case wire.TransferMiddle:
		if resp.NextDataTransferHandle <= p.reqDataTransferHandle {
			logs.Errf("eventpoller: eid=%d non-monotonic data transfer handle got=%d after=%d", p.eid, resp.NextDataTransferHandle, p.reqDataTransferHandle)
			p.state = StateTerminated
			p.resetLocked()
			return
		}
		p.insertAt(int(p.reqDataTransferHandle), resp.EventData)
		p.recvTotalSize += len(resp.EventData)
		p.reqOperationFlag = wire.OpGetNextPart
		p.reqDataTransferHandle = resp.NextDataTransferHandle
		p.reqEventIDToAck = resp.EventID
		p.state = StateReassembling
		p.schedulePollReqLocked(p.cfg.PollReqTimer)

	case wire.TransferEnd, wire.TransferStartAndEnd:
		if resp.TransferFlag == wire.TransferStartAndEnd {
			p.recvData = append([]byte(nil), resp.EventData...)
			p.recvTotalSize = len(resp.EventData)
			p.recvEventClass = resp.EventClass
			p.recvTid = resp.Tid
		} else {
			p.insertAt(int(p.reqDataTransferHandle), resp.EventData)
			p.recvTotalSize += len(resp.EventData)
		}

		checksumOK := true
		if resp.TransferFlag == wire.TransferEnd {
			checksum := crc32.ChecksumIEEE(p.recvData)
			checksumOK = checksum == resp.Checksum
			if !checksumOK {
				logs.Errf("eventpoller: eid=%d checksum mismatch event_id=%#x", p.eid, resp.EventID)
				observability.RecordChecksumMismatch(p.eid)
			}
		}
		if checksumOK {
			cc := p.dispatcher.Dispatch(wire.PlatformEventMessageRequest{
				FormatVersion: 1,
				Tid:           p.recvTid,
				EventClass:    p.recvEventClass,
				EventData:     p.recvData,
			})
			if cc != wire.Success {
				logs.Errf("eventpoller: eid=%d dispatch returned completion code=%v", p.eid, cc)
			}
		}

		p.reqOperationFlag = wire.OpAcknowledgementOnly
		p.reqDataTransferHandle = 0
		p.reqEventIDToAck = resp.EventID
		p.state = StateIdle
		p.schedulePollReqLocked(p.cfg.PollReqTimer)

	default:
		logs.Errf("eventpoller: eid=%d unknown transfer flag=%#x", p.eid, resp.TransferFlag)
		p.state = StateTerminated
		p.resetLocked()
	}
}

// insertAt places chunk into recvData at offset, growing recvData as
// needed. This is a positional insert, not an append: MIDDLE and END
// parts land at the cursor the previous response handed back, per the
// reassembly contract.
func (p *Poller) insertAt(offset int, chunk []byte) {
	end := offset + len(chunk)
	if end > len(p.recvData) {
		grown := make([]byte, end)
		copy(grown, p.recvData)
		p.recvData = grown
	}
	copy(p.recvData[offset:end], chunk)
}

// reset clears all per-transfer state and returns the poller to Idle. It
// is mandatory on timeout, decode failure, sentinel event id, or event id
// mismatch.
func (p *Poller) resetLocked() {
	p.isProcessPolling = false
	p.isPolling = false
	p.isCritical = false
	p.responseReceived = false
	p.reqOperationFlag = 0
	p.reqDataTransferHandle = 0
	p.reqEventIDToAck = 0
	p.recvEventClass = 0
	p.recvData = nil
	p.recvTotalSize = 0
	p.retriesLeft = 0
	p.lastRequestBytes = nil
	p.state = StateIdle
	p.corr.MarkFree(p.eid, p.instanceID)
	p.pollReqTimer.Stop()
	p.timeoutTimer.Stop()
	p.retryTimer.Stop()
}

// Reset is the exported form of resetLocked, for callers driving the
// poller directly in tests without a running Run loop.
func (p *Poller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}
