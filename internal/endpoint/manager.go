package endpoint

import (
	"context"
	"fmt"
	"sync"

	logs "github.com/danmuck/smplog"

	"github.com/danmuck/pldmd/internal/correlator"
	"github.com/danmuck/pldmd/internal/dispatch"
	"github.com/danmuck/pldmd/internal/eventpoller"
	"github.com/danmuck/pldmd/internal/responder"
	"github.com/danmuck/pldmd/internal/wire"
)

type managedPoller struct {
	poller *eventpoller.Poller
	cancel context.CancelFunc
}

// Manager owns the set of live per-EID pollers, starting one when an
// endpoint is discovered and stopping it when the endpoint disappears.
// All EIDs share one Correlator (already keyed per-EID internally) and
// one Dispatcher, matching the responder's single terminus-facing
// dispatch table.
type Manager struct {
	watcher    Watcher
	corr       *correlator.Correlator
	transport  correlator.Transport
	dispatcher *dispatch.Dispatcher
	responder  *responder.Responder
	cfg        eventpoller.Config

	mu      sync.Mutex
	pollers map[uint8]*managedPoller
}

// New builds a Manager. cfg is applied identically to every poller it
// starts. resp answers inbound command requests (GetPDR); it may be nil,
// in which case every inbound request gets a CCErrorUnsupportedPldmCmd
// response.
func New(watcher Watcher, corr *correlator.Correlator, transport correlator.Transport, dispatcher *dispatch.Dispatcher, resp *responder.Responder, cfg eventpoller.Config) *Manager {
	return &Manager{
		watcher:    watcher,
		corr:       corr,
		transport:  transport,
		dispatcher: dispatcher,
		responder:  resp,
		cfg:        cfg,
		pollers:    make(map[uint8]*managedPoller),
	}
}

// Run consumes watcher events until ctx is cancelled, starting and
// stopping pollers as endpoints come and go. It returns once the watcher
// channel closes or ctx is done.
func (m *Manager) Run(ctx context.Context) {
	defer m.stopAll()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-m.watcher.Events():
			if !ok {
				return
			}
			if ev.MctpType != MctpTypePLDM {
				logs.Debugf("endpoint: ignoring eid=%d mctp_type=%d", ev.EID, ev.MctpType)
				continue
			}
			switch ev.Kind {
			case Added:
				m.addEndpoint(ctx, ev.EID)
			case Removed:
				m.removeEndpoint(ev.EID)
			}
		}
	}
}

func (m *Manager) addEndpoint(ctx context.Context, eid uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.pollers[eid]; exists {
		logs.Warnf("endpoint: eid=%d already has a poller, ignoring duplicate discovery", eid)
		return
	}
	pollerCtx, cancel := context.WithCancel(ctx)
	p := eventpoller.New(eid, m.cfg, m.corr, m.transport, m.dispatcher)
	m.pollers[eid] = &managedPoller{poller: p, cancel: cancel}
	logs.Infof("endpoint: starting poller eid=%d", eid)
	go p.Run(pollerCtx)
}

func (m *Manager) removeEndpoint(eid uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mp, exists := m.pollers[eid]
	if !exists {
		return
	}
	logs.Infof("endpoint: stopping poller eid=%d", eid)
	mp.cancel()
	delete(m.pollers, eid)
}

func (m *Manager) stopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for eid, mp := range m.pollers {
		mp.cancel()
		delete(m.pollers, eid)
	}
}

// PollerFor returns the live poller for eid, if any.
func (m *Manager) PollerFor(eid uint8) (*eventpoller.Poller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mp, ok := m.pollers[eid]
	if !ok {
		return nil, false
	}
	return mp.poller, true
}

// EndpointCount reports the number of endpoints currently owning a poller.
func (m *Manager) EndpointCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pollers)
}

// EIDs returns the EIDs currently owning a poller, for admin-surface
// reporting.
func (m *Manager) EIDs() []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	eids := make([]uint8, 0, len(m.pollers))
	for eid := range m.pollers {
		eids = append(eids, eid)
	}
	return eids
}

// HandleInbound routes a raw PLDM message received from eid. Responses
// go to the matching poller through the correlator; requests go to the
// Responder, whose reply is sent straight back out over transport. This
// is the one place a transport's receive path needs to call into this
// package.
func (m *Manager) HandleInbound(eid uint8, raw []byte) error {
	header, err := wire.DecodeHeader(raw)
	if err != nil {
		return err
	}
	if header.PLDMType != wire.PLDMTypePlatform {
		return fmt.Errorf("%w: eid=%d type=%d", ErrWrongPLDMType, eid, header.PLDMType)
	}
	body := raw[wire.HeaderLen:]

	if header.Request {
		return m.handleRequest(eid, header, body)
	}

	if err := m.corr.Deliver(eid, header.InstanceID, body); err != nil {
		logs.Debugf("endpoint: eid=%d iid=%d %v", eid, header.InstanceID, err)
		return err
	}
	return nil
}

func (m *Manager) handleRequest(eid uint8, header wire.Header, body []byte) error {
	var respBody []byte
	if m.responder != nil {
		respBody = m.responder.Handle(header.Command, body)
	} else {
		respBody = []byte{uint8(wire.CCErrorUnsupportedPldmCmd)}
	}

	msg := append(wire.EncodeHeader(wire.ResponseHeader(header)), respBody...)
	if err := m.transport.Send(eid, msg); err != nil {
		return fmt.Errorf("endpoint: eid=%d send command response: %w", eid, err)
	}
	return nil
}
