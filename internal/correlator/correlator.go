// Package correlator implements the request/response correlator described
// in the responder's component design: instance-id allocation per EID,
// one-shot response callback matching on (eid, instance id), and mandatory
// release on response or timeout.
//
// The cooperative event loop is the only writer to a Correlator during
// normal operation, so the hot path (GetInstanceID/RegisterRequest/
// MarkFree/Deliver) needs no lock per the design notes. A ttlcache backstop
// gives every registered request a generous expiry: when it fires, the
// pending entry is dropped (a later response is then unmatched) and a
// warning is logged. The expiry does not release the instance id; only
// MarkFree does.
package correlator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	logs "github.com/danmuck/smplog"
)

// MaxInstanceID is the highest instance id the correlator will allocate;
// the pool for each EID spans [0, MaxInstanceID].
const MaxInstanceID = 31

var (
	ErrNoFreeSlot        = errors.New("correlator: no free instance id")
	ErrDuplicateRequest  = errors.New("correlator: duplicate request on (eid,iid)")
	ErrSendFailed        = errors.New("correlator: send failed")
	ErrUnmatchedResponse = errors.New("correlator: unmatched response")
)

// Transport is the boundary to the out-of-scope MCTP transport: the
// correlator only knows how to hand it bytes addressed to an EID.
type Transport interface {
	Send(eid uint8, payload []byte) error
}

// OnResponse is a one-shot callback matched to a single (eid, instance id)
// pair, invoked at most once with the response payload.
type OnResponse func(payload []byte)

type pending struct {
	eid uint8
	iid uint8
	cb  OnResponse
}

func key(eid, iid uint8) string {
	return fmt.Sprintf("%d:%d", eid, iid)
}

// Correlator tracks in-flight requests across all EIDs.
type Correlator struct {
	mu       sync.Mutex
	free     map[uint8][MaxInstanceID + 1]bool
	pending  *ttlcache.Cache
	backstop time.Duration
}

// New builds a Correlator whose backstop expiry defaults to backstop; pass
// zero to disable the safety net (relying entirely on the poller's own
// timeout timer to call MarkFree).
func New(backstop time.Duration) *Correlator {
	c := &Correlator{
		free:     make(map[uint8][MaxInstanceID + 1]bool),
		pending:  ttlcache.NewCache(),
		backstop: backstop,
	}
	c.pending.SetExpirationCallback(func(k string, v interface{}) {
		logs.Warnf("correlator: backstop expiry fired for %s", k)
	})
	if backstop > 0 {
		_ = c.pending.SetTTL(backstop)
	}
	return c
}

func (c *Correlator) allocatedBits(eid uint8) [MaxInstanceID + 1]bool {
	if bits, ok := c.free[eid]; ok {
		return bits
	}
	return [MaxInstanceID + 1]bool{}
}

// GetInstanceID returns a free instance id in [0, MaxInstanceID] for eid,
// marking it allocated. It fails with ErrNoFreeSlot if every id on this
// EID is outstanding.
func (c *Correlator) GetInstanceID(eid uint8) (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bits := c.allocatedBits(eid)
	for iid := uint8(0); iid <= MaxInstanceID; iid++ {
		if !bits[iid] {
			bits[iid] = true
			c.free[eid] = bits
			logs.Debugf("correlator: allocated eid=%d iid=%d", eid, iid)
			return iid, nil
		}
	}
	logs.Errf("correlator: no free instance id for eid=%d", eid)
	return 0, ErrNoFreeSlot
}

// RegisterRequest installs a one-shot callback matched to (eid, iid) and
// transmits payload through transport. On send failure the callback is not
// installed and ErrSendFailed is returned so the caller can release the
// instance id.
func (c *Correlator) RegisterRequest(eid, iid uint8, payload []byte, transport Transport, onResponse OnResponse) error {
	k := key(eid, iid)

	c.mu.Lock()
	if _, exists := c.pending.Get(k); exists == nil {
		c.mu.Unlock()
		logs.Errf("correlator: duplicate request eid=%d iid=%d", eid, iid)
		return ErrDuplicateRequest
	}
	c.mu.Unlock()

	if err := transport.Send(eid, payload); err != nil {
		logs.Errf("correlator: send failed eid=%d iid=%d err=%v", eid, iid, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	_ = c.pending.Set(k, pending{eid: eid, iid: iid, cb: onResponse})
	logs.Debugf("correlator: registered request eid=%d iid=%d", eid, iid)
	return nil
}

// MarkFree releases the instance id and drops any pending callback for
// (eid, iid). It is mandatory on response, timeout, or any early exit; it
// is safe to call when nothing is pending.
func (c *Correlator) MarkFree(eid, iid uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bits := c.allocatedBits(eid)
	bits[iid] = false
	c.free[eid] = bits
	_ = c.pending.Remove(key(eid, iid))
	logs.Debugf("correlator: freed eid=%d iid=%d", eid, iid)
}

// Deliver matches an inbound response to its pending callback and invokes
// it exactly once. A response with no matching (eid, iid) — because the
// slot was never registered, or was already freed by a timeout — is
// discarded silently per the correlator's ordering contract, and
// ErrUnmatchedResponse is returned so a caller may log it as informational
// rather than as an error.
func (c *Correlator) Deliver(eid, iid uint8, payload []byte) error {
	k := key(eid, iid)

	c.mu.Lock()
	raw, err := c.pending.Get(k)
	if err != nil {
		c.mu.Unlock()
		logs.Debugf("correlator: discarding unmatched response eid=%d iid=%d", eid, iid)
		return ErrUnmatchedResponse
	}
	_ = c.pending.Remove(k)
	c.mu.Unlock()

	p := raw.(pending)
	p.cb(payload)
	return nil
}

// IsPending reports whether a request is currently outstanding on (eid, iid).
func (c *Correlator) IsPending(eid, iid uint8) bool {
	_, err := c.pending.Get(key(eid, iid))
	return err == nil
}
