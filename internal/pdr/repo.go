package pdr

import "sync"

// Repository persists typed PDR records indexed by handle, threaded by
// NextHandle into a singly-linked enumeration order. The cooperative event
// loop is the sole mutator during normal operation; the RWMutex here only
// guards the admin surface's concurrent reads (see design notes).
type Repository struct {
	mu         sync.RWMutex
	records    map[uint32]*Record
	firstHandle uint32
	lastHandle  uint32
	nextHandle  uint32
}

// NewRepository returns an empty repository. Handle 0 is reserved and is
// never assigned to a record.
func NewRepository() *Repository {
	return &Repository{
		records:    make(map[uint32]*Record),
		nextHandle: 1,
	}
}

// Add appends a new record of the given type, assigning it the next
// monotonically increasing handle (never 0, never reused within the
// session), and returns that handle.
func (r *Repository) Add(recordType Type, version uint8, payload []byte) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.nextHandle
	r.nextHandle++

	rec := &Record{
		Header: Header{
			Handle:    handle,
			NextHandle: 0,
			Type:      recordType,
			Version:   version,
		},
		Payload: payload,
	}
	r.records[handle] = rec

	if r.firstHandle == 0 {
		r.firstHandle = handle
	} else if last, ok := r.records[r.lastHandle]; ok {
		last.NextHandle = handle
	}
	r.lastHandle = handle
	return handle
}

// GetByHandle returns a copy of the record at handle. Handle 0 is always a
// miss: it is reserved and never assigned to a record.
func (r *Repository) GetByHandle(handle uint32) (Record, bool) {
	if handle == 0 {
		return Record{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[handle]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// GetFirst returns the first record in enumeration order.
func (r *Repository) GetFirst() (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.firstHandle == 0 {
		return Record{}, false
	}
	rec := r.records[r.firstHandle]
	return *rec, true
}

// GetNext returns the record following currentHandle in enumeration order.
// Repeated calls starting from GetFirst's handle visit every record
// exactly once and terminate at the record whose NextHandle is 0.
func (r *Repository) GetNext(currentHandle uint32) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cur, ok := r.records[currentHandle]
	if !ok || cur.NextHandle == 0 {
		return Record{}, false
	}
	next, ok := r.records[cur.NextHandle]
	if !ok {
		return Record{}, false
	}
	return *next, true
}

// FilterByType copies every record of the given type into dst, preserving
// payload and version but assigning dst its own handle sequence.
func (r *Repository) FilterByType(dst *Repository, t Type) {
	for _, rec := range r.Records() {
		if rec.Type == t {
			dst.Add(rec.Type, rec.Version, rec.Payload)
		}
	}
}

// RemoveByTerminusHandle removes every record whose embedded terminus
// handle equals th (entity-association records, which carry none, are
// never removed by this call) and returns the number removed.
func (r *Repository) RemoveByTerminusHandle(th uint16) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	var prevHandle uint32
	handle := r.firstHandle
	for handle != 0 {
		rec := r.records[handle]
		next := rec.NextHandle
		if got, ok := terminusHandleOf(*rec); ok && got == th {
			if prevHandle == 0 {
				r.firstHandle = next
			} else {
				r.records[prevHandle].NextHandle = next
			}
			if handle == r.lastHandle {
				r.lastHandle = prevHandle
			}
			delete(r.records, handle)
			removed++
		} else {
			prevHandle = handle
		}
		handle = next
	}
	return removed
}

// Empty reports whether the repository holds no records.
func (r *Repository) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records) == 0
}

// Records returns every record in enumeration order. It is a convenience
// for tests, metrics, and FilterByType; production dispatch code should
// prefer GetFirst/GetNext/GetByHandle so behaviour matches the specified
// contract exactly.
func (r *Repository) Records() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.records))
	handle := r.firstHandle
	for handle != 0 {
		rec, ok := r.records[handle]
		if !ok {
			break
		}
		out = append(out, *rec)
		handle = rec.NextHandle
	}
	return out
}

// CountByType returns how many records of type t are currently stored.
func (r *Repository) CountByType(t Type) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Type == t {
			n++
		}
	}
	return n
}

// LookupStateSensor scans the repository for a StateSensor PDR matching
// sensorID alone (no terminus id is matched); it is the lookup the
// SensorEvent handler uses.
func (r *Repository) LookupStateSensor(sensorID uint16) (StateSensorPDR, bool) {
	for _, rec := range r.Records() {
		if rec.Type != TypeStateSensor {
			continue
		}
		p, err := DecodeStateSensorPDR(rec.Payload)
		if err != nil {
			continue
		}
		if p.SensorID == sensorID {
			return p, true
		}
	}
	return StateSensorPDR{}, false
}

// IsOEMStateSensor reports whether sensorID's entity type or state-set id
// falls in the DMTF OEM-reserved range, so a caller can route it to an
// OEM-specific handler instead of the built-in SensorEvent chain.
func (r *Repository) IsOEMStateSensor(sensorID uint16) bool {
	p, ok := r.LookupStateSensor(sensorID)
	return ok && (isOEMEntityType(p.EntityType) || isOEMStateSetID(p.StateSetID))
}

// IsOEMStateEffecter reports whether effecterID's entity type or state-set
// id falls in the DMTF OEM-reserved range.
func (r *Repository) IsOEMStateEffecter(effecterID uint16) bool {
	for _, rec := range r.Records() {
		if rec.Type != TypeStateEffecter {
			continue
		}
		p, err := DecodeStateEffecterPDR(rec.Payload)
		if err != nil {
			continue
		}
		if p.EffecterID == effecterID {
			return isOEMEntityType(p.EntityType) || isOEMStateSetID(p.StateSetID)
		}
	}
	return false
}
