// Package pdr implements the PDR (Platform Descriptor Record) repository:
// a content-addressed, singly-linked, typed record store populated from
// JSON descriptors and mutated by host repository-change events.
package pdr

// Type selects which typed payload a Record's Payload bytes decode as.
// A PDR is a tagged record, not an inheritance hierarchy: Type is the tag.
type Type uint8

const (
	TypeTerminusLocator   Type = 1
	TypeStateSensor       Type = 4
	TypeNumericEffecter   Type = 9
	TypeStateEffecter     Type = 11
	TypeEntityAssociation Type = 15
	TypeOEM               Type = 126
)

// oemEntityTypeFloor marks the start of the DMTF OEM-reserved entity-type
// and state-set-id ranges used by IsOEMStateSensor/IsOEMStateEffecter.
const oemEntityTypeFloor = 0x8000

// Header is the fixed prefix shared by every PDR record.
type Header struct {
	Handle    uint32
	NextHandle uint32
	Type      Type
	Version   uint8
	ChangeNum uint16
}

// Record is a PDR: a tagged header plus an opaque, type-specific payload.
type Record struct {
	Header
	Payload []byte
}

// TerminusLocatorPDR is the persisted record described in the responder's
// external interfaces: the fixed identity binding this BMC's terminus to
// its MCTP EID.
type TerminusLocatorPDR struct {
	TerminusHandle uint16
	TerminusID     uint8
	Validity       uint8 // 1 == PLDM_TL_PDR_VALID
	LocatorType    uint8 // 0 == MCTP_EID
	Eid            uint8
}

const TerminusLocatorValid uint8 = 1
const LocatorTypeMctpEid uint8 = 0

func EncodeTerminusLocatorPDR(p TerminusLocatorPDR) []byte {
	w := &wireWriter{}
	w.u16(p.TerminusHandle)
	w.u8(p.TerminusID)
	w.u8(p.Validity)
	w.u8(p.LocatorType)
	w.u8(p.Eid)
	return w.buf
}

func DecodeTerminusLocatorPDR(data []byte) (TerminusLocatorPDR, error) {
	r := newWireReader(data)
	terminusHandle, err := r.u16()
	if err != nil {
		return TerminusLocatorPDR{}, err
	}
	terminusID, err := r.u8()
	if err != nil {
		return TerminusLocatorPDR{}, err
	}
	validity, err := r.u8()
	if err != nil {
		return TerminusLocatorPDR{}, err
	}
	locatorType, err := r.u8()
	if err != nil {
		return TerminusLocatorPDR{}, err
	}
	eid, err := r.u8()
	if err != nil {
		return TerminusLocatorPDR{}, err
	}
	return TerminusLocatorPDR{
		TerminusHandle: terminusHandle,
		TerminusID:     terminusID,
		Validity:       validity,
		LocatorType:    locatorType,
		Eid:            eid,
	}, nil
}

// StateSensorPDR describes a composite state sensor: one PDR addressing
// several parallel sensors by offset, each with its own set of possible
// event states.
type StateSensorPDR struct {
	TerminusHandle   uint16
	SensorID         uint16
	EntityType       uint16
	EntityInstance   uint16
	ContainerID      uint16
	StateSetID       uint16
	PossibleStates   [][]uint8 // index == sensor_offset
}

func EncodeStateSensorPDR(p StateSensorPDR) []byte {
	w := &wireWriter{}
	w.u16(p.TerminusHandle)
	w.u16(p.SensorID)
	w.u16(p.EntityType)
	w.u16(p.EntityInstance)
	w.u16(p.ContainerID)
	w.u16(p.StateSetID)
	w.u8(uint8(len(p.PossibleStates)))
	for _, states := range p.PossibleStates {
		w.u8(uint8(len(states)))
		w.bytes(states)
	}
	return w.buf
}

func DecodeStateSensorPDR(data []byte) (StateSensorPDR, error) {
	r := newWireReader(data)
	p := StateSensorPDR{}
	var err error
	if p.TerminusHandle, err = r.u16(); err != nil {
		return StateSensorPDR{}, err
	}
	if p.SensorID, err = r.u16(); err != nil {
		return StateSensorPDR{}, err
	}
	if p.EntityType, err = r.u16(); err != nil {
		return StateSensorPDR{}, err
	}
	if p.EntityInstance, err = r.u16(); err != nil {
		return StateSensorPDR{}, err
	}
	if p.ContainerID, err = r.u16(); err != nil {
		return StateSensorPDR{}, err
	}
	if p.StateSetID, err = r.u16(); err != nil {
		return StateSensorPDR{}, err
	}
	count, err := r.u8()
	if err != nil {
		return StateSensorPDR{}, err
	}
	p.PossibleStates = make([][]uint8, 0, count)
	for i := uint8(0); i < count; i++ {
		n, err := r.u8()
		if err != nil {
			return StateSensorPDR{}, err
		}
		states, err := r.bytes(int(n))
		if err != nil {
			return StateSensorPDR{}, err
		}
		cp := make([]uint8, len(states))
		copy(cp, states)
		p.PossibleStates = append(p.PossibleStates, cp)
	}
	return p, nil
}

// StateEffecterPDR mirrors StateSensorPDR for a controllable, composite
// state effecter.
type StateEffecterPDR struct {
	TerminusHandle uint16
	EffecterID     uint16
	EntityType     uint16
	EntityInstance uint16
	ContainerID    uint16
	StateSetID     uint16
	PossibleStates [][]uint8
}

func EncodeStateEffecterPDR(p StateEffecterPDR) []byte {
	return EncodeStateSensorPDR(StateSensorPDR{
		TerminusHandle: p.TerminusHandle,
		SensorID:       p.EffecterID,
		EntityType:     p.EntityType,
		EntityInstance: p.EntityInstance,
		ContainerID:    p.ContainerID,
		StateSetID:     p.StateSetID,
		PossibleStates: p.PossibleStates,
	})
}

func DecodeStateEffecterPDR(data []byte) (StateEffecterPDR, error) {
	s, err := DecodeStateSensorPDR(data)
	return StateEffecterPDR{
		TerminusHandle: s.TerminusHandle,
		EffecterID:     s.SensorID,
		EntityType:     s.EntityType,
		EntityInstance: s.EntityInstance,
		ContainerID:    s.ContainerID,
		StateSetID:     s.StateSetID,
		PossibleStates: s.PossibleStates,
	}, err
}

// NumericEffecterPDR describes a single scalar effecter.
type NumericEffecterPDR struct {
	TerminusHandle uint16
	EffecterID     uint16
	EntityType     uint16
	EntityInstance uint16
	ContainerID    uint16
	BaseUnit       uint8
	MinSettable    int32
	MaxSettable    int32
}

func EncodeNumericEffecterPDR(p NumericEffecterPDR) []byte {
	w := &wireWriter{}
	w.u16(p.TerminusHandle)
	w.u16(p.EffecterID)
	w.u16(p.EntityType)
	w.u16(p.EntityInstance)
	w.u16(p.ContainerID)
	w.u8(p.BaseUnit)
	w.u32(uint32(p.MinSettable))
	w.u32(uint32(p.MaxSettable))
	return w.buf
}

func DecodeNumericEffecterPDR(data []byte) (NumericEffecterPDR, error) {
	r := newWireReader(data)
	p := NumericEffecterPDR{}
	var err error
	if p.TerminusHandle, err = r.u16(); err != nil {
		return NumericEffecterPDR{}, err
	}
	if p.EffecterID, err = r.u16(); err != nil {
		return NumericEffecterPDR{}, err
	}
	if p.EntityType, err = r.u16(); err != nil {
		return NumericEffecterPDR{}, err
	}
	if p.EntityInstance, err = r.u16(); err != nil {
		return NumericEffecterPDR{}, err
	}
	if p.ContainerID, err = r.u16(); err != nil {
		return NumericEffecterPDR{}, err
	}
	if p.BaseUnit, err = r.u8(); err != nil {
		return NumericEffecterPDR{}, err
	}
	minV, err := r.u32()
	if err != nil {
		return NumericEffecterPDR{}, err
	}
	maxV, err := r.u32()
	if err != nil {
		return NumericEffecterPDR{}, err
	}
	p.MinSettable = int32(minV)
	p.MaxSettable = int32(maxV)
	return p, nil
}

// Entity is one member of an EntityAssociationPDR's containing set.
type Entity struct {
	EntityType     uint16
	EntityInstance uint16
}

// EntityAssociationPDR groups entities under a container; it has no
// terminus handle of its own, so it is unaffected by
// Repository.RemoveByTerminusHandle.
type EntityAssociationPDR struct {
	ContainerID            uint16
	ContainerEntityType    uint16
	ContainerEntityInstance uint16
	ContainingEntities     []Entity
}

func EncodeEntityAssociationPDR(p EntityAssociationPDR) []byte {
	w := &wireWriter{}
	w.u16(p.ContainerID)
	w.u16(p.ContainerEntityType)
	w.u16(p.ContainerEntityInstance)
	w.u8(uint8(len(p.ContainingEntities)))
	for _, e := range p.ContainingEntities {
		w.u16(e.EntityType)
		w.u16(e.EntityInstance)
	}
	return w.buf
}

func DecodeEntityAssociationPDR(data []byte) (EntityAssociationPDR, error) {
	r := newWireReader(data)
	p := EntityAssociationPDR{}
	var err error
	if p.ContainerID, err = r.u16(); err != nil {
		return EntityAssociationPDR{}, err
	}
	if p.ContainerEntityType, err = r.u16(); err != nil {
		return EntityAssociationPDR{}, err
	}
	if p.ContainerEntityInstance, err = r.u16(); err != nil {
		return EntityAssociationPDR{}, err
	}
	count, err := r.u8()
	if err != nil {
		return EntityAssociationPDR{}, err
	}
	for i := uint8(0); i < count; i++ {
		et, err := r.u16()
		if err != nil {
			return EntityAssociationPDR{}, err
		}
		ei, err := r.u16()
		if err != nil {
			return EntityAssociationPDR{}, err
		}
		p.ContainingEntities = append(p.ContainingEntities, Entity{EntityType: et, EntityInstance: ei})
	}
	return p, nil
}

// OEMPDR carries a vendor-defined payload behind a terminus handle so it
// still participates in RemoveByTerminusHandle.
type OEMPDR struct {
	TerminusHandle uint16
	Data           []byte
}

func EncodeOEMPDR(p OEMPDR) []byte {
	w := &wireWriter{}
	w.u16(p.TerminusHandle)
	w.bytes(p.Data)
	return w.buf
}

func DecodeOEMPDR(data []byte) (OEMPDR, error) {
	r := newWireReader(data)
	terminusHandle, err := r.u16()
	if err != nil {
		return OEMPDR{}, err
	}
	return OEMPDR{TerminusHandle: terminusHandle, Data: r.rest()}, nil
}

// terminusHandleOf extracts the embedded terminus handle from a record's
// payload, if that record type carries one.
func terminusHandleOf(rec Record) (uint16, bool) {
	switch rec.Type {
	case TypeTerminusLocator:
		p, err := DecodeTerminusLocatorPDR(rec.Payload)
		return p.TerminusHandle, err == nil
	case TypeStateSensor:
		p, err := DecodeStateSensorPDR(rec.Payload)
		return p.TerminusHandle, err == nil
	case TypeStateEffecter:
		p, err := DecodeStateEffecterPDR(rec.Payload)
		return p.TerminusHandle, err == nil
	case TypeNumericEffecter:
		p, err := DecodeNumericEffecterPDR(rec.Payload)
		return p.TerminusHandle, err == nil
	case TypeOEM:
		p, err := DecodeOEMPDR(rec.Payload)
		return p.TerminusHandle, err == nil
	default:
		return 0, false
	}
}

// isOEMEntityType reports whether an entity type falls in the DMTF
// OEM-reserved range.
func isOEMEntityType(entityType uint16) bool {
	return entityType >= oemEntityTypeFloor
}

// isOEMStateSetID reports whether a state-set id falls in the DMTF
// OEM-reserved range.
func isOEMStateSetID(stateSetID uint16) bool {
	return stateSetID >= oemEntityTypeFloor
}
