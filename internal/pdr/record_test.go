package pdr

import (
	"testing"

	"github.com/danmuck/pldmd/internal/testutil/testlog"
)

func TestTerminusLocatorRoundTrip(t *testing.T) {
	testlog.Start(t)
	p := TerminusLocatorPDR{TerminusHandle: 1, TerminusID: 1, Validity: TerminusLocatorValid, LocatorType: LocatorTypeMctpEid, Eid: 8}
	got, err := DecodeTerminusLocatorPDR(EncodeTerminusLocatorPDR(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestTerminusLocatorTruncated(t *testing.T) {
	testlog.Start(t)
	if _, err := DecodeTerminusLocatorPDR([]byte{0x01}); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestStateSensorRoundTrip(t *testing.T) {
	testlog.Start(t)
	p := StateSensorPDR{
		TerminusHandle: 1,
		SensorID:       42,
		EntityType:     64,
		EntityInstance: 1,
		ContainerID:    0,
		StateSetID:     0x0007,
		PossibleStates: [][]uint8{{0, 1, 2}, {0, 1}},
	}
	got, err := DecodeStateSensorPDR(EncodeStateSensorPDR(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SensorID != p.SensorID || got.StateSetID != p.StateSetID || len(got.PossibleStates) != len(p.PossibleStates) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if len(got.PossibleStates[0]) != 3 || got.PossibleStates[0][2] != 2 {
		t.Fatalf("possible states mismatch: %+v", got.PossibleStates)
	}
}

func TestStateEffecterSharesStateSensorWire(t *testing.T) {
	testlog.Start(t)
	p := StateEffecterPDR{TerminusHandle: 1, EffecterID: 7, EntityType: 64, EntityInstance: 1, PossibleStates: [][]uint8{{0, 1}}}
	got, err := DecodeStateEffecterPDR(EncodeStateEffecterPDR(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.EffecterID != p.EffecterID {
		t.Fatalf("effecter id mismatch: got %d want %d", got.EffecterID, p.EffecterID)
	}
}

func TestNumericEffecterRoundTrip(t *testing.T) {
	testlog.Start(t)
	p := NumericEffecterPDR{TerminusHandle: 1, EffecterID: 3, EntityType: 64, EntityInstance: 1, BaseUnit: 2, MinSettable: -40, MaxSettable: 120}
	got, err := DecodeNumericEffecterPDR(EncodeNumericEffecterPDR(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestEntityAssociationRoundTrip(t *testing.T) {
	testlog.Start(t)
	p := EntityAssociationPDR{
		ContainerID:             1,
		ContainerEntityType:     64,
		ContainerEntityInstance: 1,
		ContainingEntities:      []Entity{{EntityType: 65, EntityInstance: 1}, {EntityType: 65, EntityInstance: 2}},
	}
	got, err := DecodeEntityAssociationPDR(EncodeEntityAssociationPDR(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.ContainingEntities) != 2 || got.ContainingEntities[1].EntityInstance != 2 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestOEMPDRRoundTrip(t *testing.T) {
	testlog.Start(t)
	p := OEMPDR{TerminusHandle: 1, Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}}
	got, err := DecodeOEMPDR(EncodeOEMPDR(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TerminusHandle != p.TerminusHandle || string(got.Data) != string(p.Data) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestIsOEMEntityType(t *testing.T) {
	testlog.Start(t)
	if isOEMEntityType(0x7FFF) {
		t.Fatalf("0x7FFF must not be OEM")
	}
	if !isOEMEntityType(0x8000) {
		t.Fatalf("0x8000 must be OEM")
	}
}

func TestIsOEMStateSetID(t *testing.T) {
	testlog.Start(t)
	if isOEMStateSetID(0x7FFF) {
		t.Fatalf("0x7FFF must not be OEM")
	}
	if !isOEMStateSetID(0x8000) {
		t.Fatalf("0x8000 must be OEM")
	}
}
