package pdr

// SeedTerminusLocator adds this BMC's own terminus-locator record. It must
// run before any JSON ingestion so the terminus-locator PDR always occupies
// handle 1 (handle 0 is reserved).
func SeedTerminusLocator(repo *Repository, terminusHandle uint16, terminusID, eid uint8) uint32 {
	payload := EncodeTerminusLocatorPDR(TerminusLocatorPDR{
		TerminusHandle: terminusHandle,
		TerminusID:     terminusID,
		Validity:       TerminusLocatorValid,
		LocatorType:    LocatorTypeMctpEid,
		Eid:            eid,
	})
	return repo.Add(TypeTerminusLocator, 1, payload)
}
