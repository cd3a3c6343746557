// Package wire implements the responder's serialization layer: byte-exact,
// length-checked encode/decode of the PLDM message header and the
// command-specific request/response bodies this responder handles
// (PollForPlatformEventMessage, PlatformEventMessage, GetPDR). Multi-byte
// fields are little-endian on the wire per the PLDM base specification.
//
// Every decode function checks buffer length before indexing and returns a
// sentinel error from errors.go rather than panicking; every encode
// function allocates exactly the bytes it writes.
package wire
