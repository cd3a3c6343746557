package endpoint

import "errors"

var (
	ErrUnknownEndpoint = errors.New("endpoint: no poller for eid")
	ErrWrongPLDMType   = errors.New("endpoint: inbound message is not PLDM platform type")
)
