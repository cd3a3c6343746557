package dispatch

import "errors"

var (
	ErrUnknownEventClass  = errors.New("dispatch: unknown event class")
	ErrUnknownSensor      = errors.New("dispatch: sensor id not found in repository")
	ErrOffsetOutOfRange   = errors.New("dispatch: sensor offset exceeds composite sensor count")
	ErrStateNotPossible   = errors.New("dispatch: event state is not a possible state for this offset")
	ErrRejectedFormat     = errors.New("dispatch: FormatIsPdrTypes is not a valid PdrRepositoryChg format")
)
