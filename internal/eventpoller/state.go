package eventpoller

// State names one of the four coarse phases a per-EID poller moves
// through. It is a simplification layered over the finer-grained flags
// (isProcessPolling, isPolling, isCritical, responseReceived) the C
// implementation this is grounded on tracks directly; State exists so
// callers and tests have a single value to assert against.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateReassembling
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePolling:
		return "Polling"
	case StateReassembling:
		return "Reassembling"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
