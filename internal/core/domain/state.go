package domain

// IndexState is the lifecycle of the embedding gateway and, by extension,
// the whole query path. The chat layer renders each state distinctly
// instead of inferring readiness from side effects.
type IndexState int

const (
	// StateUninitialized means no initialisation attempt has started.
	StateUninitialized IndexState = iota

	// StateInitializing means the one-shot initialisation is in flight.
	StateInitializing

	// StateReady means the embedding model is loaded and usable.
	StateReady

	// StateFailed means initialisation failed; the failure is sticky.
	StateFailed
)

// String returns the lowercase state name.
func (s IndexState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
