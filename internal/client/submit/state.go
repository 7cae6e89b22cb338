package submit

// State is the lifecycle position of a Controller.
type State int

const (
	StateIdle State = iota
	StateValidating
	// StateInvalid is idle with validation errors shown.
	StateInvalid
	StateInFlight
	// StateSucceeded is idle after a successful submission.
	StateSucceeded
	// StateFailed is idle after a failed submission; Retry is available
	// when the failure was retryable.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateInFlight:
		return "in-flight"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
