package openstack

// PowerState is the discrete power state of an instance.
type PowerState int

const (
	StateUnknown PowerState = iota
	StateRunning
	StateStopped
	StateSuspended
	StatePaused
	StateError
)

func (s PowerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateSuspended:
		return "suspended"
	case StatePaused:
		return "paused"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// statusState maps backend-reported statuses onto power states.
// Transitional statuses map to the live state they converge toward; they
// are live but not steady. Statuses absent from this table are treated as
// an error condition and surfaced with whatever fault detail the backend
// attached.
var statusState = map[string]PowerState{
	"ACTIVE":    StateRunning,
	"SHUTOFF":   StateStopped,
	"SUSPENDED": StateSuspended,
	"PAUSED":    StatePaused,

	"BUILD":         StateRunning,
	"REBOOT":        StateRunning,
	"HARD_REBOOT":   StateRunning,
	"REBUILD":       StateRunning,
	"MIGRATING":     StateRunning,
	"RESIZE":        StateRunning,
	"VERIFY_RESIZE": StateRunning,
	"PASSWORD":      StateRunning,
}

// steadyStatuses are the statuses that are not mid-transition.
var steadyStatuses = map[string]bool{
	"ACTIVE":    true,
	"SHUTOFF":   true,
	"SUSPENDED": true,
	"PAUSED":    true,
	"ERROR":     true,
}
