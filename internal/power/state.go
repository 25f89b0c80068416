package power

// State is the power state of an instrument or of the bridge as a whole.
type State int

const (
	// StateOff means no power. Every instrument starts here.
	StateOff State = iota
	// StateBoot means powered and initializing.
	StateBoot
	// StateRunning means fully operational.
	StateRunning
)

// String returns a human-readable string for the state.
func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateBoot:
		return "boot"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Status is what a consumer sees for one instrument.
type Status struct {
	Power    State
	HasError bool
}

// Reading is a Status enriched with derived flags, as returned by Observer.Read.
type Reading struct {
	Power  State
	Global State
	// JustBooted is true on exactly one read: the first after boot -> running.
	JustBooted bool
	IsOff      bool
	IsBooting  bool
	IsRunning  bool
	HasError   bool
}
