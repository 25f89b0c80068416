package panel

import (
	"fmt"

	"github.com/Iron-Ham/bridge/internal/errors"
)

// Phase is the activation phase of the expanded panel.
type Phase int

const (
	// PhaseIdle means no panel is shown.
	PhaseIdle Phase = iota
	// PhaseBeat1 dims the scene and draws the frame.
	PhaseBeat1
	// PhaseBeat2 reveals the panel content.
	PhaseBeat2
	// PhaseActive is the fully revealed panel.
	PhaseActive
	// PhaseDismissing plays the collapse.
	PhaseDismissing
)

var phaseNames = [...]string{
	PhaseIdle:       "idle",
	PhaseBeat1:      "beat1",
	PhaseBeat2:      "beat2",
	PhaseActive:     "active",
	PhaseDismissing: "dismissing",
}

// String returns the phase name.
func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("unknown(%d)", int(p))
	}
	return phaseNames[p]
}

// Valid reports whether p is one of the enumerated phases.
func (p Phase) Valid() bool {
	return p >= PhaseIdle && p <= PhaseDismissing
}

// ParsePhase converts a phase name back to a Phase.
func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return Phase(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errors.ErrUnknownPhase, name)
}
