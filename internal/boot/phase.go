package boot

import (
	"fmt"

	"github.com/Iron-Ham/bridge/internal/errors"
)

// Phase is a step of the boot sequence. Phases are ordered; a larger value is
// later in the sequence.
type Phase int

const (
	// PhaseStart is the start screen, waiting for the user.
	PhaseStart Phase = iota
	// PhaseNameExit plays the title exit animation.
	PhaseNameExit
	// PhaseDarkness is true black before any light.
	PhaseDarkness
	// PhaseConsoleGlow lights the console and shows the boot readout.
	PhaseConsoleGlow
	// PhasePowerSurge opens the instrument power gate.
	PhasePowerSurge
	// PhaseFullPower is the settled, fully lit bridge still inside the sequence.
	PhaseFullPower
	// PhaseComplete is normal operation.
	PhaseComplete
)

var phaseNames = [...]string{
	PhaseStart:       "start",
	PhaseNameExit:    "name-exit",
	PhaseDarkness:    "darkness",
	PhaseConsoleGlow: "console-glow",
	PhasePowerSurge:  "power-surge",
	PhaseFullPower:   "full-power",
	PhaseComplete:    "complete",
}

// String returns the phase name used in config, logs, and events.
func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("unknown(%d)", int(p))
	}
	return phaseNames[p]
}

// Valid reports whether p is one of the enumerated phases.
func (p Phase) Valid() bool {
	return p >= PhaseStart && p <= PhaseComplete
}

// Next returns the phase after p. Complete is its own successor.
func (p Phase) Next() Phase {
	if p >= PhaseComplete {
		return PhaseComplete
	}
	return p + 1
}

// Phases returns every phase in order.
func Phases() []Phase {
	phases := make([]Phase, 0, len(phaseNames))
	for p := PhaseStart; p <= PhaseComplete; p++ {
		phases = append(phases, p)
	}
	return phases
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
