package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier.
	EventType() string

	// Timestamp returns when the event occurred, on the publisher's clock.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypePhaseChanged      = "boot.phase_changed"
	TypeInstrumentChanged = "power.instrument_changed"
	TypeGlobalPowerChange = "power.global_changed"
	TypePanelChanged      = "panel.changed"
	TypeHealthChanged     = "panel.health_changed"
	TypeSpeechChanged     = "speech.changed"
	TypeThreatsChanged    = "threat.changed"
)

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string, at time.Time) baseEvent {
	return baseEvent{eventType: eventType, timestamp: at}
}

// -----------------------------------------------------------------------------
// Boot Events
// -----------------------------------------------------------------------------

// PhaseChangedEvent is emitted on every boot phase transition.
type PhaseChangedEvent struct {
	baseEvent
	From string
	To   string
	// Reset is true when the transition is a replay back to the first phase.
	Reset bool
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(from, to string, reset bool, at time.Time) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent(TypePhaseChanged, at),
		From:      from,
		To:        to,
		Reset:     reset,
	}
}

// -----------------------------------------------------------------------------
// Power Events
// -----------------------------------------------------------------------------

// InstrumentChangedEvent is emitted when an instrument's power state or error
// flag changes.
type InstrumentChangedEvent struct {
	baseEvent
	InstrumentID string
	Power        string
	HasError     bool
}

// NewInstrumentChangedEvent creates an InstrumentChangedEvent.
func NewInstrumentChangedEvent(id, power string, hasError bool, at time.Time) InstrumentChangedEvent {
	return InstrumentChangedEvent{
		baseEvent:    newBaseEvent(TypeInstrumentChanged, at),
		InstrumentID: id,
		Power:        power,
		HasError:     hasError,
	}
}

// GlobalPowerChangedEvent is emitted when the bridge-wide power state changes.
type GlobalPowerChangedEvent struct {
	baseEvent
	Power string
}

// NewGlobalPowerChangedEvent creates a GlobalPowerChangedEvent.
func NewGlobalPowerChangedEvent(power string, at time.Time) GlobalPowerChangedEvent {
	return GlobalPowerChangedEvent{
		baseEvent: newBaseEvent(TypeGlobalPowerChange, at),
		Power:     power,
	}
}

// -----------------------------------------------------------------------------
// Panel Events
// -----------------------------------------------------------------------------

// PanelChangedEvent is emitted when the expanded panel or activation phase
// changes. PanelID is empty when no panel is expanded.
type PanelChangedEvent struct {
	baseEvent
	PanelID  string
	Phase    string
	Previous string
}

// NewPanelChangedEvent creates a PanelChangedEvent.
func NewPanelChangedEvent(panelID, phase, previous string, at time.Time) PanelChangedEvent {
	return PanelChangedEvent{
		baseEvent: newBaseEvent(TypePanelChanged, at),
		PanelID:   panelID,
		Phase:     phase,
		Previous:  previous,
	}
}

// HealthChangedEvent is emitted when a panel's health value changes.
type HealthChangedEvent struct {
	baseEvent
	PanelID string
	Health  float64
}

// NewHealthChangedEvent creates a HealthChangedEvent.
func NewHealthChangedEvent(panelID string, health float64, at time.Time) HealthChangedEvent {
	return HealthChangedEvent{
		baseEvent: newBaseEvent(TypeHealthChanged, at),
		PanelID:   panelID,
		Health:    health,
	}
}

// -----------------------------------------------------------------------------
// Speech Events
// -----------------------------------------------------------------------------

// SpeechChangedEvent is emitted when the current companion message changes.
// MessageID is empty when nothing is being spoken.
type SpeechChangedEvent struct {
	baseEvent
	MessageID string
	SubjectID string
	Text      string
	Priority  string
}

// NewSpeechChangedEvent creates a SpeechChangedEvent.
func NewSpeechChangedEvent(messageID, subjectID, text, priority string, at time.Time) SpeechChangedEvent {
	return SpeechChangedEvent{
		baseEvent: newBaseEvent(TypeSpeechChanged, at),
		MessageID: messageID,
		SubjectID: subjectID,
		Text:      text,
		Priority:  priority,
	}
}

// -----------------------------------------------------------------------------
// Threat Events
// -----------------------------------------------------------------------------

// ThreatsChangedEvent is emitted when threats are added, removed, or the
// hovered threat changes.
type ThreatsChangedEvent struct {
	baseEvent
	Count   int
	Hovered string
}

// NewThreatsChangedEvent creates a ThreatsChangedEvent.
func NewThreatsChangedEvent(count int, hovered string, at time.Time) ThreatsChangedEvent {
	return ThreatsChangedEvent{
		baseEvent: newBaseEvent(TypeThreatsChanged, at),
		Count:     count,
		Hovered:   hovered,
	}
}
