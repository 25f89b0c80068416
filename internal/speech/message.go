package speech

import "time"

// Priority orders messages for arbitration.
type Priority int

const (
	// PriorityNormal is the default for focus-driven detail lines.
	PriorityNormal Priority = iota
	// PriorityHigh is for greetings and alerts. Focus proposals never preempt it.
	PriorityHigh
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Category tags what kind of line a message is.
type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryNudge    Category = "nudge"
	CategoryDetail   Category = "detail"
)

// Message is one companion utterance.
type Message struct {
	ID         string
	SubjectID  string
	Text       string
	Priority   Priority
	Category   Category
	EnqueuedAt time.Time
}

// Composer builds the message for a focused subject. It returns false when
// nothing should be said about the subject.
type Composer interface {
	Compose(subjectID string) (Message, bool)
}

// ComposerFunc adapts a function to the Composer interface.
type ComposerFunc func(subjectID string) (Message, bool)

// Compose calls f.
func (f ComposerFunc) Compose(subjectID string) (Message, bool) {
	return f(subjectID)
}
