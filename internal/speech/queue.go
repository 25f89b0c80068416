// Package speech arbitrates what the companion character is saying.
//
// Exactly one message may be current. Focus changes arrive through
// [Queue.FocusChange] and are debounced, so sweeping the pointer across several
// threats proposes only the one it rests on. Proposals follow a simple rule: an
// idle queue accepts anything, a normal-priority message yields to a different
// subject, and a high-priority message is never interrupted by focus. Direct
// messages from [Queue.Say] are arbitrated by priority alone. [Queue.Enqueue]
// holds a message until the current one finishes.
//
// With [WithAutoDismiss], greetings and nudges finish on their own once the
// line has been typed out and the dismiss delay has passed. Detail lines stay
// until they are preempted or finished.
package speech

import (
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
)

// DefaultDebounce is how long focus must rest before a proposal.
const DefaultDebounce = 150 * time.Millisecond

// Option configures a Queue.
type Option func(*Queue)

// WithClock sets the clock that drives the debounce.
func WithClock(c clock.Clock) Option {
	return func(q *Queue) {
		if c != nil {
			q.clock = c
		}
	}
}

// WithLogger sets the logger for the queue.
func WithLogger(logger *logging.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithDebounce sets the focus debounce. A negative value is replaced with the
// default (150ms).
func WithDebounce(d time.Duration) Option {
	return func(q *Queue) {
		if d >= 0 {
			q.debounce = d
		}
	}
}

// WithAutoDismiss finishes non-detail messages delay after they have been
// typed out at perChar per character. A delay of zero or less disables it.
func WithAutoDismiss(delay, perChar time.Duration) Option {
	return func(q *Queue) {
		q.autoDismiss = max(delay, 0)
		q.typewriter = max(perChar, 0)
	}
}

// Queue is the single-speaker arbitration queue. It is safe for concurrent use.
type Queue struct {
	bus      *event.Bus
	composer Composer
	clock    clock.Clock
	logger   *logging.Logger
	debounce time.Duration

	autoDismiss time.Duration
	typewriter  time.Duration

	mu        sync.Mutex
	current   *Message
	backlog   []Message
	pending   clock.Timer
	dismiss   clock.Timer
	gen       uint64
	closed    bool
	proposals int
}

// New creates a Queue that builds focus proposals with composer.
func New(bus *event.Bus, composer Composer, opts ...Option) *Queue {
	if bus == nil {
		bus = event.NewBus()
	}
	q := &Queue{
		bus:      bus,
		composer: composer,
		clock:    clock.Real{},
		logger:   logging.NopLogger(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.logger = q.logger.WithComponent("speech")
	return q
}

// FocusChange reports that focus moved to subjectID, or was cleared when
// subjectID is empty. Every call cancels a pending proposal. A non-empty
// subject arms a new one after the debounce. Clearing focus never interrupts
// the current message.
func (q *Queue) FocusChange(subjectID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.cancelLocked()
	if subjectID == "" {
		return
	}

	gen := q.gen
	q.pending = q.clock.AfterFunc(q.debounce, func() { q.propose(gen, subjectID) })
}

func (q *Queue) propose(gen uint64, subjectID string) {
	q.mu.Lock()
	if q.closed || gen != q.gen {
		q.mu.Unlock()
		return
	}
	q.pending = nil
	q.proposals++
	q.mu.Unlock()

	if q.composer == nil {
		return
	}
	msg, ok := q.composer.Compose(subjectID)
	if !ok {
		return
	}
	if msg.SubjectID == "" {
		msg.SubjectID = subjectID
	}
	q.fill(&msg)

	q.mu.Lock()
	if q.current != nil && (q.current.Priority != PriorityNormal || q.current.SubjectID == msg.SubjectID) {
		current := *q.current
		q.mu.Unlock()
		q.logger.Debug("proposal suppressed",
			"subject", msg.SubjectID,
			"current_subject", current.SubjectID,
			"current_priority", current.Priority.String())
		return
	}
	q.setCurrentLocked(&msg)
	q.mu.Unlock()

	q.logger.Debug("proposal accepted", "subject", msg.SubjectID, "message_id", msg.ID)
	q.publish(&msg)
}

// Say enqueues msg directly. It becomes current when nothing is being said or
// when it has strictly higher priority than the current message. Otherwise it
// returns errors.ErrSpeechRejected.
func (q *Queue) Say(msg Message) error {
	if msg.SubjectID == "" {
		return errors.ErrEmptySubject
	}
	q.fill(&msg)

	q.mu.Lock()
	if q.current != nil && msg.Priority <= q.current.Priority {
		q.mu.Unlock()
		return errors.Wrapf(errors.ErrSpeechRejected, "subject %s (%s)", msg.SubjectID, msg.Priority)
	}
	q.setCurrentLocked(&msg)
	q.mu.Unlock()

	q.logger.Debug("message accepted", "subject", msg.SubjectID, "priority", msg.Priority.String(), "category", string(msg.Category))
	q.publish(&msg)
	return nil
}

// Enqueue plays msg once everything ahead of it has finished. On an idle queue
// it becomes current at once. A subject that is already current or waiting is
// rejected with errors.ErrSpeechRejected.
func (q *Queue) Enqueue(msg Message) error {
	if msg.SubjectID == "" {
		return errors.ErrEmptySubject
	}
	q.fill(&msg)

	q.mu.Lock()
	if q.current == nil {
		q.setCurrentLocked(&msg)
		q.mu.Unlock()

		q.logger.Debug("message accepted", "subject", msg.SubjectID, "priority", msg.Priority.String(), "category", string(msg.Category))
		q.publish(&msg)
		return nil
	}
	if q.current.SubjectID == msg.SubjectID || slices.ContainsFunc(q.backlog, func(m Message) bool { return m.SubjectID == msg.SubjectID }) {
		q.mu.Unlock()
		return errors.Wrapf(errors.ErrSpeechRejected, "subject %s already queued", msg.SubjectID)
	}
	q.backlog = append(q.backlog, msg)
	waiting := len(q.backlog)
	q.mu.Unlock()

	q.logger.Debug("message queued", "subject", msg.SubjectID, "waiting", waiting)
	return nil
}

// Waiting returns how many enqueued messages are held behind the current one.
func (q *Queue) Waiting() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// Current returns the message being said, if any.
func (q *Queue) Current() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Message{}, false
	}
	return *q.current, true
}

// Finish reports that the message with id has finished playing. The next
// enqueued message, if any, becomes current. A stale id is ignored.
func (q *Queue) Finish(id string) {
	q.mu.Lock()
	if q.closed || q.current == nil || q.current.ID != id {
		q.mu.Unlock()
		return
	}
	var next *Message
	if len(q.backlog) > 0 {
		m := q.backlog[0]
		q.backlog = q.backlog[1:]
		next = &m
	}
	q.setCurrentLocked(next)
	q.mu.Unlock()

	q.publish(next)
}

// Proposals returns how many debounced proposals have been made.
func (q *Queue) Proposals() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.proposals
}

// Reset cancels a pending proposal, drops everything enqueued and silences
// the current message.
func (q *Queue) Reset() {
	q.mu.Lock()
	q.cancelLocked()
	hadCurrent := q.current != nil
	q.backlog = nil
	q.setCurrentLocked(nil)
	q.mu.Unlock()

	if hadCurrent {
		q.publish(nil)
	}
}

// Close cancels pending proposals and dismissals and ignores further focus
// changes.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cancelLocked()
	q.stopDismissLocked()
	q.backlog = nil
}

// setCurrentLocked replaces the current message and arms its auto dismissal.
func (q *Queue) setCurrentLocked(msg *Message) {
	q.stopDismissLocked()
	q.current = msg
	if msg == nil || msg.Category == CategoryDetail || q.autoDismiss <= 0 {
		return
	}
	id := msg.ID
	after := q.typewriter*time.Duration(utf8.RuneCountInString(msg.Text)) + q.autoDismiss
	q.dismiss = q.clock.AfterFunc(after, func() { q.Finish(id) })
}

func (q *Queue) stopDismissLocked() {
	if q.dismiss != nil {
		q.dismiss.Stop()
		q.dismiss = nil
	}
}

func (q *Queue) fill(msg *Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.EnqueuedAt.IsZero() {
		msg.EnqueuedAt = q.clock.Now()
	}
	if msg.Category == "" {
		msg.Category = CategoryDetail
	}
}

func (q *Queue) cancelLocked() {
	if q.pending != nil {
		q.pending.Stop()
		q.pending = nil
	}
	q.gen++
}

func (q *Queue) publish(msg *Message) {
	at := q.clock.Now()
	if msg == nil {
		q.bus.Publish(event.NewSpeechChangedEvent("", "", "", "", at))
		return
	}
	q.bus.Publish(event.NewSpeechChangedEvent(msg.ID, msg.SubjectID, msg.Text, msg.Priority.String(), at))
}
