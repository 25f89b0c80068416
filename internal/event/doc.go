// Package event provides the synchronous pub-sub bus that the bridge core uses
// to expose state changes.
//
// Each state container (boot sequencer, power registry, panel controller,
// speech queue, threat store) is the single writer of its own state and
// publishes an event after every observable change. Other components and the
// presentation layer subscribe; none of them mutate state they do not own.
//
// # Delivery
//
// [Bus.Publish] calls every matching handler before it returns, so a
// subscriber reading state inside its handler observes the post-transition
// value. Specific handlers run first, then wildcard handlers, each group in
// registration order. A panicking handler is recovered and reported; it does
// not stop delivery to the others.
//
// # Event Types
//
// Event types follow the pattern "category.action":
//   - boot.phase_changed
//   - power.instrument_changed, power.global_changed
//   - panel.changed, panel.health_changed
//   - speech.changed
//   - threat.changed
//
// # Usage
//
//	bus := event.NewBus()
//	id := bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
//	    pc := e.(event.PhaseChangedEvent)
//	    fmt.Println(pc.From, "->", pc.To)
//	})
//	defer bus.Unsubscribe(id)
package event
