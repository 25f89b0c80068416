// Package bridge wires the dashboard core together.
//
// A [Bridge] owns one instance of every component: the boot sequencer and its
// dwell director, the instrument power registry, the panel controller and its
// beat choreographer, the render cadence scheduler, the speech queue and the
// threat store. It connects them through a shared event bus:
//
//   - boot phase changes drive instrument power and trigger the greeting once
//     the sequence completes,
//   - threat hover changes become speech focus,
//   - "any threat exists" OR "any panel expanded" is the cadence activity
//     signal.
//
// Every component schedules through the same [clock.Clock]. The terminal app
// passes a [clock.Loop] so timer callbacks run inside its update loop, while
// tests and the simulate command pass a [clock.Fake].
//
// Lifecycle:
//
//	b, err := bridge.New(cfg, bridge.WithClock(loop), bridge.WithLogger(logger))
//	b.Start()   // leave the start screen, or skip straight to complete
//	// ... b.Redraw() once per refresh opportunity ...
//	b.Replay()  // run the boot sequence again
//	b.Close()   // cancel every timer and detach from the bus
package bridge
