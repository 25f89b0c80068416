// Package boot owns the boot sequence of the bridge.
//
// A [Sequencer] holds the current [Phase] and is the only writer of it. Phases
// only move forward, except for [Sequencer.Skip] (straight to complete) and
// [Sequencer.Reset] (replay from the start screen). Every transition is
// published on the event bus as [event.TypePhaseChanged] before the mutating
// call returns.
//
// A [Director] is the timer side of the sequence: it arms one dwell timer per
// phase and advances the sequencer when it fires. A [Gate] turns "the boot has
// reached phase P, plus a delay" into a boolean for consumers that activate
// part-way through the sequence.
//
//	seq := boot.New(bus, boot.WithClock(clk), boot.WithLogger(logger))
//	dir := boot.NewDirector(seq, clk, boot.DirectorConfig{Dwell: dwell})
//	defer dir.Stop()
//
//	dir.Start() // user left the start screen
package boot
