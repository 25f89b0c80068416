// Package power tracks the power lifecycle of every instrument on the bridge.
//
// Each instrument moves off -> boot -> running. Nothing leaves off until the
// boot sequence reaches power-surge; then every known instrument boots and
// settles after its staggered settle delay. An instrument whose data failed to
// load stays in boot with its error flag set, which the presentation draws as a
// malfunction. A replay returns everything to off.
//
// Instruments are created lazily by ID on first query. Consumers normally hold
// an [Observer], whose [Observer.Read] also reports the one-shot JustBooted
// edge that triggers startup animations.
package power
