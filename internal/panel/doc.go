// Package panel controls which hologram panel is expanded and at which reveal
// beat it is.
//
// At most one panel is expanded at a time. Expanding starts the reveal at
// beat1; the [Choreographer] then walks beat1 -> beat2 -> active on timers, and
// dismissing -> idle after a collapse. Phase order is not enforced by the
// [Controller]: any valid phase may be stored, and idle always clears the
// expanded panel.
package panel
